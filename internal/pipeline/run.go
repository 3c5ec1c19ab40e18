package pipeline

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobad-parser/internal/cleaning"
	"github.com/jonathan/jobad-parser/internal/ingestion"
	"github.com/jonathan/jobad-parser/internal/types"
)

// Sink receives every record that parsed successfully.
type Sink interface {
	SaveRecord(ctx context.Context, runID uuid.UUID, rec *types.Record) error
}

// RunOptions holds configuration for a batch run.
type RunOptions struct {
	Cleaning cleaning.Options
	// Workers bounds the number of documents parsed at once. Zero means
	// one per CPU.
	Workers int
	// Sink is optional.
	Sink Sink
	// RunID tags stored records; a new one is generated when nil.
	RunID uuid.UUID
	// OnResult, when set, is called once per document as it finishes.
	// Calls are serialised.
	OnResult func(Result)
}

// Result is the outcome for one document. Err is set when the document
// could not be parsed or the sink rejected it; Record is nil only in the
// first case.
type Result struct {
	JobID  string
	Hash   string
	Record *types.Record
	Err    error
}

// Summary counts the outcomes of a batch.
type Summary struct {
	RunID  uuid.UUID
	Total  int
	Parsed int
	Failed int
	// Flagged counts parsed records with at least one invalid code.
	Flagged int
}

// Run parses docs in parallel. Results come back in input order. A document
// that fails does not stop the batch; its error is kept on its Result.
// The returned error combines every sink failure, or is the context error
// when the run was cancelled.
func Run(ctx context.Context, docs []*ingestion.Document, opts RunOptions) ([]Result, Summary, error) {
	runID := opts.RunID
	if runID == uuid.Nil {
		runID = uuid.New()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(docs))
	var (
		mu      sync.Mutex
		sinkErr error
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res := Result{JobID: doc.JobID, Hash: doc.Hash}
			res.Record, res.Err = ParseDocument(doc.JobID, doc.Markup, opts.Cleaning)
			if res.Err != nil {
				slog.Warn("document failed", "jobid", doc.JobID, "err", res.Err)
			} else if opts.Sink != nil {
				if err := opts.Sink.SaveRecord(gCtx, runID, res.Record); err != nil {
					slog.Error("failed to store record", "jobid", doc.JobID, "err", err)
					res.Err = err
					mu.Lock()
					sinkErr = multierr.Append(sinkErr, err)
					mu.Unlock()
				}
			}

			mu.Lock()
			results[i] = res
			if opts.OnResult != nil {
				opts.OnResult(res)
			}
			mu.Unlock()
			return nil
		})
	}

	summary := Summary{RunID: runID, Total: len(docs)}
	if err := g.Wait(); err != nil {
		return results, summarize(summary, results), err
	}
	summary = summarize(summary, results)
	slog.Info("batch complete",
		"run_id", runID,
		"total", summary.Total,
		"parsed", summary.Parsed,
		"failed", summary.Failed,
		"flagged", summary.Flagged,
	)
	return results, summary, sinkErr
}

func summarize(s Summary, results []Result) Summary {
	for _, r := range results {
		switch {
		case r.Record == nil && r.Err != nil:
			s.Failed++
		case r.Record != nil:
			s.Parsed++
			if !r.Record.InvalidCodes.Empty() {
				s.Flagged++
			}
		}
	}
	return s
}
