package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/jonathan/jobad-parser/internal/db"
	"github.com/jonathan/jobad-parser/internal/ingestion"
	"github.com/jonathan/jobad-parser/internal/observability"
	"github.com/jonathan/jobad-parser/internal/pipeline"
	"github.com/jonathan/jobad-parser/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Parse every advertisement page in a directory",
	Long:  "Batch parses all saved advertisement pages in a directory in parallel, writing one record JSON per page and optionally storing the records in PostgreSQL.",
	Args:  cobra.NoArgs,
	RunE:  runBatch,
}

var (
	batchInDir       string
	batchOutDir      string
	batchDatabaseURL string
	batchWorkers     int
	batchEnrich      enrichFlags
)

func init() {
	batchCmd.Flags().StringVarP(&batchInDir, "in", "i", "", "Directory of advertisement pages (required unless set in config)")
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "", "Directory for record JSON files")
	batchCmd.Flags().StringVar(&batchDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Documents parsed concurrently (0 = one per CPU)")
	batchEnrich.register(batchCmd)

	rootCmd.AddCommand(batchCmd)
}

// fileSink writes each record to its own JSON file.
type fileSink struct {
	dir string
}

func (s fileSink) SaveRecord(_ context.Context, _ uuid.UUID, rec *types.Record) error {
	_, err := ingestion.WriteRecord(s.dir, rec)
	return err
}

// multiSink hands every record to each sink in turn.
type multiSink []pipeline.Sink

func (m multiSink) SaveRecord(ctx context.Context, runID uuid.UUID, rec *types.Record) error {
	var err error
	for _, s := range m {
		err = multierr.Append(err, s.SaveRecord(ctx, runID, rec))
	}
	return err
}

func runBatch(cmd *cobra.Command, _ []string) error {
	if batchInDir != "" {
		settings.InputDir = batchInDir
	}
	if batchOutDir != "" {
		settings.OutputDir = batchOutDir
	}
	if batchDatabaseURL != "" {
		settings.DatabaseURL = batchDatabaseURL
	}
	if batchWorkers != 0 {
		settings.Workers = batchWorkers
	}
	if settings.InputDir == "" {
		return fmt.Errorf("--in is required")
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	opts, err := batchEnrich.cleaningOptions()
	if err != nil {
		return err
	}

	docs, err := ingestion.LoadDir(settings.InputDir)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runOpts := pipeline.RunOptions{
		Cleaning: opts,
		Workers:  settings.Workers,
		RunID:    uuid.New(),
	}
	sinks := multiSink{fileSink{dir: settings.OutputDir}}

	var database *db.DB
	if settings.DatabaseURL != "" {
		database, err = db.Connect(ctx, settings.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
		if runOpts.RunID, err = database.CreateRun(ctx, settings.InputDir); err != nil {
			return err
		}
		sinks = append(sinks, database)
	}
	runOpts.Sink = sinks

	results, summary, runErr := pipeline.Run(ctx, docs, runOpts)

	if database != nil {
		status := db.RunStatusCompleted
		if runErr != nil {
			status = db.RunStatusFailed
		}
		counts := db.RunCounts{Total: summary.Total, Parsed: summary.Parsed, Failed: summary.Failed, Flagged: summary.Flagged}
		if err := database.CompleteRun(ctx, summary.RunID, status, counts); err != nil {
			slog.Error("failed to record run completion", "run_id", summary.RunID, "err", err)
		}
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintBatchSummary(summary, results)
	if runErr != nil {
		return fmt.Errorf("batch finished with storage errors: %w", runErr)
	}
	return nil
}
