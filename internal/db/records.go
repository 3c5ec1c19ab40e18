package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/jobad-parser/internal/types"
)

// recordRow is the column form of a record.
type recordRow struct {
	JobID        string
	RunID        uuid.UUID
	Layout       string
	Document     []byte
	InvalidCodes []string
	SalaryMin    *int
	SalaryMax    *int
	AdDate       *time.Time
}

func newRecordRow(runID uuid.UUID, rec *types.Record) (*recordRow, error) {
	if rec == nil || rec.JobID == "" {
		return nil, fmt.Errorf("record has no jobid")
	}
	document, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record %s: %w", rec.JobID, err)
	}
	codes := rec.InvalidCodes.Sorted()
	if codes == nil {
		codes = []string{}
	}
	return &recordRow{
		JobID:        rec.JobID,
		RunID:        runID,
		Layout:       string(rec.Layout),
		Document:     document,
		InvalidCodes: codes,
		SalaryMin:    rec.SalaryMin,
		SalaryMax:    rec.SalaryMax,
		AdDate:       rec.Date,
	}, nil
}

// SaveRecord upserts a cleaned record keyed by jobid. Saving the same jobid
// again replaces the stored document and moves it to runID.
func (db *DB) SaveRecord(ctx context.Context, runID uuid.UUID, rec *types.Record) error {
	row, err := newRecordRow(runID, rec)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO job_records (jobid, run_id, layout, document, invalid_codes, salary_min, salary_max, ad_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (jobid) DO UPDATE SET
		     run_id = EXCLUDED.run_id,
		     layout = EXCLUDED.layout,
		     document = EXCLUDED.document,
		     invalid_codes = EXCLUDED.invalid_codes,
		     salary_min = EXCLUDED.salary_min,
		     salary_max = EXCLUDED.salary_max,
		     ad_date = EXCLUDED.ad_date,
		     updated_at = NOW()`,
		row.JobID, row.RunID, row.Layout, row.Document, row.InvalidCodes,
		row.SalaryMin, row.SalaryMax, row.AdDate,
	)
	if err != nil {
		return fmt.Errorf("failed to save record %s: %w", row.JobID, err)
	}
	return nil
}

// GetRecord retrieves a record by jobid. It returns nil, nil when the jobid
// is not stored.
func (db *DB) GetRecord(ctx context.Context, jobID string) (*types.Record, error) {
	var document []byte
	err := db.pool.QueryRow(ctx,
		`SELECT document FROM job_records WHERE jobid = $1`,
		jobID,
	).Scan(&document)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get record %s: %w", jobID, err)
	}

	var rec types.Record
	if err := json.Unmarshal(document, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode stored record %s: %w", jobID, err)
	}
	return &rec, nil
}

// ListJobIDsByInvalidCode returns, in jobid order, the records flagged with
// code.
func (db *DB) ListJobIDsByInvalidCode(ctx context.Context, code string) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT jobid FROM job_records WHERE $1 = ANY(invalid_codes) ORDER BY jobid`,
		code,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list records with code %s: %w", code, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to read jobids: %w", err)
	}
	return ids, nil
}

// DeleteRecord removes a record. Deleting a missing jobid is not an error.
func (db *DB) DeleteRecord(ctx context.Context, jobID string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM job_records WHERE jobid = $1`, jobID); err != nil {
		return fmt.Errorf("failed to delete record %s: %w", jobID, err)
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
