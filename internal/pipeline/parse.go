// Package pipeline composes extraction and cleaning into the parse operation
// and runs it over batches of documents.
package pipeline

import (
	"fmt"

	"github.com/jonathan/jobad-parser/internal/cleaning"
	"github.com/jonathan/jobad-parser/internal/parsing"
	"github.com/jonathan/jobad-parser/internal/types"
)

// ParseDocument extracts the fields of one advertisement page and cleans
// them into a Record. A page whose markup yields nothing usable still
// produces a record, with the missing fields flagged as invalid.
func ParseDocument(jobID, markup string, opts cleaning.Options) (*types.Record, error) {
	mapping, err := parsing.Extract(markup)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", jobID, err)
	}
	mapping.Set(types.FieldJobID, types.Text(jobID))

	rec, err := cleaning.Clean(mapping, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to clean %s: %w", jobID, err)
	}
	return rec, nil
}
