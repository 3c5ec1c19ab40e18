// Package ingestion reads raw advertisement documents from disk and writes
// cleaned records back out.
package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingJobID is returned when a document has no usable jobid.
var ErrMissingJobID = errors.New("document has no jobid")

// Document is one scraped advertisement page before extraction.
type Document struct {
	JobID    string `json:"jobid"`
	Path     string `json:"path,omitempty"`
	Markup   string `json:"-"`
	Hash     string `json:"hash"`     // SHA256 hex digest of Markup
	Encoding string `json:"encoding"` // charset the bytes were decoded from
}

// NewDocument wraps markup that is already decoded text.
func NewDocument(jobID, markup string) (*Document, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, ErrMissingJobID
	}
	return &Document{
		JobID:    jobID,
		Markup:   markup,
		Hash:     computeHash(markup),
		Encoding: "utf-8",
	}, nil
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// LoadError reports a document that could not be read.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("load %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
