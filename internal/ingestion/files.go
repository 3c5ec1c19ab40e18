package ingestion

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"github.com/jonathan/jobad-parser/internal/types"
)

// LoadFile reads one saved advertisement. The jobid is the file name without
// its extension; scraped pages are usually stored with no extension at all.
// Bytes that are not valid UTF-8 are decoded using the charset declared in
// the page, falling back to Windows-1252.
func LoadFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Path: path, Message: "file not found", Cause: err}
		}
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}

	base := filepath.Base(path)
	jobID := strings.TrimSuffix(base, filepath.Ext(base))
	markup, enc, err := decode(content)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to decode " + enc, Cause: err}
	}

	doc, err := NewDocument(jobID, markup)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "invalid file name", Cause: err}
	}
	doc.Path = path
	doc.Encoding = enc
	return doc, nil
}

func decode(content []byte) (string, string, error) {
	if utf8.Valid(content) {
		return string(content), "utf-8", nil
	}
	enc, name, _ := charset.DetermineEncoding(content, "text/html")
	decoded, err := enc.NewDecoder().Bytes(content)
	if err != nil {
		return "", name, err
	}
	return string(decoded), name, nil
}

// LoadDir reads every advertisement file directly inside dir, in file name
// order. Subdirectories, hidden files and .json sidecars are skipped. A file
// that cannot be read aborts the load.
func LoadDir(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Path: dir, Message: "failed to list directory", Cause: err}
	}

	docs := make([]*Document, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || strings.EqualFold(filepath.Ext(name), ".json") {
			slog.Debug("skipping non-document entry", "dir", dir, "name", name)
			continue
		}
		doc, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	slog.Info("loaded documents", "dir", dir, "count", len(docs))
	return docs, nil
}

// WriteRecord writes rec as indented JSON to <outDir>/<jobid>.json and
// returns the path written.
func WriteRecord(outDir string, rec *types.Record) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal record %s: %w", rec.JobID, err)
	}

	path := filepath.Join(outDir, rec.JobID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write record file: %w", err)
	}
	return path, nil
}
