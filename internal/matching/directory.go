package matching

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column names of the postcode CSV.
const (
	providerColumn = "PROVIDER_NAME"
	postcodeColumn = "POSTCODE"
)

// universityKeywords mark an employer as a higher-education institution
// without a directory lookup.
var universityKeywords = []string{"university", "school", "college"}

// DirectoryError represents a failure to load reference data
type DirectoryError struct {
	Path    string
	Message string
	Cause   error
}

func (e *DirectoryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("directory error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("directory error for %s: %s", e.Path, e.Message)
}

func (e *DirectoryError) Unwrap() error {
	return e.Cause
}

// Provider is one row of the postcode table.
type Provider struct {
	Name     string
	Postcode string
}

// Directory is the read-only reference data for employer enrichment: known
// university names and a provider to postcode table. It is safe for
// concurrent use once built.
type Directory struct {
	names []string
	keys  []string
	byKey map[string]string

	providers []string
	postcodes map[string]string
}

// NewDirectory builds a directory. Order matters: on equal similarity the
// earlier entry wins. Blank names and providers without a postcode are
// skipped.
func NewDirectory(names []string, providers []Provider) *Directory {
	d := &Directory{
		byKey:     make(map[string]string, len(names)),
		postcodes: make(map[string]string, len(providers)),
	}
	for _, name := range names {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		d.names = append(d.names, name)
		key := tokenKey(Tokens(name))
		if _, dup := d.byKey[key]; dup {
			continue
		}
		d.byKey[key] = name
		d.keys = append(d.keys, key)
	}
	for _, p := range providers {
		if p.Name == "" || strings.TrimSpace(p.Postcode) == "" {
			continue
		}
		if _, dup := d.postcodes[p.Name]; dup {
			continue
		}
		d.postcodes[p.Name] = p.Postcode
		d.providers = append(d.providers, p.Name)
	}
	return d
}

// Names returns the university names in load order.
func (d *Directory) Names() []string {
	return append([]string(nil), d.names...)
}

// University resolves an employer to a university name. Employers whose
// name, up to the first hyphen, contains one of the institution keywords are
// accepted as they are; others are matched by keyword set against the
// directory.
func (d *Directory) University(employer string, threshold float64) (string, bool) {
	employer = strings.TrimSpace(employer)
	if employer == "" {
		return "", false
	}
	tokens := Tokens(strings.SplitN(employer, "-", 2)[0])
	for _, t := range tokens {
		for _, kw := range universityKeywords {
			if t == kw {
				return employer, true
			}
		}
	}
	if d == nil || len(tokens) == 0 {
		return "", false
	}
	key, ok := BestMatch(tokenKey(tokens), d.keys, threshold)
	if !ok {
		return "", false
	}
	return d.byKey[key], true
}

// Postcode resolves a university name to the postcode of the closest
// provider in the table.
func (d *Directory) Postcode(name string, threshold float64) (string, bool) {
	if d == nil || strings.TrimSpace(name) == "" {
		return "", false
	}
	provider, ok := BestMatch(name, d.providers, threshold)
	if !ok {
		return "", false
	}
	return d.postcodes[provider], true
}

// LoadDirectory reads the university list (one name per line) and the
// postcode CSV. Either path may be empty to skip that part.
func LoadDirectory(listPath, csvPath string) (*Directory, error) {
	var names []string
	if listPath != "" {
		var err error
		if names, err = readNames(listPath); err != nil {
			return nil, err
		}
	}
	var providers []Provider
	if csvPath != "" {
		var err error
		if providers, err = readProviders(csvPath); err != nil {
			return nil, err
		}
	}
	return NewDirectory(names, providers), nil
}

func readNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DirectoryError{Path: path, Message: "failed to open university list", Cause: err}
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &DirectoryError{Path: path, Message: "failed to read university list", Cause: err}
	}
	return names, nil
}

func readProviders(path string) ([]Provider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DirectoryError{Path: path, Message: "failed to open postcode table", Cause: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, &DirectoryError{Path: path, Message: "failed to read header", Cause: err}
	}
	nameCol, codeCol := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")) {
		case providerColumn:
			nameCol = i
		case postcodeColumn:
			codeCol = i
		}
	}
	if nameCol < 0 || codeCol < 0 {
		return nil, &DirectoryError{
			Path:    path,
			Message: fmt.Sprintf("header must contain %s and %s", providerColumn, postcodeColumn),
		}
	}

	var providers []Provider
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DirectoryError{Path: path, Message: "failed to read row", Cause: err}
		}
		if nameCol >= len(row) || codeCol >= len(row) {
			continue
		}
		name, code := strings.TrimSpace(row[nameCol]), strings.TrimSpace(row[codeCol])
		if name == "" || code == "" {
			continue
		}
		providers = append(providers, Provider{Name: name, Postcode: code})
	}
	return providers, nil
}
