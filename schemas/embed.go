// Package schemas holds the JSON Schemas for the documents this module
// writes.
package schemas

import _ "embed"

// JobRecord is the schema of a cleaned record's flat document.
//
//go:embed job_record.schema.json
var JobRecord []byte
