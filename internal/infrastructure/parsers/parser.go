// Package parsers reads batches of scheduling requests from files.
package parsers

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/ersonp/theatre-core/internal/domain/entities"
)

// RawRequest is one request read from a batch file. Either Payload is filled
// from structured columns or Text carries a free-text request for extraction.
type RawRequest struct {
	Payload entities.Payload
	Text    string
	LineNum int // Line number in source file (set by parser)
}

// Parser defines the interface for parsing requests from various formats.
type Parser interface {
	Parse(r io.Reader) ([]RawRequest, error)
}

// payloadFields are the structured columns/keys a request may carry.
var payloadFields = []string{
	"surgeon_name", "patient_name", "operation_type", "theatre_name",
	"date", "start_time", "end_time",
}

// textFields name the free-text request column/key.
var textFields = []string{"request", "text"}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	return ForFormat(strings.TrimPrefix(ext, "."))
}
