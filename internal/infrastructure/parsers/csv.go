package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ersonp/theatre-core/internal/domain/entities"
)

// CSVParser parses requests from CSV format.
type CSVParser struct{}

// Parse reads CSV from the reader and returns parsed requests.
// Columns: surgeon_name, patient_name, operation_type, theatre_name, date,
// start_time, end_time, and optionally request for free text.
func (p *CSVParser) Parse(r io.Reader) ([]RawRequest, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range append(append([]string{}, payloadFields...), textFields...) {
		if _, ok := colIndex[col]; ok {
			return colIndex, nil
		}
	}
	return nil, fmt.Errorf("CSV header has no request columns (want any of %s, request)",
		strings.Join(payloadFields, ", "))
}

// readRecords reads all data rows and converts them to RawRequests.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]RawRequest, error) {
	var requests []RawRequest
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if isBlank(record) {
			continue
		}

		requests = append(requests, p.parseRecord(record, colIndex, lineNum))
	}

	return requests, nil
}

// parseRecord converts a CSV record to a RawRequest.
func (p *CSVParser) parseRecord(record []string, colIndex map[string]int, lineNum int) RawRequest {
	fields := make(map[string]any, len(payloadFields))
	for _, col := range payloadFields {
		if v := getColumn(record, colIndex, col); v != "" {
			fields[col] = v
		}
	}

	req := RawRequest{
		Payload: entities.PayloadFromMap(fields),
		LineNum: lineNum,
	}
	for _, col := range textFields {
		if v := strings.TrimSpace(getColumn(record, colIndex, col)); v != "" {
			req.Text = v
			break
		}
	}
	return req
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
