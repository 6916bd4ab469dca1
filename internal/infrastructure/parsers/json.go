package parsers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ersonp/theatre-core/internal/domain/entities"
)

// JSONParser parses requests from a JSON array of objects.
type JSONParser struct{}

// Parse reads JSON from the reader and returns parsed requests. Objects use the
// payload's snake_case keys, or a "request"/"text" key holding free text.
func (p *JSONParser) Parse(r io.Reader) ([]RawRequest, error) {
	var items []map[string]any

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	requests := make([]RawRequest, 0, len(items))
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("item %d: expected an object", i+1)
		}
		req := RawRequest{
			Payload: entities.PayloadFromMap(item),
			LineNum: i + 1, // array index + 1
		}
		for _, key := range textFields {
			if s, ok := item[key].(string); ok && strings.TrimSpace(s) != "" {
				req.Text = strings.TrimSpace(s)
				break
			}
		}
		requests = append(requests, req)
	}

	return requests, nil
}
