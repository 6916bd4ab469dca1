package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/ersonp/theatre-core/internal/domain/services"
	"github.com/ersonp/theatre-core/internal/infrastructure/parsers"
)

// BatchHandler processes files of scheduling requests in order.
type BatchHandler struct {
	requests *services.RequestService
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(requests *services.RequestService) *BatchHandler {
	return &BatchHandler{
		requests: requests,
	}
}

// BatchOptions controls batch behavior.
type BatchOptions struct {
	Format string // "json", "csv", or "auto"
	Commit bool   // Commit accepted requests
}

// BatchItem is the outcome of one request line.
type BatchItem struct {
	Line    int                      `json:"line"`
	Outcome *services.RequestOutcome `json:"outcome,omitempty"`
	Error   string                   `json:"error,omitempty"`
}

// BatchResult contains the result of a batch run.
type BatchResult struct {
	Items     []BatchItem `json:"items"`
	Accepted  int         `json:"accepted"`
	Rejected  int         `json:"rejected"`
	Committed int         `json:"committed"`
	Failed    int         `json:"failed"`
}

// Handle reads requests from a file and decides them one at a time.
func (h *BatchHandler) Handle(ctx context.Context, filePath string, opts BatchOptions) (*BatchResult, error) {
	// Get parser
	var parser parsers.Parser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(opts.Format)
	}

	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	// Open file
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	raw, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	result := &BatchResult{Items: make([]BatchItem, 0, len(raw))}
	for _, req := range raw {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		item := BatchItem{Line: req.LineNum}
		var outcome *services.RequestOutcome
		switch {
		case req.Text != "":
			outcome, err = h.requests.Handle(ctx, req.Text, opts.Commit)
		case req.Payload.IsEmpty():
			err = fmt.Errorf("empty request")
		default:
			outcome, err = h.requests.Decide(ctx, req.Payload, opts.Commit)
		}

		if err != nil {
			item.Error = err.Error()
			result.Failed++
		} else {
			item.Outcome = outcome
			result.tally(outcome)
		}
		result.Items = append(result.Items, item)
	}

	return result, nil
}

func (r *BatchResult) tally(o *services.RequestOutcome) {
	if o.Decision.Valid {
		r.Accepted++
	} else {
		r.Rejected++
	}
	if o.Commit != nil && o.Commit.Success {
		r.Committed++
	}
}
