// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/theatre-core/internal/domain/ports"
	"github.com/ersonp/theatre-core/internal/infrastructure/config"
	"github.com/ersonp/theatre-core/internal/infrastructure/knowledgestore/yamlstore"
)

// JournalOpener opens the decision journal at a path.
type JournalOpener func(path string) (ports.DecisionJournal, error)

// InitHandler handles project initialization.
type InitHandler struct {
	openJournal JournalOpener
}

// NewInitHandler creates a new init handler. openJournal may be nil to skip
// journal setup.
func NewInitHandler(openJournal JournalOpener) *InitHandler {
	return &InitHandler{
		openJournal: openJournal,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath  string `json:"config_path"`
	StorePath   string `json:"store_path"`
	StoreExists bool   `json:"store_exists"`
	JournalPath string `json:"journal_path,omitempty"`
}

// Handle writes the default config, creates the knowledge store (optionally
// with the sample hospital) and prepares the decision journal.
func (h *InitHandler) Handle(ctx context.Context, basePath string, sample bool) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("theatre already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	result := &InitResult{
		ConfigPath: config.ConfigFilePath(basePath),
		StorePath:  cfg.StorePath(basePath),
	}

	if _, err := yamlstore.Create(result.StorePath, sample); err != nil {
		if _, loadErr := yamlstore.Load(result.StorePath); loadErr != nil {
			return nil, fmt.Errorf("creating knowledge store: %w", err)
		}
		result.StoreExists = true
	}

	if path := cfg.JournalPath(basePath); path != "" && h.openJournal != nil {
		journal, err := h.openJournal(path)
		if err != nil {
			return nil, fmt.Errorf("opening journal: %w", err)
		}
		defer journal.Close()

		if err := journal.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("creating journal schema: %w", err)
		}
		result.JournalPath = path
	}

	return result, nil
}
