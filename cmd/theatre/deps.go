package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ersonp/theatre-core/internal/application/handlers"
	"github.com/ersonp/theatre-core/internal/domain/ports"
	"github.com/ersonp/theatre-core/internal/domain/services"
	"github.com/ersonp/theatre-core/internal/infrastructure/config"
	"github.com/ersonp/theatre-core/internal/infrastructure/knowledgestore/yamlstore"
	llm "github.com/ersonp/theatre-core/internal/infrastructure/llm/openai"
	"github.com/ersonp/theatre-core/internal/infrastructure/logging"
	"github.com/ersonp/theatre-core/internal/infrastructure/relationaldb/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config     *config.Config
	Logger     *zap.Logger
	Scheduling *handlers.SchedulingHandler
	Catalog    *handlers.CatalogHandler
	History    *handlers.HistoryHandler
	Batch      *handlers.BatchHandler
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyGlobalFlags(cfg)

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := yamlstore.Load(cfg.StorePath(cwd), yamlstore.WithLogger(logger.Named("store")))
	if err != nil {
		return fmt.Errorf("loading knowledge store: %w", err)
	}

	opts := []services.Option{services.WithLogger(logger)}

	var journal ports.DecisionJournal
	if path := cfg.JournalPath(cwd); path != "" {
		repo, err := openJournal(path)
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer repo.Close()

		if err := repo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensuring journal schema: %w", err)
		}
		journal = repo
		opts = append(opts, services.WithJournal(journal))
	}

	extractor, err := newExtractor(cfg.LLM, logger)
	if err != nil {
		return fmt.Errorf("creating llm client: %w", err)
	}

	scheduler := services.NewScheduler(store, opts...)
	requests := services.NewRequestService(extractor, scheduler, opts...)

	deps := &Deps{
		Config:     cfg,
		Logger:     logger,
		Scheduling: handlers.NewSchedulingHandler(scheduler, requests),
		Catalog:    handlers.NewCatalogHandler(store),
		History:    handlers.NewHistoryHandler(journal),
		Batch:      handlers.NewBatchHandler(requests),
	}

	return fn(deps)
}

// applyGlobalFlags lets persistent flags override the loaded config.
func applyGlobalFlags(cfg *config.Config) {
	if globalStore != "" {
		cfg.Store.Path = globalStore
	}
	if globalLogLevel != "" {
		cfg.Log.Level = globalLogLevel
	}
}

// openJournal opens the SQLite decision journal. It satisfies handlers.JournalOpener.
func openJournal(path string) (ports.DecisionJournal, error) {
	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: path})
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// newExtractor returns nil when no provider is configured so free-text
// commands can report it instead of failing every command.
func newExtractor(cfg config.LLMConfig, logger *zap.Logger) (ports.Extractor, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, nil
	}
	client, err := llm.NewClient(cfg, llm.WithLogger(logger.Named("llm")))
	if err != nil {
		return nil, err
	}
	return client, nil
}
