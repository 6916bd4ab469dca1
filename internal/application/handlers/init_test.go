package handlers

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/theatre-core/internal/domain/mocks"
	"github.com/ersonp/theatre-core/internal/domain/ports"
	"github.com/ersonp/theatre-core/internal/infrastructure/config"
	"github.com/ersonp/theatre-core/internal/infrastructure/knowledgestore/yamlstore"
)

func TestInitHandler_Handle_Success(t *testing.T) {
	tmpDir := t.TempDir()
	journal := mocks.NewJournal()
	var opened string

	handler := NewInitHandler(func(path string) (ports.DecisionJournal, error) {
		opened = path
		return journal, nil
	})

	result, err := handler.Handle(t.Context(), tmpDir, true)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, result.ConfigPath, "config.yaml")
	assert.Equal(t, filepath.Join(tmpDir, ".theatre", "hospital.yaml"), result.StorePath)
	assert.False(t, result.StoreExists)
	assert.Equal(t, filepath.Join(tmpDir, ".theatre", "journal.db"), opened)
	assert.Equal(t, opened, result.JournalPath)

	// Verify config and store were created
	assert.True(t, config.Exists(tmpDir))
	store, err := yamlstore.Load(result.StorePath)
	require.NoError(t, err)
	assert.NotZero(t, store.Count("theatre"))
}

func TestInitHandler_Handle_KeepsExistingStore(t *testing.T) {
	tmpDir := t.TempDir()
	storePath := filepath.Join(tmpDir, ".theatre", "hospital.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(storePath), 0o755))
	require.NoError(t, os.WriteFile(storePath, []byte("theatres:\n  - name: Theatre Z\n    is_clean: true\n"), 0o644))

	result, err := NewInitHandler(nil).Handle(t.Context(), tmpDir, true)

	require.NoError(t, err)
	assert.True(t, result.StoreExists)
	assert.Empty(t, result.JournalPath)

	store, err := yamlstore.Load(storePath)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Count("theatre"))
}

func TestInitHandler_Handle_AlreadyInitialized(t *testing.T) {
	tmpDir := t.TempDir()

	// Initialize first
	err := config.WriteDefault(tmpDir)
	require.NoError(t, err)

	_, err = NewInitHandler(nil).Handle(t.Context(), tmpDir, false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
}

func TestInitHandler_Handle_JournalError(t *testing.T) {
	tmpDir := t.TempDir()

	handler := NewInitHandler(func(string) (ports.DecisionJournal, error) {
		return nil, errors.New("connection failed")
	})

	_, err := handler.Handle(t.Context(), tmpDir, false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening journal")
	assert.Contains(t, err.Error(), "connection failed")
}
