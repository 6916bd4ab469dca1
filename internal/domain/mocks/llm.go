// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/ersonp/theatre-core/internal/domain/entities"
	"github.com/ersonp/theatre-core/internal/domain/ports"
)

var _ ports.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of ports.Extractor.
type Extractor struct {
	// Payloads maps request text to the payload returned for it.
	Payloads map[string]entities.Payload
	// Payload is returned for text not in Payloads.
	Payload entities.Payload
	Err     error

	mu    sync.Mutex
	Calls []string
}

// Extract returns the configured payload or error.
func (m *Extractor) Extract(_ context.Context, text string) (entities.Payload, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, text)
	m.mu.Unlock()

	if m.Err != nil {
		return entities.Payload{}, m.Err
	}
	if p, ok := m.Payloads[text]; ok {
		return p, nil
	}
	return m.Payload, nil
}
