// Package manager implements the reconciliation engine that keeps a
// set of local documents in sync with a remote knowledge store. Each
// logical document is identified by its external URL; the engine
// guarantees at most one remote file per URL within a knowledge base.
package manager

import (
	"context"
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/colligo/internal/interfaces"
	"github.com/ternarybob/colligo/internal/models"
	"github.com/ternarybob/colligo/internal/webui"
)

// Manager orchestrates add, update and remove operations against a
// knowledge store. It is not safe to run two operations for the same
// knowledge base concurrently; the engine provides no cross-call
// locking.
type Manager struct {
	store     interfaces.KnowledgeStore
	state     interfaces.SyncStateStorage
	batchSize int
	logger    arbor.ILogger
}

// Option configures the Manager.
type Option func(*Manager)

// WithSyncState attaches a sync-state store recording run history and
// the advisory URL index.
func WithSyncState(state interfaces.SyncStateStorage) Option {
	return func(m *Manager) {
		m.state = state
	}
}

// New creates a Manager. An invalid batch size is a configuration
// error and is rejected here rather than mid-operation.
func New(store interfaces.KnowledgeStore, batchSize int, logger arbor.ILogger, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("knowledge store is required")
	}
	if batchSize < 1 {
		return nil, fmt.Errorf("batch size must be >= 1, got %d", batchSize)
	}

	m := &Manager{
		store:     store,
		batchSize: batchSize,
		logger:    logger,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// EnsureKnowledge returns the id of the knowledge base with the given
// name, creating it only when no existing base matches. Name matching
// is exact and case-sensitive; the first match wins, so calling this
// twice with the same name always yields the same id.
func (m *Manager) EnsureKnowledge(ctx context.Context, name, description string, data, accessControl map[string]any) (string, error) {
	bases, err := m.store.ListKnowledge(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list knowledge bases: %w", err)
	}

	for _, kb := range bases {
		if kb.Name == name {
			m.logger.Debug().
				Str("name", name).
				Str("knowledge_id", kb.ID).
				Msg("Knowledge base already exists")
			return kb.ID, nil
		}
	}

	created, err := m.store.CreateKnowledge(ctx, models.KnowledgeCreateRequest{
		Name:          name,
		Description:   description,
		Data:          data,
		AccessControl: accessControl,
	})
	if err != nil {
		m.logger.Error().Err(err).Str("name", name).Msg("Failed to create knowledge base")
		return "", fmt.Errorf("failed to create knowledge base %s: %w", name, err)
	}

	m.logger.Info().
		Str("name", name).
		Str("knowledge_id", created.ID).
		Msg("Knowledge base created")

	return created.ID, nil
}

// ListKnowledge returns all knowledge bases visible to the configured
// token.
func (m *Manager) ListKnowledge(ctx context.Context) ([]models.KnowledgeSummary, error) {
	return m.store.ListKnowledge(ctx)
}

// LookupKnowledge returns the id of the knowledge base with the given
// name without creating one. Matching follows EnsureKnowledge: exact,
// case-sensitive, first match wins.
func (m *Manager) LookupKnowledge(ctx context.Context, name string) (string, error) {
	bases, err := m.store.ListKnowledge(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list knowledge bases: %w", err)
	}
	for _, kb := range bases {
		if kb.Name == name {
			return kb.ID, nil
		}
	}
	return "", fmt.Errorf("knowledge base not found: %s", name)
}

// DeleteKnowledge deletes a knowledge base by id.
func (m *Manager) DeleteKnowledge(ctx context.Context, knowledgeID string) models.OperationResult {
	result, err := m.store.DeleteKnowledge(ctx, knowledgeID)
	if err != nil {
		m.logger.Error().Err(err).Str("knowledge_id", knowledgeID).Msg("Failed to delete knowledge base")
		return models.FailureResult(knowledgeID, errMessage(err))
	}
	return models.SuccessResult(knowledgeID, result)
}

// Query runs a retrieval query across knowledge bases. asUser switches
// to the restricted end-user credential; the store enforces access
// filtering server-side.
func (m *Manager) Query(ctx context.Context, knowledgeIDs []string, query string, topK int, asUser bool) (*models.QueryResponse, error) {
	if topK <= 0 {
		topK = 5
	}
	return m.store.QueryCollections(ctx, models.CollectionQuery{
		CollectionNames: knowledgeIDs,
		Query:           query,
		K:               topK,
	}, asUser)
}

// errMessage extracts a human-readable message from a remote call
// error, preferring the raw response body when available.
func errMessage(err error) string {
	var apiErr *webui.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
