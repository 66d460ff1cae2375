package manager

import (
	"context"
	"time"

	"github.com/ternarybob/colligo/internal/common"
	"github.com/ternarybob/colligo/internal/models"
)

// recordRun persists a completed operation to the sync-state store.
// Best effort: persistence failures are logged, never surfaced - run
// history is advisory and must not affect operation results.
func (m *Manager) recordRun(ctx context.Context, knowledgeID, operation string, startedAt time.Time, results []models.OperationResult, skipped []string) {
	if m.state == nil {
		return
	}

	run := &models.SyncRun{
		ID:          common.NewRunID(),
		KnowledgeID: knowledgeID,
		Operation:   operation,
		StartedAt:   startedAt,
		FinishedAt:  time.Now(),
		SkippedURLs: skipped,
		Results:     results,
	}
	for _, r := range results {
		if r.Success {
			run.Succeeded++
		} else {
			run.Failed++
		}
	}

	if err := m.state.SaveRun(ctx, run); err != nil {
		m.logger.Warn().Err(err).Str("run_id", run.ID).Msg("Failed to persist sync run")
	}
}

// recordFileID updates the advisory URL index.
func (m *Manager) recordFileID(ctx context.Context, knowledgeID, url, fileID string) {
	if m.state == nil || url == "" {
		return
	}
	if err := m.state.SetFileID(ctx, knowledgeID, url, fileID); err != nil {
		m.logger.Warn().Err(err).Str("url", url).Msg("Failed to update file id index")
	}
}

// forgetFileID drops a URL from the advisory index.
func (m *Manager) forgetFileID(ctx context.Context, knowledgeID, url string) {
	if m.state == nil || url == "" {
		return
	}
	if err := m.state.DeleteFileID(ctx, knowledgeID, url); err != nil {
		m.logger.Warn().Err(err).Str("url", url).Msg("Failed to drop file id index entry")
	}
}
