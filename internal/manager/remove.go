package manager

import (
	"context"
	"time"

	"github.com/ternarybob/colligo/internal/models"
)

// RemoveFiles removes files from a knowledge base by id. Unlike add,
// remove never skips: the returned list holds exactly one result per
// input id, in input order, regardless of per-item success.
func (m *Manager) RemoveFiles(ctx context.Context, knowledgeID string, fileIDs []string) []models.OperationResult {
	startedAt := time.Now()

	results := make([]models.OperationResult, 0, len(fileIDs))
	for _, fileID := range fileIDs {
		result, err := m.store.RemoveFile(ctx, knowledgeID, fileID)
		if err != nil {
			m.logger.Error().
				Err(err).
				Str("file_id", fileID).
				Str("knowledge_id", knowledgeID).
				Msg("Failed to remove file")
			results = append(results, models.FailureResult(fileID, errMessage(err)))
			continue
		}
		results = append(results, models.SuccessResult(fileID, result))
	}

	m.recordRun(ctx, knowledgeID, "remove", startedAt, results, nil)

	return results
}
