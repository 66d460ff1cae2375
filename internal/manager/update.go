package manager

import (
	"context"
	"time"

	"github.com/ternarybob/colligo/internal/models"
)

// UpdateDocuments replaces documents that already exist in a knowledge
// base: resolve the remote file by URL, remove it, then upload and
// re-attach the new version. Documents are processed strictly in
// sequence - every update changes the remote file id, and two
// concurrent updates against the same URL could race. A document whose
// URL is not attached yields a "File not found" failure; when removal
// fails the replacement is never uploaded, so the old version stays in
// place rather than being joined by an orphan.
func (m *Manager) UpdateDocuments(ctx context.Context, knowledgeID string, docs []models.Document) ([]models.OperationResult, error) {
	startedAt := time.Now()

	files := m.knowledgeFiles(ctx, knowledgeID)

	results := make([]models.OperationResult, 0, len(docs))
	for _, doc := range docs {
		identifier := doc.Identifier()

		file := findByURL(files, doc.URL())
		if file == nil {
			m.logger.Warn().
				Str("url", doc.URL()).
				Str("path", doc.Path).
				Msg("File not found in knowledge base")
			results = append(results, models.FailureResult(identifier, "File not found"))
			continue
		}

		if _, err := m.store.RemoveFile(ctx, knowledgeID, file.ID); err != nil {
			m.logger.Error().
				Err(err).
				Str("file_id", file.ID).
				Str("url", doc.URL()).
				Msg("Failed to remove file for update")
			results = append(results, models.FailureResult(identifier, "Failed to remove file"))
			continue
		}

		m.forgetFileID(ctx, knowledgeID, doc.URL())

		addResult, fileID, err := m.uploadAndAttach(ctx, knowledgeID, doc)
		if err != nil {
			results = append(results, models.FailureResult(identifier, errMessage(err)))
			continue
		}

		m.recordFileID(ctx, knowledgeID, doc.URL(), fileID)
		results = append(results, models.SuccessResult(identifier, addResult))
	}

	m.recordRun(ctx, knowledgeID, "update", startedAt, results, nil)

	return results, nil
}
