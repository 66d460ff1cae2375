package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/colligo/internal/models"
	"github.com/ternarybob/colligo/internal/services/workers"
)

// uploadedFile pairs a document with the remote file id its upload
// produced.
type uploadedFile struct {
	doc    models.Document
	fileID string
}

// AddDocuments uploads documents in batches and attaches them to a
// knowledge base. Documents whose URL is already attached are logged at
// warn level and omitted from the returned results entirely; they are
// not failures. Within a batch, uploads run concurrently; the batch
// attach call never starts before every upload in the batch has
// settled, and batches execute strictly in sequence.
func (m *Manager) AddDocuments(ctx context.Context, knowledgeID string, docs []models.Document) ([]models.OperationResult, error) {
	startedAt := time.Now()

	existing := m.existingURLs(ctx, knowledgeID)

	toUpload := make([]models.Document, 0, len(docs))
	skipped := make([]string, 0)
	for _, doc := range docs {
		url := doc.URL()
		if url == "" {
			m.logger.Warn().
				Str("path", doc.Path).
				Msg("Document has no URL, skipping")
			skipped = append(skipped, doc.Path)
			continue
		}
		if _, ok := existing[url]; ok {
			m.logger.Warn().
				Str("url", url).
				Str("path", doc.Path).
				Msg("File already exists in knowledge base, skipping")
			skipped = append(skipped, url)
			continue
		}
		toUpload = append(toUpload, doc)
	}

	batches, err := planBatches(toUpload, m.batchSize)
	if err != nil {
		return nil, err
	}

	results := make([]models.OperationResult, 0, len(toUpload))
	for _, batch := range batches {
		uploaded := m.uploadBatch(ctx, batch)
		if len(uploaded) == 0 {
			continue
		}

		fileIDs := make([]string, 0, len(uploaded))
		for _, u := range uploaded {
			fileIDs = append(fileIDs, u.fileID)
		}

		batchResult, err := m.store.AddFilesBatch(ctx, knowledgeID, fileIDs)
		if err != nil {
			m.logger.Error().
				Err(err).
				Str("knowledge_id", knowledgeID).
				Int("files", len(fileIDs)).
				Msg("Failed to batch add files to knowledge base")

			msg := fmt.Sprintf("Batch operation failed: %s", errMessage(err))
			for _, u := range uploaded {
				results = append(results, models.FailureResult(u.fileID, msg))
			}
			continue
		}

		for _, u := range uploaded {
			results = append(results, models.SuccessResult(u.fileID, map[string]any{
				"id":           u.fileID,
				"batch_result": batchResult,
			}))
			m.recordFileID(ctx, knowledgeID, u.doc.URL(), u.fileID)
		}
	}

	m.recordRun(ctx, knowledgeID, "add", startedAt, results, skipped)

	return results, nil
}

// uploadBatch fires one upload per document concurrently and waits for
// all of them to settle. A failure in one upload never cancels the
// others; failed uploads are excluded from the returned list and do
// not surface as individual results.
func (m *Manager) uploadBatch(ctx context.Context, batch []models.Document) []uploadedFile {
	fileIDs := make([]string, len(batch))

	pool := workers.NewPool(len(batch), m.logger)
	pool.Start()

	for i, doc := range batch {
		i, doc := i, doc
		job := func(_ context.Context) error {
			fileID, err := m.store.UploadFile(ctx, doc.Path, &doc.Meta)
			if err != nil {
				return fmt.Errorf("upload failed for %s: %w", doc.Identifier(), err)
			}
			fileIDs[i] = fileID
			return nil
		}
		if err := pool.Submit(job); err != nil {
			m.logger.Error().Err(err).Str("path", doc.Path).Msg("Failed to submit upload job")
		}
	}

	pool.Wait()

	if errs := pool.Errors(); len(errs) > 0 {
		m.logger.Warn().
			Int("failed", len(errs)).
			Int("batch_size", len(batch)).
			Msg("Some uploads in batch failed")
	}

	uploaded := make([]uploadedFile, 0, len(batch))
	for i, fileID := range fileIDs {
		if fileID != "" {
			uploaded = append(uploaded, uploadedFile{doc: batch[i], fileID: fileID})
		}
	}
	return uploaded
}

// uploadAndAttach uploads a single file and attaches it with the
// single-file add call. Used by updates, which replace one file at a
// time.
func (m *Manager) uploadAndAttach(ctx context.Context, knowledgeID string, doc models.Document) (map[string]any, string, error) {
	fileID, err := m.store.UploadFile(ctx, doc.Path, &doc.Meta)
	if err != nil {
		return nil, "", err
	}

	result, err := m.store.AddFile(ctx, knowledgeID, fileID)
	if err != nil {
		m.logger.Error().
			Err(err).
			Str("path", doc.Path).
			Str("file_id", fileID).
			Msg("Failed to add file to knowledge base")
		return nil, "", err
	}

	return result, fileID, nil
}
