package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/colligo/internal/interfaces"
	"github.com/ternarybob/colligo/internal/models"
)

// SyncStorage implements the SyncStateStorage interface on Badger
type SyncStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSyncStorage creates a new SyncStorage instance
func NewSyncStorage(db *BadgerDB, logger arbor.ILogger) interfaces.SyncStateStorage {
	return &SyncStorage{
		db:     db,
		logger: logger,
	}
}

// indexKey builds the key for a URL index entry. URLs are unique per
// knowledge base, not globally.
func indexKey(knowledgeID, url string) string {
	return knowledgeID + "|" + url
}

// SaveRun persists a completed sync run
func (s *SyncStorage) SaveRun(ctx context.Context, run *models.SyncRun) error {
	if err := s.db.Store().Upsert(run.ID, run); err != nil {
		return fmt.Errorf("failed to save sync run: %w", err)
	}

	s.logger.Debug().
		Str("run_id", run.ID).
		Str("operation", run.Operation).
		Int("succeeded", run.Succeeded).
		Int("failed", run.Failed).
		Msg("Sync run saved")

	return nil
}

// GetRun returns a single run by id
func (s *SyncStorage) GetRun(ctx context.Context, runID string) (*models.SyncRun, error) {
	var run models.SyncRun
	err := s.db.Store().Get(runID, &run)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sync run: %w", err)
	}
	return &run, nil
}

// ListRuns returns the most recent runs for a knowledge base, newest first
func (s *SyncStorage) ListRuns(ctx context.Context, knowledgeID string, limit int) ([]models.SyncRun, error) {
	var runs []models.SyncRun

	query := badgerhold.Where("KnowledgeID").Eq(knowledgeID).SortBy("StartedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := s.db.Store().Find(&runs, query); err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}

	return runs, nil
}

// SetFileID records the last observed remote file id for a URL
func (s *SyncStorage) SetFileID(ctx context.Context, knowledgeID, url, fileID string) error {
	entry := models.FileIDEntry{
		KnowledgeID: knowledgeID,
		URL:         url,
		FileID:      fileID,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.db.Store().Upsert(indexKey(knowledgeID, url), &entry); err != nil {
		return fmt.Errorf("failed to set file id: %w", err)
	}
	return nil
}

// DeleteFileID drops the index entry for a URL
func (s *SyncStorage) DeleteFileID(ctx context.Context, knowledgeID, url string) error {
	err := s.db.Store().Delete(indexKey(knowledgeID, url), models.FileIDEntry{})
	if err == badgerhold.ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete file id: %w", err)
	}
	return nil
}

// ListFileIDs returns the URL-to-file-id index for a knowledge base
func (s *SyncStorage) ListFileIDs(ctx context.Context, knowledgeID string) (map[string]string, error) {
	var entries []models.FileIDEntry
	if err := s.db.Store().Find(&entries, badgerhold.Where("KnowledgeID").Eq(knowledgeID)); err != nil {
		return nil, fmt.Errorf("failed to list file ids: %w", err)
	}

	result := make(map[string]string, len(entries))
	for _, entry := range entries {
		result[entry.URL] = entry.FileID
	}
	return result, nil
}

// Close closes the underlying database
func (s *SyncStorage) Close() error {
	return s.db.Close()
}
