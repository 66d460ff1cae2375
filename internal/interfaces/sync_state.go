package interfaces

import (
	"context"
	"errors"

	"github.com/ternarybob/colligo/internal/models"
)

// ErrRunNotFound is returned when no sync run matches the query.
var ErrRunNotFound = errors.New("sync run not found")

// SyncStateStorage persists reconcile history and the advisory
// URL-to-file-id index. Implementations must tolerate concurrent use
// from a single process; cross-process locking is not provided.
type SyncStateStorage interface {
	// SaveRun persists a completed sync run.
	SaveRun(ctx context.Context, run *models.SyncRun) error

	// GetRun returns a single run by id. Returns ErrRunNotFound when no
	// run matches.
	GetRun(ctx context.Context, runID string) (*models.SyncRun, error)

	// ListRuns returns the most recent runs for a knowledge base, newest
	// first, up to limit (0 means no limit).
	ListRuns(ctx context.Context, knowledgeID string, limit int) ([]models.SyncRun, error)

	// SetFileID records the last observed remote file id for a URL.
	SetFileID(ctx context.Context, knowledgeID, url, fileID string) error

	// DeleteFileID drops the index entry for a URL.
	DeleteFileID(ctx context.Context, knowledgeID, url string) error

	// ListFileIDs returns the URL-to-file-id index for a knowledge base.
	ListFileIDs(ctx context.Context, knowledgeID string) (map[string]string, error)

	// Close releases the underlying database.
	Close() error
}
