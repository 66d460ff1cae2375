package models

import "time"

// OperationResult is the per-item outcome of a multi-item operation.
// Identifier is a remote file id for adds and removals; for updates it
// is the document's external URL (or local path when no URL was
// declared), since the remote id changes mid-operation.
type OperationResult struct {
	Identifier string `json:"identifier"`
	Success    bool   `json:"success"`
	Result     any    `json:"result,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SuccessResult builds a successful outcome record.
func SuccessResult(identifier string, result any) OperationResult {
	return OperationResult{Identifier: identifier, Success: true, Result: result}
}

// FailureResult builds a failed outcome record.
func FailureResult(identifier, errMsg string) OperationResult {
	return OperationResult{Identifier: identifier, Success: false, Error: errMsg}
}

// SyncRun records one reconcile operation against a knowledge base.
// Persisted by the sync-state store so `colligo status` can show run
// history; never consulted for identity resolution.
type SyncRun struct {
	ID          string            `json:"id" badgerhold:"key"`
	KnowledgeID string            `json:"knowledge_id" badgerhold:"index"`
	Operation   string            `json:"operation"` // add, update, remove
	StartedAt   time.Time         `json:"started_at"`
	FinishedAt  time.Time         `json:"finished_at"`
	Succeeded   int               `json:"succeeded"`
	Failed      int               `json:"failed"`
	SkippedURLs []string          `json:"skipped_urls,omitempty"`
	Results     []OperationResult `json:"results,omitempty"`
}

// FileIDEntry maps an external URL to the last remote file id observed
// for it. Advisory only - the remote listing stays authoritative.
type FileIDEntry struct {
	KnowledgeID string    `json:"knowledge_id" badgerhold:"index"`
	URL         string    `json:"url"`
	FileID      string    `json:"file_id"`
	UpdatedAt   time.Time `json:"updated_at"`
}
