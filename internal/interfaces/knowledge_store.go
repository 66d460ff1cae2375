package interfaces

import (
	"context"

	"github.com/ternarybob/colligo/internal/models"
)

// KnowledgeStore is the remote knowledge-store API surface the engine
// depends on. The production implementation lives in internal/webui;
// tests substitute handwritten mocks.
type KnowledgeStore interface {
	// ListKnowledge returns all knowledge bases visible to the token.
	ListKnowledge(ctx context.Context) ([]models.KnowledgeSummary, error)

	// CreateKnowledge creates a knowledge base and returns it.
	CreateKnowledge(ctx context.Context, req models.KnowledgeCreateRequest) (*models.KnowledgeSummary, error)

	// GetKnowledge returns a knowledge base with its attached files.
	GetKnowledge(ctx context.Context, knowledgeID string) (*models.KnowledgeDetail, error)

	// DeleteKnowledge deletes a knowledge base by id.
	DeleteKnowledge(ctx context.Context, knowledgeID string) (map[string]any, error)

	// UploadFile uploads a local file with its metadata and returns the
	// remote file id.
	UploadFile(ctx context.Context, path string, meta *models.ExtraMetadata) (string, error)

	// AddFile attaches a single uploaded file to a knowledge base.
	AddFile(ctx context.Context, knowledgeID, fileID string) (map[string]any, error)

	// AddFilesBatch attaches a list of uploaded files in one call.
	AddFilesBatch(ctx context.Context, knowledgeID string, fileIDs []string) (map[string]any, error)

	// RemoveFile detaches a file from a knowledge base and deletes it
	// from the vector and file stores.
	RemoveFile(ctx context.Context, knowledgeID, fileID string) (map[string]any, error)

	// QueryCollections runs a retrieval query across knowledge bases.
	// asUser switches to the restricted end-user credential when one is
	// configured; access filtering is enforced server-side.
	QueryCollections(ctx context.Context, query models.CollectionQuery, asUser bool) (*models.QueryResponse, error)
}
