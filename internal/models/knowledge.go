package models

// KnowledgeSummary is a knowledge base as returned by list and create
// calls. Fields beyond id and name are passed through for callers that
// want them; the engine itself only keys on ID and Name.
type KnowledgeSummary struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id,omitempty"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Data          map[string]any `json:"data,omitempty"`
	Meta          map[string]any `json:"meta,omitempty"`
	AccessControl map[string]any `json:"access_control,omitempty"`
	CreatedAt     int64          `json:"created_at,omitempty"`
	UpdatedAt     int64          `json:"updated_at,omitempty"`
}

// FileRecord is a remote file as listed inside a knowledge base. Meta is
// opaque to the store; the uploaded ExtraMetadata sits under the
// reserved key and is the only link back to the local document.
type FileRecord struct {
	ID        string         `json:"id"`
	Meta      map[string]any `json:"meta"`
	CreatedAt int64          `json:"created_at,omitempty"`
	UpdatedAt int64          `json:"updated_at,omitempty"`
}

// KnowledgeDetail is a knowledge base with its attached files.
type KnowledgeDetail struct {
	KnowledgeSummary
	Files []FileRecord `json:"files"`
}

// KnowledgeCreateRequest is the payload for creating a knowledge base.
type KnowledgeCreateRequest struct {
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Data          map[string]any `json:"data"`
	AccessControl map[string]any `json:"access_control"`
}

// CollectionQuery is a retrieval query across one or more knowledge
// bases (addressed by their collection names).
type CollectionQuery struct {
	CollectionNames []string `json:"collection_names"`
	Query           string   `json:"query"`
	K               int      `json:"k"`
}

// QueryResponse is the raw retrieval result. Document rows come back
// grouped per collection; the engine does not reshape them.
type QueryResponse struct {
	Documents [][]string         `json:"documents"`
	Metadatas [][]map[string]any `json:"metadatas,omitempty"`
	Distances [][]float64        `json:"distances,omitempty"`
}
