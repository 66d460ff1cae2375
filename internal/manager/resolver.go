package manager

import (
	"context"
	"encoding/json"

	"github.com/ternarybob/colligo/internal/models"
	"github.com/ternarybob/colligo/internal/webui"
)

// fileURL extracts the external URL embedded in a remote file's meta
// blob. Returns "" when the reserved key is absent or malformed; such
// files do not participate in identity resolution.
func fileURL(file models.FileRecord) string {
	if file.Meta == nil {
		return ""
	}

	raw, ok := file.Meta[webui.MetadataKey]
	if !ok || raw == nil {
		return ""
	}

	// The store hands the blob back as generic JSON; round-trip it into
	// the typed form.
	data, err := json.Marshal(raw)
	if err != nil {
		return ""
	}

	var meta models.ExtraMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return ""
	}

	return meta.Metadata.URL
}

// findByURL returns the first remote file whose embedded URL matches.
// The store should not hold duplicate URLs in steady state, but the
// resolver does not assume it: first match is the tie-break.
func findByURL(files []models.FileRecord, url string) *models.FileRecord {
	if url == "" {
		return nil
	}
	for i := range files {
		if fileURL(files[i]) == url {
			return &files[i]
		}
	}
	return nil
}

// knowledgeFiles fetches the current file list for a knowledge base.
// A failed fetch is logged and treated as an empty list so a transient
// listing error degrades to "nothing known remotely" rather than
// aborting the whole operation.
func (m *Manager) knowledgeFiles(ctx context.Context, knowledgeID string) []models.FileRecord {
	detail, err := m.store.GetKnowledge(ctx, knowledgeID)
	if err != nil {
		m.logger.Error().
			Err(err).
			Str("knowledge_id", knowledgeID).
			Msg("Failed to list knowledge base files")
		return nil
	}
	return detail.Files
}

// existingURLs returns the set of external URLs currently attached to
// a knowledge base. Callers must re-fetch when staleness matters;
// nothing is cached between operations.
func (m *Manager) existingURLs(ctx context.Context, knowledgeID string) map[string]struct{} {
	urls := make(map[string]struct{})
	for _, file := range m.knowledgeFiles(ctx, knowledgeID) {
		if url := fileURL(file); url != "" {
			urls[url] = struct{}{}
		}
	}
	return urls
}
