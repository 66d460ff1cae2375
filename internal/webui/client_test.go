package webui

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/colligo/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...ClientOption) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]ClientOption{WithBaseURL(server.URL)}, opts...)
	return NewClient("test-key", opts...)
}

func TestNormalizeBaseURL(t *testing.T) {
	assert.Equal(t, "http://host:8080/api/v1", normalizeBaseURL("http://host:8080"))
	assert.Equal(t, "http://host:8080/api/v1", normalizeBaseURL("http://host:8080/"))
	assert.Equal(t, "http://host:8080/api/v1", normalizeBaseURL("http://host:8080/api/v1"))
	assert.Equal(t, "http://host:8080/api/v1", normalizeBaseURL("http://host:8080/api/v1/"))
}

func TestListKnowledge_SendsBearerToken(t *testing.T) {
	var gotAuth, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode([]models.KnowledgeSummary{
			{ID: "kb-1", Name: "docs"},
		})
	})

	bases, err := client.ListKnowledge(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "/api/v1/knowledge/", gotPath)
	require.Len(t, bases, 1)
	assert.Equal(t, "kb-1", bases[0].ID)
}

func TestCreateKnowledge_DefaultsEmptyMaps(t *testing.T) {
	var payload map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(models.KnowledgeSummary{ID: "kb-9", Name: "docs"})
	})

	kb, err := client.CreateKnowledge(context.Background(), models.KnowledgeCreateRequest{
		Name:        "docs",
		Description: "all docs",
	})
	require.NoError(t, err)

	assert.Equal(t, "kb-9", kb.ID)
	assert.NotNil(t, payload["data"])
	assert.NotNil(t, payload["access_control"])
}

func TestCreateKnowledge_MissingID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"name": "docs"})
	})

	_, err := client.CreateKnowledge(context.Background(), models.KnowledgeCreateRequest{Name: "docs"})
	assert.Error(t, err)
}

func TestUploadFile_MultipartFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.md")
	require.NoError(t, os.WriteFile(path, []byte("# report"), 0644))

	var (
		gotFilename string
		gotContent  string
		gotMeta     models.ExtraMetadata
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		content, err := io.ReadAll(file)
		require.NoError(t, err)

		gotFilename = header.Filename
		gotContent = string(content)
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("file_metadata")), &gotMeta))

		json.NewEncoder(w).Encode(map[string]string{"id": "file-42"})
	})

	meta := &models.ExtraMetadata{
		Metadata: models.ItemMetadata{Title: "Report", URL: "https://example.com/report"},
	}
	fileID, err := client.UploadFile(context.Background(), path, meta)
	require.NoError(t, err)

	assert.Equal(t, "file-42", fileID)
	assert.Equal(t, "report.md", gotFilename)
	assert.Equal(t, "# report", gotContent)
	assert.Equal(t, "https://example.com/report", gotMeta.Metadata.URL)
}

func TestUploadFile_MissingLocalFile(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.UploadFile(context.Background(), "/nonexistent/file.md", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
	assert.False(t, called)
}

func TestAddFilesBatch_Payload(t *testing.T) {
	var payload []map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/knowledge/kb-1/files/batch/add", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
	})

	_, err := client.AddFilesBatch(context.Background(), "kb-1", []string{"f1", "f2"})
	require.NoError(t, err)

	require.Len(t, payload, 2)
	assert.Equal(t, "f1", payload[0]["file_id"])
	assert.Equal(t, "f2", payload[1]["file_id"])
}

func TestRemoveFile_Endpoint(t *testing.T) {
	var gotPath string
	var payload map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(map[string]any{})
	})

	_, err := client.RemoveFile(context.Background(), "kb-1", "f1")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/knowledge/kb-1/file/remove", gotPath)
	assert.Equal(t, "f1", payload["file_id"])
}

func TestAPIError_CarriesResponseBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "duplicate name"}`))
	})

	_, err := client.ListKnowledge(context.Background())
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, `{"detail": "duplicate name"}`, apiErr.Message)
	assert.Equal(t, "/knowledge/", apiErr.Endpoint)
}

func TestQueryCollections_AsUserSwitchesToken(t *testing.T) {
	var tokens []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		tokens = append(tokens, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(models.QueryResponse{})
	}, WithUserAPIKey("user-key"))

	query := models.CollectionQuery{CollectionNames: []string{"kb-1"}, Query: "q", K: 3}

	_, err := client.QueryCollections(context.Background(), query, false)
	require.NoError(t, err)
	_, err = client.QueryCollections(context.Background(), query, true)
	require.NoError(t, err)

	require.Len(t, tokens, 2)
	assert.Equal(t, "Bearer test-key", tokens[0])
	assert.Equal(t, "Bearer user-key", tokens[1])
}

func TestQueryCollections_AsUserWithoutTokenFallsBack(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.QueryResponse{})
	})

	_, err := client.QueryCollections(context.Background(), models.CollectionQuery{Query: "q", K: 1}, true)
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
}
