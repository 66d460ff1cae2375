package webui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/colligo/internal/models"
)

// Client is a knowledge-store API client.
type Client struct {
	baseURL    string
	apiKey     string
	userAPIKey string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL. The /api/v1 suffix is appended
// when missing.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = normalizeBaseURL(baseURL)
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithUserAPIKey sets the restricted end-user token used for as-user
// queries. Queries fall back to the primary token when unset.
func WithUserAPIKey(token string) ClientOption {
	return func(c *Client) {
		c.userAPIKey = token
	}
}

// NewClient creates a new knowledge-store API client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func normalizeBaseURL(baseURL string) string {
	url := strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(url, "/api/v1") {
		url += "/api/v1"
	}
	return url
}

// do executes a request against the API and decodes the JSON response
// into result when result is non-nil. Non-200 statuses are returned as
// *APIError carrying the response body.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType, bearer string, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &RateLimitError{RetryAfter: time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+bearer)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("method", method).
			Str("path", path).
			Msg("Knowledge store request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
			Endpoint:   path,
		}
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// getJSON performs a GET request.
func (c *Client) getJSON(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", c.apiKey, result)
}

// postJSON performs a POST request with a JSON body.
func (c *Client) postJSON(ctx context.Context, path string, payload, result any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(data), "application/json", c.apiKey, result)
}

// ListKnowledge returns all knowledge bases visible to the token.
func (c *Client) ListKnowledge(ctx context.Context) ([]models.KnowledgeSummary, error) {
	var result []models.KnowledgeSummary
	if err := c.getJSON(ctx, "/knowledge/", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateKnowledge creates a knowledge base.
func (c *Client) CreateKnowledge(ctx context.Context, req models.KnowledgeCreateRequest) (*models.KnowledgeSummary, error) {
	if req.Data == nil {
		req.Data = map[string]any{}
	}
	if req.AccessControl == nil {
		req.AccessControl = map[string]any{}
	}

	var result models.KnowledgeSummary
	if err := c.postJSON(ctx, "/knowledge/create", req, &result); err != nil {
		return nil, err
	}
	if result.ID == "" {
		return nil, fmt.Errorf("knowledge base created but no id in response")
	}
	return &result, nil
}

// GetKnowledge returns a knowledge base with its attached files.
func (c *Client) GetKnowledge(ctx context.Context, knowledgeID string) (*models.KnowledgeDetail, error) {
	var result models.KnowledgeDetail
	if err := c.getJSON(ctx, "/knowledge/"+knowledgeID, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteKnowledge deletes a knowledge base by id.
func (c *Client) DeleteKnowledge(ctx context.Context, knowledgeID string) (map[string]any, error) {
	var result map[string]any
	if err := c.do(ctx, http.MethodDelete, "/knowledge/"+knowledgeID+"/delete", nil, "", c.apiKey, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// UploadFile uploads a local file as a multipart form with its
// serialized metadata and returns the remote file id.
func (c *Client) UploadFile(ctx context.Context, path string, meta *models.ExtraMetadata) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", path)
		}
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write form file: %w", err)
	}

	if meta != nil {
		metaJSON, err := json.Marshal(meta)
		if err != nil {
			return "", fmt.Errorf("failed to marshal file metadata: %w", err)
		}
		if err := writer.WriteField("file_metadata", string(metaJSON)); err != nil {
			return "", fmt.Errorf("failed to write metadata field: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/files/", &body, writer.FormDataContentType(), c.apiKey, &result); err != nil {
		return "", err
	}
	if result.ID == "" {
		return "", fmt.Errorf("upload succeeded but no file id in response for %s", path)
	}

	return result.ID, nil
}

// AddFile attaches a single uploaded file to a knowledge base.
func (c *Client) AddFile(ctx context.Context, knowledgeID, fileID string) (map[string]any, error) {
	var result map[string]any
	payload := map[string]string{"file_id": fileID}
	if err := c.postJSON(ctx, "/knowledge/"+knowledgeID+"/file/add", payload, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// AddFilesBatch attaches a list of uploaded files in one call.
func (c *Client) AddFilesBatch(ctx context.Context, knowledgeID string, fileIDs []string) (map[string]any, error) {
	payload := make([]map[string]string, 0, len(fileIDs))
	for _, id := range fileIDs {
		payload = append(payload, map[string]string{"file_id": id})
	}

	var result map[string]any
	if err := c.postJSON(ctx, "/knowledge/"+knowledgeID+"/files/batch/add", payload, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveFile detaches a file from a knowledge base. The store also
// deletes it from the vector and file databases, but not from its
// filesystem.
func (c *Client) RemoveFile(ctx context.Context, knowledgeID, fileID string) (map[string]any, error) {
	var result map[string]any
	payload := map[string]string{"file_id": fileID}
	if err := c.postJSON(ctx, "/knowledge/"+knowledgeID+"/file/remove", payload, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// QueryCollections runs a retrieval query across knowledge bases. When
// asUser is set and a user token is configured, the restricted token is
// used so the store applies end-user access filtering.
func (c *Client) QueryCollections(ctx context.Context, query models.CollectionQuery, asUser bool) (*models.QueryResponse, error) {
	bearer := c.apiKey
	if asUser && c.userAPIKey != "" {
		bearer = c.userAPIKey
	}

	data, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	var result models.QueryResponse
	if err := c.do(ctx, http.MethodPost, "/retrieval/query/collection", bytes.NewReader(data), "application/json", bearer, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
