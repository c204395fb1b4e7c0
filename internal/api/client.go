package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"pelada-manager/internal/config"
	"pelada-manager/pkg/errors"
	"pelada-manager/pkg/logger"

	"go.uber.org/zap"
)

// PageInfo carries pagination metadata read from response headers
type PageInfo struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

// Client is the JSON-over-HTTP client for the pelada backend. Every call
// sends the bearer token when one is set; the token is owned by the session
// layer rather than a module-level singleton so clients can run in isolation.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger

	mu          sync.RWMutex
	token       string
	onAuthError func()
}

// NewClient creates a new API client
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: log,
		token:  cfg.APIToken,
	}
}

// SetToken sets the token sent on subsequent requests
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken removes the current token
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the current token
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// OnAuthError registers a callback invoked synchronously whenever a call
// raises an authentication (401) error, regardless of which call triggered
// it. 403 and other statuses never fire it.
func (c *Client) OnAuthError(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAuthError = fn
}

// Get issues a GET request and decodes the response into out
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body and decodes the response into out
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body and decodes the response into out
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// GetPaginated issues a GET request with query params, decodes the response
// body into out (a pointer to a slice) and reads pagination metadata from the
// X-Total, X-Page, X-Per-Page and X-Total-Pages headers. When the backend
// omits the headers the payload is treated as a single full page.
func (c *Client) GetPaginated(ctx context.Context, path string, params url.Values, out interface{}) (*PageInfo, error) {
	if len(params) > 0 {
		path = path + "?" + params.Encode()
	}

	body, header, err := c.doRaw(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return nil, errors.NewInternalError("failed to parse response body", err)
		}
	}

	info := &PageInfo{
		Total:      headerInt(header, "X-Total", sliceLen(out)),
		Page:       headerInt(header, "X-Page", 1),
		PerPage:    headerInt(header, "X-Per-Page", sliceLen(out)),
		TotalPages: headerInt(header, "X-Total-Pages", 1),
	}
	return info, nil
}

// do issues a request and decodes a 2xx response body into out when non-nil
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	respBody, _, err := c.doRaw(ctx, method, path, body)
	if err != nil {
		return err
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return errors.NewInternalError("failed to parse response body", err)
		}
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, body interface{}) ([]byte, http.Header, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, nil, errors.NewInternalError("failed to marshal request body", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, errors.NewInternalError("failed to create request", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Logger.Warn("api_request_failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return nil, nil, errors.NewExternalError("request to backend failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, errors.NewExternalError("failed to read response body", err)
	}

	c.logger.Logger.Debug("api_request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		appErr := errors.FromStatusCode(resp.StatusCode, parseErrorMessage(respBody))
		if resp.StatusCode == http.StatusUnauthorized {
			c.fireAuthError()
		}
		return nil, nil, appErr
	}

	return respBody, resp.Header, nil
}

// fireAuthError invokes the registered auth-failure callback, if any
func (c *Client) fireAuthError() {
	c.mu.RLock()
	fn := c.onAuthError
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// parseErrorMessage extracts a human-readable message from an error payload.
// The backend answers either {"message": "..."}, {"error": "..."} or
// {"error": {"message": "..."}}.
func parseErrorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var flat struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &flat); err != nil {
		return ""
	}
	if flat.Message != "" {
		return flat.Message
	}
	if len(flat.Error) > 0 {
		var str string
		if err := json.Unmarshal(flat.Error, &str); err == nil {
			return str
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(flat.Error, &nested); err == nil {
			return nested.Message
		}
	}
	return ""
}

// headerInt parses an integer header with a fallback value
func headerInt(header http.Header, key string, fallback int) int {
	if v := header.Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// sliceLen returns the length of the slice out points at, or 0
func sliceLen(out interface{}) int {
	if out == nil {
		return 0
	}
	v := reflect.ValueOf(out)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() == reflect.Slice {
		return v.Len()
	}
	return 0
}

func pathf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}
