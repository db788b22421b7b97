package data

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/agent-dashboard/internal/biz/domain"
	"github.com/anthropics/agent-dashboard/internal/biz/repo"
)

const defaultFetchTimeout = 5 * time.Second

// maxBodyBytes caps how much of a response is read
const maxBodyBytes = 1 << 20

// BackendClient is the typed HTTP client for the agent backend. Every
// call is a single attempt; there are no retries at this layer.
type BackendClient struct {
	baseURL      string
	httpClient   *http.Client
	fetchTimeout time.Duration
}

// Option configures a BackendClient
type Option func(*BackendClient)

// WithHTTPClient replaces the underlying HTTP client (used in tests)
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *BackendClient) {
		c.httpClient = httpClient
	}
}

// WithFetchTimeout bounds each stats/appointments retrieval
func WithFetchTimeout(d time.Duration) Option {
	return func(c *BackendClient) {
		c.fetchTimeout = d
	}
}

// NewBackendClient creates a client for the given base URL
func NewBackendClient(baseURL string, opts ...Option) *BackendClient {
	c := &BackendClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{},
		fetchTimeout: defaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchStats retrieves GET /stats
func (c *BackendClient) FetchStats(ctx context.Context) (*domain.StatsSnapshot, error) {
	var snapshot domain.StatsSnapshot
	if err := c.getJSON(ctx, "/stats", &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// FetchAppointments retrieves GET /appointments
func (c *BackendClient) FetchAppointments(ctx context.Context) (*domain.AppointmentsSnapshot, error) {
	var snapshot domain.AppointmentsSnapshot
	if err := c.getJSON(ctx, "/appointments", &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Healthy reports whether GET /health answers 200
func (c *BackendClient) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxBodyBytes))
	return res.StatusCode == http.StatusOK
}

// chatResponse is the success body of POST /chat/web
type chatResponse struct {
	Response string `json:"response"`
}

// Send posts one message to POST /chat/web and returns the agent reply.
// The request deadline comes from ctx; the chat usecase bounds it.
func (c *BackendClient) Send(ctx context.Context, chatReq repo.ChatRequest) (string, error) {
	body, err := json.Marshal(chatReq)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/web", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat request: unexpected status %d", res.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	var payload chatResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	return payload.Response, nil
}

// getJSON issues one GET with the fetch timeout and decodes the body
func (c *BackendClient) getJSON(ctx context.Context, path string, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %d", path, res.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
