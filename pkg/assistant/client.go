// Package assistant wraps the hosted conversational-AI service's
// thread/run API into a single synchronous Ask operation, plus an audio
// transcription helper. The service is asynchronous and run-based, so Ask
// polls run status at a fixed interval with a hard attempt ceiling to bound
// worst-case latency for the interactive caller.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL targets the hosted assistant API.
	DefaultBaseURL = "https://api.openai.com"

	// DefaultPollInterval and DefaultMaxPollAttempts bound the run polling
	// loop to roughly 30 seconds of wall clock.
	DefaultPollInterval    = time.Second
	DefaultMaxPollAttempts = 30

	// DefaultBetaHeader selects the threads/runs API surface.
	DefaultBetaHeader = "assistants=v2"

	// DefaultTranscribeModel is the speech-to-text model for Transcribe.
	DefaultTranscribeModel = "whisper-1"
)

// Client is a client for the hosted assistant service. Exported fields may
// be adjusted before first use; tests shrink PollInterval and
// MaxPollAttempts to keep the timeout paths fast.
type Client struct {
	BaseURL     string
	APIKey      string
	AssistantID string
	HTTPClient  *http.Client

	PollInterval    time.Duration
	MaxPollAttempts int

	BetaHeader      string
	TranscribeModel string
}

// NewClient creates an assistant client with production defaults. No
// per-request timeout is set beyond the transport's own; the poll ceiling is
// the only overall time bound.
func NewClient(baseURL, apiKey, assistantID string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:         strings.TrimSuffix(baseURL, "/"),
		APIKey:          apiKey,
		AssistantID:     assistantID,
		HTTPClient:      &http.Client{},
		PollInterval:    DefaultPollInterval,
		MaxPollAttempts: DefaultMaxPollAttempts,
		BetaHeader:      DefaultBetaHeader,
		TranscribeModel: DefaultTranscribeModel,
	}
}

// CreateThread creates a new remote conversation thread.
func (c *Client) CreateThread(ctx context.Context) (Thread, error) {
	var t Thread
	if err := c.doJSON(ctx, http.MethodPost, "/v1/threads", map[string]any{}, &t, "create thread"); err != nil {
		return Thread{}, err
	}
	if t.ID == "" {
		return Thread{}, &ShapeError{Op: "create thread", Detail: "missing thread id"}
	}
	return t, nil
}

// AddMessage appends the user's query as a message on the thread.
func (c *Client) AddMessage(ctx context.Context, threadID, text string) error {
	body := map[string]any{
		"role":    "user",
		"content": text,
	}
	return c.doJSON(ctx, http.MethodPost, "/v1/threads/"+threadID+"/messages", body, nil, "add message")
}

// CreateRun starts a run of the configured assistant against the thread.
func (c *Client) CreateRun(ctx context.Context, threadID string) (Run, error) {
	body := map[string]any{
		"assistant_id": c.AssistantID,
	}
	var r Run
	if err := c.doJSON(ctx, http.MethodPost, "/v1/threads/"+threadID+"/runs", body, &r, "create run"); err != nil {
		return Run{}, err
	}
	if r.ID == "" {
		return Run{}, &ShapeError{Op: "create run", Detail: "missing run id"}
	}
	return r, nil
}

// GetRun fetches the current status of a run.
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (Run, error) {
	var r Run
	if err := c.doJSON(ctx, http.MethodGet, "/v1/threads/"+threadID+"/runs/"+runID, nil, &r, "check run status"); err != nil {
		return Run{}, err
	}
	if r.Status == "" {
		return Run{}, &ShapeError{Op: "check run status", Detail: "missing run status"}
	}
	return r, nil
}

// ListMessages fetches the thread's messages, newest first as the remote
// API returns them.
func (c *Client) ListMessages(ctx context.Context, threadID string) ([]ThreadMessage, error) {
	var list messageList
	if err := c.doJSON(ctx, http.MethodGet, "/v1/threads/"+threadID+"/messages", nil, &list, "retrieve messages"); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// doJSON performs one authenticated JSON round trip. Non-2xx statuses become
// a StatusError carrying the response body; decode failures fail closed.
func (c *Client) doJSON(ctx context.Context, method, path string, body, target any, op string) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("OpenAI-Beta", c.betaHeader())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("%s: send request: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return &ShapeError{Op: op, Detail: err.Error()}
	}
	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) betaHeader() string {
	if c.BetaHeader != "" {
		return c.BetaHeader
	}
	return DefaultBetaHeader
}

func (c *Client) pollInterval() time.Duration {
	if c.PollInterval > 0 {
		return c.PollInterval
	}
	return DefaultPollInterval
}

func (c *Client) maxPollAttempts() int {
	if c.MaxPollAttempts > 0 {
		return c.MaxPollAttempts
	}
	return DefaultMaxPollAttempts
}
