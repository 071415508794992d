// Package oracle provides the HTTP client for the external
// risk-classification service. The client only ever transmits sanitized
// text; anonymization happens upstream in the audit pipeline.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cipherfeed/client-go/internal/audit"
)

const classifyPath = "/v1/classify"

// Client is the HTTP risk-oracle client. It implements audit.Oracle.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retries    int
	log        *zap.Logger
}

// Option configures the oracle client.
type Option func(*Client)

// WithBaseURL sets the base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithRetries sets the number of retries for transient failures.
func WithRetries(retries int) Option {
	return func(c *Client) {
		c.retries = retries
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the structured logger. Default: no-op.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a new oracle client.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("oracle API key is required")
	}

	c := &Client{
		baseURL: "https://api.cipherfeed.dev",
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		retries: 2,
		log:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// classifyRequest is the wire request for the classify endpoint.
type classifyRequest struct {
	Text string `json:"text"`
}

// classifyResponse mirrors the oracle's verdict with optional fields so a
// missing field is distinguishable from a zero value.
type classifyResponse struct {
	RiskLevel  *string  `json:"riskLevel"`
	Warnings   []string `json:"warnings"`
	SafeToPost *bool    `json:"safeToPost"`
}

// Classify submits sanitized text and returns the oracle's verdict.
// A response missing required fields or carrying an unknown risk level is an
// error; the audit pipeline treats it exactly like an unreachable oracle.
func (c *Client) Classify(ctx context.Context, sanitized string) (*audit.Classification, error) {
	var resp classifyResponse
	if err := c.do(ctx, http.MethodPost, classifyPath, &classifyRequest{Text: sanitized}, &resp); err != nil {
		return nil, err
	}

	if resp.RiskLevel == nil || resp.SafeToPost == nil {
		return nil, fmt.Errorf("%w: missing required fields", ErrMalformedResponse)
	}

	level := audit.Level(*resp.RiskLevel)
	if !level.Valid() {
		return nil, fmt.Errorf("%w: unknown risk level %q", ErrMalformedResponse, *resp.RiskLevel)
	}

	return &audit.Classification{
		Level:      level,
		Warnings:   resp.Warnings,
		SafeToPost: *resp.SafeToPost,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.retries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, lastErr = c.httpClient.Do(req)
		if lastErr == nil && resp.StatusCode < 500 {
			break
		}
		if resp != nil {
			resp.Body.Close()
			resp = nil
		}
		if attempt < c.retries {
			c.log.Debug("oracle request retrying",
				zap.Int("attempt", attempt+1),
				zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt+1) * 500 * time.Millisecond):
			}
		}
	}

	if lastErr != nil {
		return fmt.Errorf("oracle request failed: %w", lastErr)
	}
	if resp == nil {
		return fmt.Errorf("oracle request failed after %d attempts", c.retries+1)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return parseErrorResponse(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}

	return nil
}

func parseErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Error     string `json:"error"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	}

	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &Error{
			StatusCode: resp.StatusCode,
			Message:    errResp.Error,
			RequestID:  errResp.RequestID,
		}
	}

	return &Error{
		StatusCode: resp.StatusCode,
		Message:    string(body),
	}
}
