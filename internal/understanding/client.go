package understanding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"attestguard/pkg/serviceerror"
)

const serviceName = "Content Understanding"

const (
	defaultAPIVersion   = "2025-11-01"
	defaultPollInterval = 2 * time.Second
	defaultPollTimeout  = 180 * time.Second

	// Refresh bearer tokens this long before they expire.
	tokenRefreshMargin = 5 * time.Minute
)

// Token is a bearer token with its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// TokenSource supplies bearer tokens when key authentication is not used.
// The client caches the token and refreshes it shortly before expiry.
type TokenSource interface {
	Token(ctx context.Context) (Token, error)
}

// Client submits documents for analysis and polls for the result.
type Client struct {
	endpoint     string
	apiVersion   string
	apiKey       string
	tokens       TokenSource
	http         *http.Client
	logger       *slog.Logger
	pollInterval time.Duration
	pollTimeout  time.Duration

	tokenMu     sync.Mutex
	cachedToken Token
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey authenticates with a subscription key.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithTokenSource authenticates with bearer tokens.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithPollInterval overrides the poll cadence, mainly for tests.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) { c.pollInterval = interval }
}

// New constructs a Client. The endpoint and one authentication method are
// required; missing configuration is reported as such, not as a call failure.
func New(endpoint string, logger *slog.Logger, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, serviceerror.Configuration(serviceName, "endpoint is required")
	}
	c := &Client{
		endpoint:     strings.TrimRight(endpoint, "/"),
		apiVersion:   defaultAPIVersion,
		http:         &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
		pollInterval: defaultPollInterval,
		pollTimeout:  defaultPollTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.apiKey == "" && c.tokens == nil {
		return nil, serviceerror.Configuration(serviceName, "either an api key or a token source is required")
	}
	return c, nil
}

// Analyze submits the document and waits for the completed analysis.
func (c *Client) Analyze(ctx context.Context, fileBytes []byte, analyzerID string) (*AnalyzeResult, error) {
	url := fmt.Sprintf("%s/contentunderstanding/analyzers/%s:analyzeBinary?api-version=%s",
		c.endpoint, analyzerID, c.apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(fileBytes))
	if err != nil {
		return nil, serviceerror.Call(serviceName, err)
	}
	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("x-ms-useragent", "attestguard")

	c.logger.InfoContext(ctx, "submitting document for analysis", "analyzer_id", analyzerID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, serviceerror.Classify(serviceName, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	operationLocation := resp.Header.Get("Operation-Location")
	if operationLocation == "" {
		return nil, serviceerror.New(serviceName, serviceerror.CategoryCall, "no operation-location header in response")
	}
	// Drain so the connection can be reused before polling starts.
	_, _ = io.Copy(io.Discard, resp.Body)

	return c.poll(ctx, operationLocation)
}

func (c *Client) poll(ctx context.Context, operationLocation string) (*AnalyzeResult, error) {
	deadline := time.Now().Add(c.pollTimeout)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		result, err := c.fetchOperation(ctx, operationLocation)
		if err != nil {
			return nil, err
		}

		switch strings.ToLower(result.Status) {
		case "succeeded":
			return result, nil
		case "failed":
			msg := "unknown error"
			if result.Error != nil && result.Error.Message != "" {
				msg = result.Error.Message
			}
			return nil, serviceerror.New(serviceName, serviceerror.CategoryCall, "analysis failed: "+msg)
		}

		if time.Now().After(deadline) {
			return nil, serviceerror.Timeout(serviceName, c.pollTimeout)
		}
		select {
		case <-ctx.Done():
			return nil, serviceerror.Classify(serviceName, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Client) fetchOperation(ctx context.Context, operationLocation string) (*AnalyzeResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, operationLocation, nil)
	if err != nil {
		return nil, serviceerror.Call(serviceName, err)
	}
	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, serviceerror.Classify(serviceName, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var result AnalyzeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, serviceerror.Call(serviceName, fmt.Errorf("decode operation response: %w", err))
	}
	return &result, nil
}

func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	if c.apiKey != "" {
		req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)
		return nil
	}
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()
	if time.Until(c.cachedToken.ExpiresAt) < tokenRefreshMargin {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return serviceerror.Classify(serviceName, err)
		}
		c.cachedToken = token
	}
	req.Header.Set("Authorization", "Bearer "+c.cachedToken.Value)
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := fmt.Sprintf("HTTP %d", resp.StatusCode)
	var envelope struct {
		Error OperationError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		msg = fmt.Sprintf("HTTP %d: %s (%s)", resp.StatusCode, envelope.Error.Message, envelope.Error.Code)
	}
	return serviceerror.New(serviceName, serviceerror.CategoryCall, msg)
}
