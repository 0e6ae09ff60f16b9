// Package api is the typed client of the firmware API used by the console.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	headerToken     = "token"
	headerRequestID = "X-Request-ID"
	contentTypeJSON = "application/json"
)

// Client issues requests against one firmware API server on behalf of one
// session.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	upload  UploadConfig
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger. Requests are logged at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithUpload sets the media host used by UploadFirmwareAsset.
func WithUpload(cfg UploadConfig) Option {
	return func(c *Client) { c.upload = cfg }
}

// NewClient returns a client for the server at baseURL. A nil session is
// replaced by a fresh one.
func NewClient(baseURL string, session *Session, opts ...Option) *Client {
	if session == nil {
		session = NewSession()
	}
	c := &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
		session: session,
		upload:  DefaultUploadConfig(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *Session {
	return c.session
}

// request sends one authenticated JSON request and decodes the response
// into T. A nil payload sends no body.
func request[T any](ctx context.Context, c *Client, method, path string, payload any) (T, error) {
	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		var zero T
		return zero, err
	}
	req.Header.Set(headerToken, c.session.Token())
	return send[T](c, req)
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", contentTypeJSON)
	if payload != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	req.Header.Set(headerRequestID, uuid.NewString())
	return req, nil
}

// send performs req once. Non-2xx answers become *APIError carrying the raw
// body; an empty 2xx body yields the zero T.
func send[T any](c *Client, req *http.Request) (T, error) {
	var out T

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.Redacted()),
			zap.Error(err),
		)
		return out, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("request done",
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
		zap.String("request_id", req.Header.Get(headerRequestID)),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &APIError{Status: resp.StatusCode, Message: string(data)}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("invalid response: %w", err)
	}
	return out, nil
}

// listOf turns a decoded JSON null into an empty list.
func listOf[T any](items []T, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	return nonNil(items), nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
