package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// csrfHeader carries the anti-forgery token on mutating requests.
const csrfHeader = "X-CSRF-Token"

// securityFailureCode is the 403 body code that marks an anti-forgery
// rejection, as opposed to an ordinary authorization failure.
const securityFailureCode = "csrf_failure"

// Service is the surface of the remote practice service the client
// depends on. *Client implements it; tests substitute a MockService.
type Service interface {
	// CreateSession establishes a session and returns its credentials.
	CreateSession(ctx context.Context) (*Session, error)

	// AvailableTypes lists the item types the service can serve.
	AvailableTypes(ctx context.Context) ([]string, error)

	// NextItem fetches the next item. itemType narrows selection when
	// non-empty; the server-held playlist override applies regardless.
	NextItem(ctx context.Context, itemType string) (*ServePayload, error)

	// SubmitAnswer grades one step. Returns *RateLimitError on 429 and
	// *SecurityError on an anti-forgery rejection.
	SubmitAnswer(ctx context.Context, req SubmitRequest, csrfToken string) (*SubmitResult, error)

	// Progress fetches the aggregate accuracy snapshot.
	Progress(ctx context.Context) (*ProgressSnapshot, error)

	// SetPlaylist persists ids as the session's active playlist.
	SetPlaylist(ctx context.Context, ids []string, csrfToken string) error

	// ClearPlaylist removes the session's playlist override.
	ClearPlaylist(ctx context.Context, csrfToken string) error
}

// Client is the HTTP transport adapter. The session cookie travels in
// the jar; the CSRF token is passed explicitly per mutating call so
// callers own the decision of whether a submission is allowed.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

var _ Service = (*Client)(nil)

// NewClient creates a Client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout, Jar: jar},
		log:     log,
	}, nil
}

func (c *Client) CreateSession(ctx context.Context) (*Session, error) {
	raw, err := c.do(ctx, http.MethodPost, "/api/session", nil, nil, "")
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &sess, nil
}

func (c *Client) AvailableTypes(ctx context.Context) ([]string, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/item/types", nil, nil, "")
	if err != nil {
		return nil, err
	}
	var body struct {
		Types []string `json:"types"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return body.Types, nil
}

func (c *Client) NextItem(ctx context.Context, itemType string) (*ServePayload, error) {
	var query url.Values
	if itemType != "" {
		query = url.Values{"type": {itemType}}
	}
	raw, err := c.do(ctx, http.MethodGet, "/api/item/next", query, nil, "")
	if err != nil {
		return nil, err
	}
	return decodeServePayload(raw)
}

func (c *Client) SubmitAnswer(ctx context.Context, req SubmitRequest, csrfToken string) (*SubmitResult, error) {
	raw, err := c.do(ctx, http.MethodPost, "/api/answer", nil, req, csrfToken)
	if err != nil {
		return nil, err
	}
	var res SubmitResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &res, nil
}

func (c *Client) Progress(ctx context.Context) (*ProgressSnapshot, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/progress", nil, nil, "")
	if err != nil {
		return nil, err
	}
	var snap ProgressSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &snap, nil
}

func (c *Client) SetPlaylist(ctx context.Context, ids []string, csrfToken string) error {
	body := struct {
		ItemIDs []string `json:"item_ids"`
	}{ItemIDs: ids}
	_, err := c.do(ctx, http.MethodPut, "/api/playlist", nil, body, csrfToken)
	return err
}

func (c *Client) ClearPlaylist(ctx context.Context, csrfToken string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/playlist", nil, nil, csrfToken)
	return err
}

// do issues one request and classifies the response. A non-empty
// csrfToken marks the request as mutating and attaches the header.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, csrfToken string) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if csrfToken != "" {
		req.Header.Set(csrfHeader, csrfToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, rateLimitFromHeaders(resp.Header)
	case resp.StatusCode == http.StatusForbidden:
		if code := securityCode(raw); code != "" {
			return nil, &SecurityError{Code: code}
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: trimBody(raw)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: trimBody(raw)}
	}
	return raw, nil
}

// rateLimitFromHeaders decodes the 429 cooldown hints. The reset header
// (epoch seconds) takes precedence over Retry-After (delta seconds).
func rateLimitFromHeaders(h http.Header) *RateLimitError {
	rl := &RateLimitError{}
	if v := h.Get("X-RateLimit-Reset"); v != "" {
		if epoch, err := strconv.ParseInt(v, 10, 64); err == nil && epoch > 0 {
			rl.ResetAt = time.Unix(epoch, 0)
		}
	}
	if v := h.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			rl.RetryAfter = time.Duration(secs) * time.Second
		}
	}
	return rl
}

// securityCode extracts a recognized security-failure code from a 403
// body, or "" when the rejection is something else.
func securityCode(raw []byte) string {
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Code == securityFailureCode {
		return body.Code
	}
	return ""
}

func trimBody(raw []byte) string {
	const max = 200
	s := strings.TrimSpace(string(raw))
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}
