// Package kameleoon is a minimal client for the Kameleoon Data API.
package kameleoon

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
)

const (
	DefaultBaseURL = "https://eu-data.kameleoon.io"

	EventTypeConversion = "CONVERSION"

	// VisitorCodeLength matches the codes issued by the Kameleoon SDKs.
	VisitorCodeLength = 16

	maxErrorBody = 512
)

// Event is the JSON body of POST /visit/events.
type Event struct {
	Nonce     string   `json:"nonce"`
	EventType string   `json:"eventType"`
	GoalID    int64    `json:"goalID"`
	Revenue   *float64 `json:"revenue,omitempty"`
}

// TrackEventParams are the query parameters of POST /visit/events.
type TrackEventParams struct {
	SiteCode    string
	VisitorCode string
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("kameleoon data API error: %s: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("kameleoon data API error: %s", e.Status)
}

// Temporary reports whether retrying the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// Client posts visit events to the Data API for one site.
type Client struct {
	server     *url.URL
	siteCode   string
	httpClient *http.Client
	nonce      func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithNonceSource overrides nonce generation.
func WithNonceSource(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.nonce = fn
		}
	}
}

// NewClient builds a Data API client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL, siteCode string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	siteCode = strings.TrimSpace(siteCode)
	if siteCode == "" {
		return nil, errors.New("kameleoon site code is required")
	}
	server, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse kameleoon data API url: %w", err)
	}
	if server.Scheme == "" || server.Host == "" {
		return nil, fmt.Errorf("kameleoon data API url %q must be absolute", baseURL)
	}
	c := &Client{
		server:     server,
		siteCode:   siteCode,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		nonce:      NewNonce,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// SiteCode returns the configured site code.
func (c *Client) SiteCode() string {
	return c.siteCode
}

// TrackConversion records a goal conversion for the visitor. A nil revenue
// omits the field.
func (c *Client) TrackConversion(ctx context.Context, visitorCode string, goalID int64, revenue *float64) error {
	if c == nil || c.httpClient == nil {
		return errors.New("kameleoon client not configured")
	}
	visitorCode = strings.TrimSpace(visitorCode)
	if visitorCode == "" {
		return errors.New("kameleoon visitor code is required")
	}
	event := Event{
		Nonce:     c.nonce(),
		EventType: EventTypeConversion,
		GoalID:    goalID,
		Revenue:   revenue,
	}
	req, err := newTrackEventRequest(ctx, c.server, TrackEventParams{SiteCode: c.siteCode, VisitorCode: visitorCode}, event)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call kameleoon data API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}

func newTrackEventRequest(ctx context.Context, server *url.URL, params TrackEventParams, event Event) (*http.Request, error) {
	target, err := server.Parse(server.Path + "/visit/events")
	if err != nil {
		return nil, fmt.Errorf("build kameleoon url: %w", err)
	}
	queryValues := target.Query()
	for _, p := range []struct {
		name  string
		value string
	}{
		{"siteCode", params.SiteCode},
		{"visitorCode", params.VisitorCode},
	} {
		frag, err := runtime.StyleParamWithLocation("form", true, p.name, runtime.ParamLocationQuery, p.value)
		if err != nil {
			return nil, fmt.Errorf("style %s: %w", p.name, err)
		}
		parsed, err := url.ParseQuery(frag)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p.name, err)
		}
		for k, values := range parsed {
			for _, v := range values {
				queryValues.Add(k, v)
			}
		}
	}
	target.RawQuery = queryValues.Encode()

	buf, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode kameleoon event: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("build kameleoon request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// NewNonce returns 16 random lowercase hex characters.
func NewNonce() string {
	return randomHex(VisitorCodeLength)
}

// NewVisitorCode returns a fresh 16 character visitor code.
func NewVisitorCode() string {
	return randomHex(VisitorCodeLength)
}

// randomHex draws from the fully random bytes of v4 UUIDs, skipping the
// bytes that carry the version and variant bits.
func randomHex(n int) string {
	var b strings.Builder
	for b.Len() < n {
		id := uuid.New()
		b.WriteString(hex.EncodeToString(id[0:6]))
		b.WriteString(hex.EncodeToString(id[10:16]))
	}
	return b.String()[:n]
}
