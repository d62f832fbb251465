package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

// Client talks to the PrismMail backend REST surface.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries uint64
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit sets the request rate limit in requests per second.
// Non-positive rates keep the default limiter.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMaxRetries caps retry attempts for transient failures.
func WithMaxRetries(n uint64) Option {
	return func(c *Client) { c.maxRetries = n }
}

// NewClient creates a client for the given base URL (e.g. "http://localhost:8080").
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("empty base URL")
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(10), 20),
		maxRetries: 3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do issues a request with rate limiting and backoff on transient failures.
// The response body is returned fully read.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
	}

	var out []byte
	op := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		var rdr io.Reader
		if payload != nil {
			rdr = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Network errors are retryable unless the context is gone.
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			apiErr := &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
			if apiErr.Temporary() {
				return apiErr
			}
			return backoff.Permanent(apiErr)
		}
		out = data
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return out, nil
}

// ListAccounts fetches all configured account connections.
func (c *Client) ListAccounts(ctx context.Context) ([]AccountConnection, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/accounts", nil)
	if err != nil {
		return nil, err
	}
	var accounts []AccountConnection
	if err := decodePayload(raw, &accounts); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	return accounts, nil
}

// ListMail fetches summaries for a folder. An empty accountID selects the
// unified cross-account listing.
func (c *Client) ListMail(ctx context.Context, folder, accountID string) ([]EmailSummary, error) {
	if strings.TrimSpace(folder) == "" {
		return nil, fmt.Errorf("folder cannot be empty")
	}
	var path string
	if accountID == "" {
		path = "/api/mail/unified/" + url.PathEscape(folder)
	} else {
		q := url.Values{}
		q.Set("folder", folder)
		q.Set("accountId", accountID)
		path = "/api/mail?" + q.Encode()
	}
	raw, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var emails []EmailSummary
	if err := decodePayload(raw, &emails); err != nil {
		return nil, fmt.Errorf("decode mail listing: %w", err)
	}
	return emails, nil
}

// UpdateMail patches boolean fields on a message.
func (c *Client) UpdateMail(ctx context.Context, id string, updates EmailUpdates) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("message id cannot be empty")
	}
	_, err := c.do(ctx, http.MethodPatch, "/api/mail/"+url.PathEscape(id), updates)
	return err
}

// ToggleStar flips the starred flag server-side.
func (c *Client) ToggleStar(ctx context.Context, id string) error {
	return c.mailSubRoute(ctx, id, "star")
}

// Archive moves a message to the archive.
func (c *Client) Archive(ctx context.Context, id string) error {
	return c.mailSubRoute(ctx, id, "archive")
}

// Delete moves a message to trash.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.mailSubRoute(ctx, id, "delete")
}

func (c *Client) mailSubRoute(ctx context.Context, id, action string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("message id cannot be empty")
	}
	_, err := c.do(ctx, http.MethodPatch, "/api/mail/"+url.PathEscape(id)+"/"+action, nil)
	return err
}

// SendMail dispatches an outgoing message through the backend.
func (c *Client) SendMail(ctx context.Context, msg OutgoingMessage) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("recipient cannot be empty")
	}
	_, err := c.do(ctx, http.MethodPost, "/api/mail/send", msg)
	return err
}

// TriggerSync asks the backend to sync one account's folder.
func (c *Client) TriggerSync(ctx context.Context, accountID string, req SyncRequest) error {
	if strings.TrimSpace(accountID) == "" {
		return fmt.Errorf("account id cannot be empty")
	}
	_, err := c.do(ctx, http.MethodPost, "/api/accounts/"+url.PathEscape(accountID)+"/sync", req)
	return err
}

// UnifiedCounts fetches per-folder unread/total counts, unified and per account.
func (c *Client) UnifiedCounts(ctx context.Context) (*UnifiedCounts, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/mail/unified-counts", nil)
	if err != nil {
		return nil, err
	}
	var counts UnifiedCounts
	if err := decodePayload(raw, &counts); err != nil {
		return nil, fmt.Errorf("decode counts: %w", err)
	}
	return &counts, nil
}

// GetPreferences fetches the user preferences.
func (c *Client) GetPreferences(ctx context.Context) (*Preferences, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/preferences", nil)
	if err != nil {
		return nil, err
	}
	var prefs Preferences
	if err := decodePayload(raw, &prefs); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	return &prefs, nil
}

// SavePreferences stores the user preferences.
func (c *Client) SavePreferences(ctx context.Context, prefs Preferences) error {
	_, err := c.do(ctx, http.MethodPost, "/api/preferences", prefs)
	return err
}
