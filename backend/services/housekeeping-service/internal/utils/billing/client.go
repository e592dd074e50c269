package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
)

const paymentStatusPath = "/flats/payment-status"

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("billing: unexpected status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Client reads flat payment status from the billing collaborator.
type Client struct {
	BaseURL      *url.URL
	APIKey       string
	HTTPClient   *http.Client
	MaxRetries   int
	RetryInitial time.Duration
	Cache        Cache
}

// NewClient returns a client for baseURL. cache may be nil.
func NewClient(baseURL, apiKey string, maxRetries int, retryInitial time.Duration, cache Cache) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid billing baseURL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid billing baseURL %q", baseURL)
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if retryInitial <= 0 {
		retryInitial = time.Second
	}
	if cache == nil {
		cache = noopCache{}
	}
	return &Client{
		BaseURL:      parsed,
		APIKey:       apiKey,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
		MaxRetries:   maxRetries,
		RetryInitial: retryInitial,
		Cache:        cache,
	}, nil
}

// FetchActiveFlats returns the flat-key → active map, served from the cache
// when fresh.
func (c *Client) FetchActiveFlats(ctx context.Context) (models.ActiveFlatMap, error) {
	if m, ok := c.Cache.Get(ctx); ok {
		return m, nil
	}

	var out map[string]bool
	backoff := c.RetryInitial
	for attempt := 0; ; attempt++ {
		err := c.doOnce(ctx, paymentStatusPath, &out)
		if err == nil {
			break
		}
		var se *StatusError
		if attempt < c.MaxRetries && errors.As(err, &se) && se.retryable() {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}
		return nil, err
	}

	m := models.ActiveFlatMap(out)
	if m == nil {
		m = models.ActiveFlatMap{}
	}
	c.Cache.Set(ctx, m)
	return m, nil
}

func (c *Client) doOnce(ctx context.Context, reqPath string, out any) error {
	u := *c.BaseURL
	u.Path = path.Join(c.BaseURL.Path, reqPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
