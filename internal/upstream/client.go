// Package upstream performs outbound HTTP fetches against third-party
// data sources and classifies the outcome: success yields the raw body,
// failure yields a typed error. Payloads are never interpreted beyond
// JSON validity; callers pass them through verbatim.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/voltaire-systems/govproxy/internal/metrics"
	"github.com/voltaire-systems/govproxy/pkg/logging"
)

const defaultTimeout = 30 * time.Second

// Client fetches documents from upstream HTTP services.
type Client struct {
	httpClient *http.Client
	logger     *logging.Logger
}

// NewClient creates a Client with its own http.Client. A non-positive
// timeout falls back to 30 seconds.
func NewClient(timeout time.Duration, logger *logging.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// FetchText issues a GET and returns the response body as text.
// Non-2xx responses yield an *Error; the body is not parsed.
func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchJSON issues a GET and returns the response body as a raw JSON
// message. A body that is not valid JSON yields a *ParseError.
func (c *Client) FetchJSON(ctx context.Context, url string) (json.RawMessage, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, &ParseError{URL: url, Err: fmt.Errorf("response is not valid JSON")}
	}
	return json.RawMessage(body), nil
}

// FetchJSONPaginated fetches every page of a Koios-style array endpoint
// using limit/offset pagination and returns the concatenation as one
// JSON array. A page returning fewer than limit rows ends the loop, so
// a single short page costs exactly one request.
func (c *Client) FetchJSONPaginated(ctx context.Context, url string, limit int) (json.RawMessage, error) {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}

	// Non-nil so an empty endpoint still marshals as [] rather than null.
	all := []json.RawMessage{}
	for offset := 0; ; offset += limit {
		pageURL := fmt.Sprintf("%s%slimit=%d&offset=%d", url, sep, limit, offset)
		body, err := c.get(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		var batch []json.RawMessage
		if err := json.Unmarshal(body, &batch); err != nil {
			return nil, &ParseError{URL: pageURL, Err: err}
		}

		all = append(all, batch...)
		if len(batch) < limit {
			break
		}
	}

	merged, err := json.Marshal(all)
	if err != nil {
		return nil, &ParseError{URL: url, Err: err}
	}
	return json.RawMessage(merged), nil
}

// get performs one GET and classifies the result. The body is fully
// read before the status is inspected so connections are reused.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(req.URL.Host, "network_error").Inc()
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	metrics.UpstreamRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(req.URL.Host, "network_error").Inc()
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues(req.URL.Host, "http_error").Inc()
		c.logger.WarnContext(ctx, "upstream request failed",
			logging.Upstream(url),
			logging.Status(resp.StatusCode),
		)
		return nil, &Error{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(req.URL.Host, "ok").Inc()
	return body, nil
}
