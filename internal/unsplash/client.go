// Package unsplash is a small client for the Unsplash photo search API.
package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/yildizm/snapgrid/internal/gallery"
)

// Client talks to the Unsplash API. It is safe for concurrent use.
type Client struct {
	config  *Config
	client  *http.Client
	images  *http.Client
	baseURL *url.URL
	limiter *rate.Limiter
}

func New(config *Config) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, NewConfigurationError("base_url", fmt.Sprintf("invalid base URL: %v", err))
	}

	c := &Client{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		images:  newImageClient(config.Timeout),
		baseURL: baseURL,
	}

	if config.RequestsPerHour > 0 {
		every := time.Hour / time.Duration(config.RequestsPerHour)
		c.limiter = rate.NewLimiter(rate.Every(every), config.RequestsPerHour)
	}

	return c, nil
}

// newImageClient bounds only the wait for response headers. Full-size photos
// may stream for longer than the API timeout; the caller's ctx ends them.
func newImageClient(headerTimeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = headerTimeout
	return &http.Client{Transport: transport}
}

// Search returns the photos matching term in API order
func (c *Client) Search(ctx context.Context, term string, perPage int) ([]gallery.Photo, error) {
	result, err := c.SearchPage(ctx, term, perPage)
	if err != nil {
		return nil, err
	}
	return result.Results, nil
}

// SearchPage returns the first result page for term including totals
func (c *Client) SearchPage(ctx context.Context, term string, perPage int) (*SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, NewValidationError("search term is required")
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	endpoint := c.baseURL.JoinPath("/search/photos")
	q := endpoint.Query()
	q.Set("query", term)
	q.Set("client_id", c.config.AccessKey)
	q.Set("per_page", strconv.Itoa(perPage))
	endpoint.RawQuery = q.Encode()

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return nil, NewErrorWithCause(ErrTypeNetwork, "failed to create search request", err)
	}
	c.setHeaders(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, NewErrorWithCause(ErrTypeNetwork, "search request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, handleErrorResponse(resp)
	}

	var result SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, NewErrorWithCause(ErrTypeDecode, "failed to decode search response", err)
	}
	if result.Results == nil {
		result.Results = []gallery.Photo{}
	}

	return &result, nil
}

// Fetch opens the binary content at rawURL. The caller closes the body.
// Image CDN requests do not count against the API quota.
func (c *Client) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, NewValidationError("image URL is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, NewErrorWithCause(ErrTypeValidation, "invalid image URL", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.images.Do(req)
	if err != nil {
		return nil, NewErrorWithCause(ErrTypeNetwork, "image request failed", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer func() { _ = resp.Body.Close() }()
		return nil, handleErrorResponse(resp)
	}

	return resp.Body, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept-Version", "v1")
	req.Header.Set("User-Agent", c.config.UserAgent)
}

// wait blocks until the limiter admits a request. A wait that would outlast
// ctx fails right away.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return NewErrorWithCause(ErrTypeNetwork, "search cancelled", err)
		}
		return NewErrorWithCause(ErrTypeRateLimit, "request quota exhausted", err)
	}
	return nil
}

func handleErrorResponse(resp *http.Response) error {
	message := fmt.Sprintf("request failed with status %d", resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil {
		var errorResp ErrorResponse
		if json.Unmarshal(body, &errorResp) == nil && len(errorResp.Errors) > 0 {
			message = strings.Join(errorResp.Errors, "; ")
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return NewStatusError(ErrTypeAuthentication, resp.StatusCode, message)
	case http.StatusForbidden:
		// Unsplash reports an exhausted quota as 403
		if resp.Header.Get("X-Ratelimit-Remaining") == "0" {
			return NewStatusError(ErrTypeRateLimit, resp.StatusCode, message)
		}
		return NewStatusError(ErrTypeAuthentication, resp.StatusCode, message)
	case http.StatusTooManyRequests:
		return NewStatusError(ErrTypeRateLimit, resp.StatusCode, message)
	case http.StatusNotFound:
		return NewStatusError(ErrTypeNotFound, resp.StatusCode, message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return NewStatusError(ErrTypeValidation, resp.StatusCode, message)
	default:
		return NewStatusError(ErrTypeAPI, resp.StatusCode, message)
	}
}
