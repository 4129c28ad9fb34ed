// Package api wraps the outbound HTTP layer shared by every portal client.
// Each helper performs exactly one attempt against the backend: no retries,
// no request queuing. Failures come back as *Error with the backend's own
// message so callers can surface it verbatim.
package api

import (
	"bytes"
	"context"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// TokenSource supplies the bearer token attached to authenticated calls.
// An empty token means the call goes out unauthenticated (login endpoints).
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a fixed-token TokenSource, used by tests and the sandbox seeder.
type StaticToken string

func (s StaticToken) Token() (string, error) { return string(s), nil }

// Client is the typed HTTP client shared by all domain clients.
type Client struct {
	http   *resty.Client
	tokens TokenSource
	logger zerolog.Logger
}

func New(baseURL string, timeout time.Duration, tokens TokenSource, logger zerolog.Logger) *Client {
	hc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http:   hc,
		tokens: tokens,
		logger: logger,
	}
}

// File is one part of a multipart upload.
type File struct {
	Field    string
	Name     string
	Contents []byte
}

func (c *Client) request(ctx context.Context) (*resty.Request, error) {
	req := c.http.R().SetContext(ctx).ForceContentType("application/json")
	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return nil, err
		}
		if tok != "" {
			req.SetAuthToken(tok)
		}
	}
	return req, nil
}

func (c *Client) finish(method, path string, resp *resty.Response, err error) error {
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return &Error{Status: 0, Message: "request failed", cause: err}
	}
	if !resp.IsSuccess() {
		apiErr := decodeError(resp.StatusCode(), resp.Body())
		c.logger.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode()).
			Str("message", apiErr.Message).
			Msg("backend rejected request")
		return apiErr
	}
	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode()).
		Dur("latency", resp.Time()).
		Msg("request")
	return nil
}

// Get issues a single GET and decodes the response into T.
func Get[T any](ctx context.Context, c *Client, path string, query url.Values) (*T, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}
	var out T
	req.SetResult(&out)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	resp, err := req.Get(path)
	if err := c.finish("GET", path, resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Post issues a single POST with a JSON body and decodes the response into T.
func Post[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}
	var out T
	req.SetResult(&out)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Post(path)
	if err := c.finish("POST", path, resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Patch issues a single PATCH with a JSON body and decodes the response into T.
func Patch[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}
	var out T
	req.SetResult(&out)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Patch(path)
	if err := c.finish("PATCH", path, resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete issues a single DELETE. The response body is discarded.
func Delete(ctx context.Context, c *Client, path string) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}
	resp, err := req.Delete(path)
	return c.finish("DELETE", path, resp, err)
}

// Upload issues a single multipart POST and decodes the response into T.
func Upload[T any](ctx context.Context, c *Client, path string, files []File) (*T, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}
	var out T
	req.SetResult(&out)
	for _, f := range files {
		req.SetFileReader(f.Field, f.Name, bytes.NewReader(f.Contents))
	}
	resp, err := req.Post(path)
	if err := c.finish("POST", path, resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRaw issues a single GET and returns the raw response body, for media
// downloads where the payload is not JSON.
func (c *Client) GetRaw(ctx context.Context, path string) ([]byte, string, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, "", err
	}
	resp, err := req.Get(path)
	if err := c.finish("GET", path, resp, err); err != nil {
		return nil, "", err
	}
	return resp.Body(), resp.Header().Get("Content-Type"), nil
}
