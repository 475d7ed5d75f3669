// Package api is the HTTP boundary between the client and the Structura
// backend. It owns request construction (bearer authorization, JSON, form
// and multipart encodings) and defines the single error envelope every
// caller relies on.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// genericErrMsg is the fallback shown when the server response carries no
// usable message.
const genericErrMsg = "something went wrong, please try again"

// Error is the normalized failure of a backend call.
type Error struct {
	// Status is the HTTP status code, or 0 for transport failures.
	Status int
	// Message is human-readable and safe to show to the user.
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// IsAuth reports whether the error is an authorization failure.
func (e *Error) IsAuth() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// envelope matches both error body shapes the backend emits.
type envelope struct {
	Message string `json:"message"`
	Err     string `json:"error"`
}

func (e envelope) text() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != "" {
		return e.Err
	}
	return genericErrMsg
}

// TokenSource supplies the bearer token of the current session. An empty
// token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// File is an attachment for a multipart write (image, pdf, video).
type File struct {
	// Field is the multipart field name.
	Field string
	// Name is the original file name.
	Name string
	// Content is the file body.
	Content io.Reader
}

// Client issues authenticated requests against the backend. Every call is
// fire-once: no retries, no backoff.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *zap.Logger
}

// New creates a Client for the given base URL. tokens may not be nil;
// timeout bounds every request.
func New(baseURL string, tokens TokenSource, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// do sends one request and decodes a 2xx JSON body into out (when out is
// non-nil). Non-2xx responses are decoded into the error envelope and
// returned as *Error; transport failures become *Error with Status 0.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Message: genericErrMsg}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", reqID),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api transport failure", zap.String("path", path), zap.Error(err))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &Error{Message: genericErrMsg}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		apiErr := &Error{Status: resp.StatusCode, Message: env.text()}
		c.log.Debug("api error response",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Status: resp.StatusCode, Message: genericErrMsg}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return &Error{Message: genericErrMsg}
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(b), "application/json", out)
}

func (c *Client) putJSON(ctx context.Context, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return &Error{Message: genericErrMsg}
	}
	return c.do(ctx, http.MethodPut, path, bytes.NewReader(b), "application/json", out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", out)
}

func (c *Client) putForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPut, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", out)
}

// multipart encodes fields and files into a multipart/form-data body and
// sends it with the given method. Used by every file-bearing write.
func (c *Client) multipart(ctx context.Context, method, path string, fields map[string]string, files []File, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return &Error{Message: genericErrMsg}
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return &Error{Message: genericErrMsg}
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return &Error{Message: genericErrMsg}
		}
	}
	if err := mw.Close(); err != nil {
		return &Error{Message: genericErrMsg}
	}
	return c.do(ctx, method, path, &buf, mw.FormDataContentType(), out)
}

func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, files []File, out any) error {
	return c.multipart(ctx, http.MethodPost, path, fields, files, out)
}

func (c *Client) putMultipart(ctx context.Context, path string, fields map[string]string, files []File, out any) error {
	return c.multipart(ctx, http.MethodPut, path, fields, files, out)
}
