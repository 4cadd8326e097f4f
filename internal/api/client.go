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

	"go.uber.org/zap"
)

// TokenSource supplies the bearer token attached to gateway requests.
// ok is false when no token is stored.
type TokenSource interface {
	Token(ctx context.Context) (token string, ok bool)
}

// Client talks to the PlanbookAI REST gateway. The zero value is not
// usable; construct with New.
type Client struct {
	baseURL string
	tokens  TokenSource
	log     *zap.Logger

	// HTTPClient performs the requests. Replaceable in tests.
	HTTPClient *http.Client

	// onUnauthorized runs once per 401 response, before the error is
	// returned. The session registers token clearing here so that an
	// authentication failure destroys the stored credential regardless
	// of which call hit it.
	onUnauthorized func(ctx context.Context)
}

// New constructs a gateway client for the given base URL. tokens may be nil
// for unauthenticated use.
func New(baseURL string, tokens TokenSource, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		log:        log,
		HTTPClient: &http.Client{},
	}
}

// SetOnUnauthorized registers fn to run whenever the gateway answers 401.
func (c *Client) SetOnUnauthorized(fn func(ctx context.Context)) {
	c.onUnauthorized = fn
}

// GetJSON issues a GET and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

// PostJSON issues a POST with a JSON body and decodes the response into out.
// in may be nil for body-less operations such as publish.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	body, err := jsonBody(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, "application/json", body, out)
}

// PutJSON issues a PUT with a JSON body and decodes the response into out.
func (c *Client) PutJSON(ctx context.Context, path string, in, out any) error {
	body, err := jsonBody(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, "application/json", body, out)
}

// DeleteJSON issues a DELETE and decodes the response into out, if any.
func (c *Client) DeleteJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, "", nil, out)
}

// PostForm issues a POST with a form-encoded body, the content type the
// authentication endpoint requires.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	body := strings.NewReader(form.Encode())
	return c.do(ctx, http.MethodPost, path, "application/x-www-form-urlencoded", body, out)
}

// File is one part of a multipart upload.
type File struct {
	// Field is the form field name.
	Field string
	// Name is the file name sent to the gateway.
	Name string
	// Reader supplies the file content.
	Reader io.Reader
}

// Upload issues a multipart POST carrying the given files, used for the
// OCR grading endpoint.
func (c *Client) Upload(ctx context.Context, path string, files []File, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return fmt.Errorf("copy upload part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, w.FormDataContentType(), &buf, out)
}

func jsonBody(in any) (io.Reader, error) {
	if in == nil {
		return nil, nil
	}
	b, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(b), nil
}

// do performs one request/response cycle. Failures are always returned as
// *Error so callers can classify them.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Kind: KindUnknown, Detail: "yêu cầu không hợp lệ", cause: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		// No response at all: network failure, never destroys the session.
		return &Error{Kind: KindNetwork, Detail: "Không thể kết nối đến máy chủ", cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		apiErr := newStatusError(resp.StatusCode, raw)
		if apiErr.Kind == KindUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		c.log.Debug("gateway request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{StatusCode: resp.StatusCode, Kind: KindUnknown, Detail: "phản hồi không hợp lệ", cause: err}
	}
	return nil
}
