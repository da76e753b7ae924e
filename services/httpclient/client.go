// Package httpclient is the transport to the campus REST API.
// It attaches the session token, decodes every failure into a *core.APIError
// and notifies the user once, at this boundary.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/siddharth-debugs/college-erp-bite/core"
)

const (
	headerRequestID = "X-Request-ID"
	mimeJSON        = "application/json"
)

// DefaultPublicPaths are sent without the Authorization header.
var DefaultPublicPaths = []string{"/login", "/send-login-otp"}

type (
	Options struct {
		BaseURL    string
		Prefix     string // joined to BaseURL, eg: "api/v1/"
		AuthScheme string // Authorization: <AuthScheme> <token>
		Timeout    time.Duration
		Session    core.SessionStore
		Notifier   core.Notifier
		Logger     core.Logger
		// OnUnauthorized is called after a 401 cleared the session token.
		OnUnauthorized func()
		PublicPaths    []string
		HTTPClient     *http.Client
	}

	Client struct {
		opts Options
		base *url.URL
		http *http.Client
	}

	// Blob is a binary response body.
	Blob struct {
		ContentType string
		Filename    string
		Data        []byte
	}
)

// New returns a Client for opts.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if !strings.HasSuffix(opts.BaseURL, "/") {
		opts.BaseURL += "/"
	}
	if opts.Prefix != "" && !strings.HasSuffix(opts.Prefix, "/") {
		opts.Prefix += "/"
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parsing base URL")
	}
	base, err = base.Parse(strings.TrimPrefix(opts.Prefix, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parsing API prefix")
	}

	if opts.AuthScheme == "" {
		opts.AuthScheme = "Token"
	}
	if opts.PublicPaths == nil {
		opts.PublicPaths = DefaultPublicPaths
	}
	if opts.Notifier == nil {
		opts.Notifier = core.NopNotifier{}
	}
	if opts.Logger == nil {
		opts.Logger = core.NopLogger{}
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{opts: opts, base: base, http: httpClient}, nil
}

// URL resolves path against the API root.
func (c *Client) URL(path string) (string, error) {
	u, err := c.base.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", errors.Wrapf(err, "parsing path %q", path)
	}
	return u.String(), nil
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, path, in, out)
}

func (c *Client) Put(ctx context.Context, path string, in, out interface{}) error {
	return c.doJSON(ctx, http.MethodPut, path, in, out)
}

func (c *Client) Patch(ctx context.Context, path string, in, out interface{}) error {
	return c.doJSON(ctx, http.MethodPatch, path, in, out)
}

func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, out)
}

// GetBlob downloads a binary resource (eg: an admit card PDF).
func (c *Client) GetBlob(ctx context.Context, path string) (Blob, error) {
	return c.doBlob(ctx, http.MethodGet, path, nil)
}

// PostBlob posts in and returns the binary response.
func (c *Client) PostBlob(ctx context.Context, path string, in interface{}) (Blob, error) {
	return c.doBlob(ctx, http.MethodPost, path, in)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	resp, body, err := c.do(ctx, method, path, in, mimeJSON)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err = json.Unmarshal(body, out); err != nil {
		apiErr := &core.APIError{
			Kind:    core.KindUnknown,
			Status:  resp.StatusCode,
			Message: core.MsgUnexpected,
			Err:     errors.Wrapf(err, "decoding %s %s response", method, path),
		}
		c.fail(apiErr)
		return apiErr
	}
	return nil
}

func (c *Client) doBlob(ctx context.Context, method, path string, in interface{}) (Blob, error) {
	resp, body, err := c.do(ctx, method, path, in, "*/*")
	if err != nil {
		return Blob{}, err
	}
	blob := Blob{ContentType: resp.Header.Get("Content-Type"), Data: body}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		blob.Filename = params["filename"]
	}
	return blob, nil
}

// do performs the request. Any returned error other than a context error is a
// *core.APIError whose messages were already notified.
func (c *Client) do(ctx context.Context, method, path string, in interface{}, accept string) (*http.Response, []byte, error) {
	u, err := c.URL(path)
	if err != nil {
		return nil, nil, err
	}

	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, nil, errors.Wrap(err, "encoding request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, nil, errors.Wrap(err, "building request")
	}
	reqID := uuid.New().String()
	req.Header.Set(headerRequestID, reqID)
	req.Header.Set("Accept", accept)
	if in != nil {
		req.Header.Set("Content-Type", mimeJSON)
	}
	if !c.isPublic(path) && c.opts.Session != nil {
		if token := c.opts.Session.Get(core.SessionToken); token != "" {
			req.Header.Set("Authorization", c.opts.AuthScheme+" "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, ctxErr // superseded or cancelled: nothing to tell the user
		}
		apiErr := core.NewNetworkError(errors.Wrapf(err, "%s %s", method, u))
		c.fail(apiErr)
		return nil, nil, apiErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, ctxErr
		}
		apiErr := core.NewNetworkError(errors.Wrap(err, "reading response body"))
		c.fail(apiErr)
		return nil, nil, apiErr
	}
	c.opts.Logger.Debug(
		fmt.Sprintf("%s %s -> %d (%s)", method, u, resp.StatusCode, time.Since(start)),
		map[string]interface{}{"request_id": reqID},
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, body, nil
	}

	apiErr := core.DecodeErrorBody(resp.StatusCode, body)
	c.fail(apiErr)
	return resp, nil, apiErr
}

// fail notifies the user about apiErr and applies its side effects.
func (c *Client) fail(apiErr *core.APIError) {
	for _, msg := range apiErr.Messages() {
		c.opts.Notifier.Error(msg)
	}

	switch apiErr.Kind {
	case core.KindUnauthorized:
		if c.opts.Session != nil {
			if err := c.opts.Session.Remove(core.SessionToken); err != nil {
				c.opts.Logger.Error("clearing session token", err)
			}
		}
		if c.opts.OnUnauthorized != nil {
			c.opts.OnUnauthorized()
		}
	case core.KindServerFault, core.KindNetwork:
		c.opts.Logger.Error(apiErr.Error(), apiErr)
	}
}

func (c *Client) isPublic(path string) bool {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = "/" + strings.Trim(path, "/")
	for _, p := range c.opts.PublicPaths {
		if strings.HasSuffix(path, p) {
			return true
		}
	}
	return false
}
