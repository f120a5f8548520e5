package mastodon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/fediwatch/trollhunter/pkg/robusthttp"

	"github.com/carlmjohnson/versioninfo"
	"golang.org/x/time/rate"
)

// Instance used when none is configured.
const DefaultHost = "https://chaos.social"

// responses larger than this are truncated (and will fail to parse)
const maxResponseBytes = 16 << 20

// bytes of a malformed body kept for error messages
const excerptLen = 200

type APIClient struct {
	// Client used for reads (GET). Typically retrying; see robusthttp.NewClient.
	HTTPClient *http.Client

	// Client used for writes (POST). Must not retry on its own; see robusthttp.NewSingleShotClient.
	WriteClient *http.Client

	// Instance base URL, eg "https://chaos.social"
	Host string

	// Applied only to requests marked as authenticated. May be nil for read-only use.
	Auth AuthMethod

	UserAgent string

	// Optional; if set, every request waits on the limiter first.
	Limiter *rate.Limiter

	DefaultHeaders http.Header

	Logger *slog.Logger
}

func DefaultUserAgent() string {
	return fmt.Sprintf("trollhunter/%s", versioninfo.Short())
}

func NewAPIClient(host string) *APIClient {
	return &APIClient{
		HTTPClient:  robusthttp.NewClient(),
		WriteClient: robusthttp.NewSingleShotClient(),
		Host:        host,
		UserAgent:   DefaultUserAgent(),
		DefaultHeaders: http.Header{
			"Accept": []string{"application/json"},
		},
		Logger: slog.Default().With("subsystem", "mastodon"),
	}
}

// Returns a shallow copy of the client which authenticates with the given bearer token.
func (c *APIClient) WithToken(token string) *APIClient {
	out := *c
	out.Auth = &BearerAuth{Token: token}
	return &out
}

func (c *APIClient) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Full-power method for API requests. The caller is responsible for closing the response body.
func (c *APIClient) Do(ctx context.Context, req *APIRequest) (*http.Response, error) {
	httpReq, err := req.HTTPRequest(ctx, c.Host, c.DefaultHeaders)
	if err != nil {
		return nil, err
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent()
	}
	httpReq.Header.Set("User-Agent", ua)
	httpReq.Header.Set("Accept", "application/json")

	client := c.HTTPClient
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		client = c.WriteClient
	}
	if client == nil {
		client = http.DefaultClient
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, &TransportError{URL: httpReq.URL.String(), Timeout: isTimeout(err), Err: err}
		}
	}

	c.logger().Debug("sending request", "method", req.Method, "url", httpReq.URL.String())

	var resp *http.Response
	if req.Authenticated {
		if c.Auth == nil {
			return nil, fmt.Errorf("authentication required for %s %s", req.Method, req.Path)
		}
		resp, err = c.Auth.DoWithAuth(httpReq, client)
	} else {
		resp, err = client.Do(httpReq)
	}
	if err != nil {
		return nil, &TransportError{URL: httpReq.URL.String(), Timeout: isTimeout(err), Err: err}
	}
	return resp, nil
}

// High-level helper for JSON GET endpoints. Decodes the response in to `out`.
func (c *APIClient) Get(ctx context.Context, path string, params url.Values, out any) error {
	req := NewAPIRequest(http.MethodGet, path, nil)
	if params != nil {
		req.QueryParams = params
	}
	return c.doJSON(ctx, req, out)
}

// High-level helper for authenticated, form-encoded POST endpoints. Decodes the response in to `out`.
func (c *APIClient) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	encoded := form.Encode()
	req := NewAPIRequest(http.MethodPost, path, strings.NewReader(encoded))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(encoded)), nil
	}
	req.Headers.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Authenticated = true
	return c.doJSON(ctx, req, out)
}

func (c *APIClient) doJSON(ctx context.Context, req *APIRequest, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	u := req.Path
	if resp.Request != nil {
		u = resp.Request.URL.String()
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &TransportError{URL: u, Timeout: isTimeout(err), Err: fmt.Errorf("reading response body: %w", err)}
	}
	c.logger().Debug("received response", "url", u, "status", resp.StatusCode, "bytes", len(body))

	if !(resp.StatusCode >= 200 && resp.StatusCode < 300) {
		var eb ErrorBody
		if err := json.Unmarshal(body, &eb); err != nil {
			return &APIError{StatusCode: resp.StatusCode}
		}
		return eb.APIError(resp.StatusCode)
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return &EmptyResponseError{URL: u}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		excerpt := string(body)
		if len(excerpt) > excerptLen {
			excerpt = excerpt[:excerptLen]
		}
		return &MalformedResponseError{URL: u, Excerpt: excerpt, Err: err}
	}
	return nil
}
