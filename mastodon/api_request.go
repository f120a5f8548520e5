package mastodon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type APIRequest struct {
	// HTTP method as a string (eg "GET") (required)
	Method string

	// API path relative to the instance root, eg "/api/v1/accounts/lookup". Any dynamic segments must already be path-escaped (required)
	Path string

	// Optional request body (may be nil). If this is provided, then 'Content-Type' header should be specified
	Body io.Reader

	// Optional function to return new reader for request body; used for retries.
	GetBody func() (io.ReadCloser, error)

	// Optional query parameters (field may be nil). These will be encoded as provided.
	QueryParams url.Values

	// Optional HTTP headers (field may be nil). Only the first value will be included for each header key ("Set" behavior).
	Headers http.Header

	// Whether the client's AuthMethod should be applied. Reads of public data are sent without credentials.
	Authenticated bool
}

// Initializes a new request struct. Initializes Headers and QueryParams so they can be manipulated immediately.
func NewAPIRequest(method, path string, body io.Reader) *APIRequest {
	return &APIRequest{
		Method:      method,
		Path:        path,
		Body:        body,
		Headers:     map[string][]string{},
		QueryParams: map[string][]string{},
	}
}

// Creates an [http.Request] for this API request.
//
// `host` parameter should be a URL prefix: schema, hostname, port (required)
//
// `clientHeaders`, if provided, is treated as client-level defaults. Request-level header values take priority.
func (r *APIRequest) HTTPRequest(ctx context.Context, host string, clientHeaders http.Header) (*http.Request, error) {
	base, err := url.Parse(host)
	if err != nil {
		return nil, err
	}
	if base.Host == "" {
		return nil, fmt.Errorf("empty hostname in host URL")
	}
	if base.Scheme == "" {
		return nil, fmt.Errorf("empty scheme in host URL")
	}
	if r.Path == "" || !strings.HasPrefix(r.Path, "/") {
		return nil, fmt.Errorf("invalid request path: %q", r.Path)
	}
	u, err := url.Parse(strings.TrimSuffix(host, "/") + r.Path)
	if err != nil {
		return nil, err
	}
	u.RawQuery = ""
	if len(r.QueryParams) > 0 {
		u.RawQuery = r.QueryParams.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, r.Method, u.String(), r.Body)
	if err != nil {
		return nil, err
	}

	if r.GetBody != nil {
		httpReq.GetBody = r.GetBody
	}

	// first set default headers...
	for k := range clientHeaders {
		httpReq.Header.Set(k, clientHeaders.Get(k))
	}

	// ... then request-specific take priority (overwrite)
	for k := range r.Headers {
		httpReq.Header.Set(k, r.Headers.Get(k))
	}

	return httpReq, nil
}
