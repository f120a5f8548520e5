package mastodon

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Remote rejection: the server answered with a non-2xx status.
type APIError struct {
	StatusCode  int
	Name        string
	Description string
}

func (ae *APIError) Error() string {
	if ae.StatusCode > 0 {
		if ae.Name != "" && ae.Description != "" {
			return fmt.Sprintf("API request failed (HTTP %d): %s: %s", ae.StatusCode, ae.Name, ae.Description)
		} else if ae.Name != "" {
			return fmt.Sprintf("API request failed (HTTP %d): %s", ae.StatusCode, ae.Name)
		}
		return fmt.Sprintf("API request failed (HTTP %d)", ae.StatusCode)
	}
	return "API request failed"
}

// Mastodon error response body
type ErrorBody struct {
	Name        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func (eb *ErrorBody) APIError(statusCode int) error {
	return &APIError{
		StatusCode:  statusCode,
		Name:        eb.Name,
		Description: eb.Description,
	}
}

type TransportError struct {
	URL     string
	Timeout bool
	Err     error
}

func (te *TransportError) Error() string {
	if te.Timeout {
		return fmt.Sprintf("request to %s timed out: %v", te.URL, te.Err)
	}
	return fmt.Sprintf("request to %s failed: %v", te.URL, te.Err)
}

func (te *TransportError) Unwrap() error {
	return te.Err
}

type EmptyResponseError struct {
	URL string
}

func (ee *EmptyResponseError) Error() string {
	return fmt.Sprintf("empty response from %s", ee.URL)
}

type MalformedResponseError struct {
	URL string
	// first bytes of the offending body, for diagnostics
	Excerpt string
	Err     error
}

func (me *MalformedResponseError) Error() string {
	return fmt.Sprintf("invalid JSON response from %s: %v (response: %q)", me.URL, me.Err, me.Excerpt)
}

func (me *MalformedResponseError) Unwrap() error {
	return me.Err
}

type NotFoundError struct {
	Nickname string
	// set when the server answered 404
	Err error
}

func (ne *NotFoundError) Error() string {
	if ne.Err != nil {
		return fmt.Sprintf("account not found: %s: %v", ne.Nickname, ne.Err)
	}
	return fmt.Sprintf("account not found: %s (no account id in response)", ne.Nickname)
}

func (ne *NotFoundError) Unwrap() error {
	return ne.Err
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
