package mastodon

import (
	"net/http"
	"strings"
)

type AuthMethod interface {
	DoWithAuth(req *http.Request, c *http.Client) (*http.Response, error)
}

// OAuth bearer token, eg a personal access token from the instance's
// development settings page.
type BearerAuth struct {
	Token string
}

func (a *BearerAuth) DoWithAuth(req *http.Request, c *http.Client) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(a.Token))
	return c.Do(req)
}
