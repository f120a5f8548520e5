package mastodon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"
)

// Query for GET /api/v1/accounts/lookup
type lookupParams struct {
	Acct string `url:"acct"`
}

// Query for GET /api/v1/accounts/:id/statuses
type statusesParams struct {
	// sent explicitly; replies are where trolls are found
	ExcludeReplies bool `url:"exclude_replies"`
	// zero means the server default page size
	Limit int `url:"limit,omitempty"`
}

// Resolves a nickname ("user" or "user@instance.example") to an account.
//
// A 404 from the server, or a payload without an account id, is returned as a *NotFoundError.
func (c *APIClient) LookupAccount(ctx context.Context, nickname string) (*Account, error) {
	nickname = strings.TrimPrefix(strings.TrimSpace(nickname), "@")
	if nickname == "" {
		return nil, fmt.Errorf("empty nickname")
	}

	params, err := query.Values(lookupParams{Acct: nickname})
	if err != nil {
		return nil, err
	}

	var out Account
	if err := c.Get(ctx, "/api/v1/accounts/lookup", params, &out); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, &NotFoundError{Nickname: nickname, Err: err}
		}
		return nil, err
	}
	if out.ID == "" {
		return nil, &NotFoundError{Nickname: nickname}
	}
	return &out, nil
}

// Fetches the most recent statuses posted by an account, including its replies to others.
//
// If limit is zero, the server default page size is used.
func (c *APIClient) AccountStatuses(ctx context.Context, accountID string, limit int) ([]Status, error) {
	if accountID == "" {
		return nil, fmt.Errorf("empty account id")
	}
	if limit < 0 {
		limit = 0
	}
	params, err := query.Values(statusesParams{ExcludeReplies: false, Limit: limit})
	if err != nil {
		return nil, err
	}

	var out []Status
	if err := c.Get(ctx, "/api/v1/accounts/"+url.PathEscape(accountID)+"/statuses", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}
