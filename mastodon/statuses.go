package mastodon

import (
	"context"
	"fmt"
	"net/url"
)

// Fetches ancestors and descendants of a status. Descendants are in the order the server returned them.
func (c *APIClient) StatusContext(ctx context.Context, statusID string) (*Context, error) {
	if statusID == "" {
		return nil, fmt.Errorf("empty status id")
	}
	var out Context
	if err := c.Get(ctx, "/api/v1/statuses/"+url.PathEscape(statusID)+"/context", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
