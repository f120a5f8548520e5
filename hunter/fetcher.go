package hunter

import (
	"context"

	"github.com/fediwatch/trollhunter/mastodon"
)

// Network reads needed by the aggregator. *mastodon.APIClient implements it.
type Fetcher interface {
	LookupAccount(ctx context.Context, nickname string) (*mastodon.Account, error)
	AccountStatuses(ctx context.Context, accountID string, limit int) ([]mastodon.Status, error)
	StatusContext(ctx context.Context, statusID string) (*mastodon.Context, error)
}

var _ Fetcher = (*mastodon.APIClient)(nil)
