package hunter

import (
	"github.com/fediwatch/trollhunter/indicators"
	"github.com/fediwatch/trollhunter/mastodon"
)

// Everything learned about one account in a single run. Read-only once returned by Engine.Aggregate.
type Result struct {
	Account AccountSnapshot `json:"account"`
	Posts   []PostSnapshot  `json:"posts"`
}

// Point-in-time read of the subject account, plus its indicators.
type AccountSnapshot struct {
	ID             string                       `json:"id"`
	Username       string                       `json:"username"`
	DisplayName    string                       `json:"display_name"`
	Note           string                       `json:"note"`
	CreatedAt      string                       `json:"created_at"`
	FollowersCount int64                        `json:"followers_count"`
	FollowingCount int64                        `json:"following_count"`
	StatusesCount  int64                        `json:"statuses_count"`
	LastStatusAt   string                       `json:"last_status_at,omitempty"`
	Fields         []mastodon.Field             `json:"fields,omitempty"`
	Indicators     indicators.AccountIndicators `json:"potential_troll_indicators"`
}

type PostSnapshot struct {
	ID              string          `json:"id"`
	CreatedAt       string          `json:"created_at"`
	Content         string          `json:"content"`
	URL             string          `json:"url,omitempty"`
	RepliesCount    int64           `json:"replies_count"`
	ReblogsCount    int64           `json:"reblogs_count"`
	FavouritesCount int64           `json:"favourites_count"`
	Replies         []ReplySnapshot `json:"replies"`

	// set when the reply context for this post could not be fetched; Replies is then empty
	ContextErr error  `json:"-"`
	Error      string `json:"error,omitempty"`
}

type ReplySnapshot struct {
	ID        string               `json:"reply_id"`
	CreatedAt string               `json:"created_at"`
	Content   string               `json:"content"`
	URL       string               `json:"url,omitempty"`
	Account   ReplyAccountSnapshot `json:"account"`

	// set when the replying account could not be analyzed; Account.Indicators is then nil
	IndicatorErr error  `json:"-"`
	Error        string `json:"error,omitempty"`
}

// Reduced projection of the account attached to a reply.
type ReplyAccountSnapshot struct {
	ID             string                      `json:"id"`
	Username       string                      `json:"username"`
	Acct           string                      `json:"acct"`
	DisplayName    string                      `json:"display_name"`
	CreatedAt      string                      `json:"created_at"`
	FollowersCount int64                       `json:"followers_count"`
	FollowingCount int64                       `json:"following_count"`
	StatusesCount  int64                       `json:"statuses_count"`
	LastStatusAt   string                      `json:"last_status_at,omitempty"`
	Indicators     *indicators.ReplyIndicators `json:"potential_troll_indicators,omitempty"`
}

// A reply is flagged iff its indicators were computed and at least one is set.
func (r *ReplySnapshot) Flagged() bool {
	return r.Account.Indicators != nil && r.Account.Indicators.Flagged()
}

// Replies with at least one indicator set, in context order.
func (p *PostSnapshot) FlaggedReplies() []ReplySnapshot {
	var out []ReplySnapshot
	for _, r := range p.Replies {
		if r.Flagged() {
			out = append(out, r)
		}
	}
	return out
}

// Replies whose author could not be analyzed, in context order.
func (p *PostSnapshot) UnanalyzableReplies() []ReplySnapshot {
	var out []ReplySnapshot
	for _, r := range p.Replies {
		if r.IndicatorErr != nil {
			out = append(out, r)
		}
	}
	return out
}
