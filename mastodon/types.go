package mastodon

// Subset of the Mastodon Account entity. Timestamps are kept as the raw
// strings the server sent; parsing (and failing on missing values) is left to
// the caller.
type Account struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	Acct           string  `json:"acct"`
	DisplayName    string  `json:"display_name"`
	Note           string  `json:"note"`
	URL            string  `json:"url,omitempty"`
	Bot            bool    `json:"bot,omitempty"`
	CreatedAt      string  `json:"created_at"`
	FollowersCount int64   `json:"followers_count"`
	FollowingCount int64   `json:"following_count"`
	StatusesCount  int64   `json:"statuses_count"`
	LastStatusAt   string  `json:"last_status_at,omitempty"`
	Fields         []Field `json:"fields,omitempty"`
}

// Profile metadata field ("name: value" pairs shown on the profile)
type Field struct {
	Name       string  `json:"name"`
	Value      string  `json:"value"`
	VerifiedAt *string `json:"verified_at,omitempty"`
}

// Subset of the Mastodon Status entity.
type Status struct {
	ID                 string  `json:"id"`
	CreatedAt          string  `json:"created_at"`
	InReplyToID        *string `json:"in_reply_to_id,omitempty"`
	InReplyToAccountID *string `json:"in_reply_to_account_id,omitempty"`
	Content            string  `json:"content"`
	URL                string  `json:"url,omitempty"`
	Visibility         string  `json:"visibility,omitempty"`
	RepliesCount       int64   `json:"replies_count"`
	ReblogsCount       int64   `json:"reblogs_count"`
	FavouritesCount    int64   `json:"favourites_count"`
	Account            Account `json:"account"`
}

// Conversation around a single status
type Context struct {
	Ancestors   []Status `json:"ancestors"`
	Descendants []Status `json:"descendants"`
}

// Moderation report, as returned after filing
type Report struct {
	ID          string `json:"id"`
	ActionTaken bool   `json:"action_taken"`
	Category    string `json:"category,omitempty"`
	Comment     string `json:"comment,omitempty"`
	Forwarded   bool   `json:"forwarded,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Parameters for POST /api/v1/reports. The body is form-encoded, so these use URL encoding tags, not JSON.
type ReportParams struct {
	AccountID string   `url:"account_id"`
	StatusIDs []string `url:"status_ids,brackets,omitempty"`
	Comment   string   `url:"comment"`
	Category  string   `url:"category,omitempty"`
	// always sent, as "true" or "false"
	Forward bool `url:"forward"`
}
