package mastodon

import (
	"context"
	"fmt"

	"github.com/google/go-querystring/query"
)

// Files a moderation report. Requires Auth to be configured; the request is sent once and never retried.
func (c *APIClient) FileReport(ctx context.Context, p ReportParams) (*Report, error) {
	if p.AccountID == "" {
		return nil, fmt.Errorf("report requires an account id")
	}
	form, err := query.Values(p)
	if err != nil {
		return nil, err
	}

	var out Report
	if err := c.PostForm(ctx, "/api/v1/reports", form, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, &MalformedResponseError{URL: c.Host + "/api/v1/reports", Err: fmt.Errorf("report response has no id")}
	}
	return &out, nil
}
