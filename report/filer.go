package report

import (
	"context"

	"github.com/fediwatch/trollhunter/mastodon"
)

// Fully-formed report submission. Category and Comment are expected to be
// already coerced and truncated.
type Request struct {
	AccountID string   `json:"account_id"`
	StatusID  string   `json:"status_id"`
	Comment   string   `json:"comment"`
	Category  Category `json:"category"`
	Forward   bool     `json:"forward"`
}

// Files a single report and returns the remote report id. Failures are
// returned as errors; implementations must not retry on their own.
type Filer interface {
	FileReport(ctx context.Context, req Request) (string, error)
}

// Filer backed by the reports endpoint of a Mastodon instance. Client must
// carry credentials (see mastodon.APIClient.WithToken).
type ClientFiler struct {
	Client *mastodon.APIClient
}

var _ Filer = (*ClientFiler)(nil)

func (cf *ClientFiler) FileReport(ctx context.Context, req Request) (string, error) {
	rep, err := cf.Client.FileReport(ctx, mastodon.ReportParams{
		AccountID: req.AccountID,
		StatusIDs: []string{req.StatusID},
		Comment:   req.Comment,
		Category:  req.Category.String(),
		Forward:   req.Forward,
	})
	if err != nil {
		return "", err
	}
	return rep.ID, nil
}
