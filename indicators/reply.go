package indicators

import "time"

// Inputs for the replier rule set: the replying account plus the reply's own
// content (HTML already stripped).
type ReplyInput struct {
	AccountID      string
	CreatedAt      string
	FollowersCount int64
	StatusesCount  int64
	Content        string
}

type ReplyIndicators struct {
	NewAccount        bool `json:"new_account"`
	LowFollowers      bool `json:"low_followers"`
	LowStatusesCount  bool `json:"low_statuses_count"`
	SuspiciousContent bool `json:"suspicious_content"`
}

// True if any indicator is set.
func (ri ReplyIndicators) Flagged() bool {
	return ri.NewAccount || ri.LowFollowers || ri.LowStatusesCount || ri.SuspiciousContent
}

func (ri ReplyIndicators) Named() []Indicator {
	return []Indicator{
		{Name: "new_account", Value: ri.NewAccount},
		{Name: "low_followers", Value: ri.LowFollowers},
		{Name: "low_statuses_count", Value: ri.LowStatusesCount},
		{Name: "suspicious_content", Value: ri.SuspiciousContent},
	}
}

// Evaluates the replier rule set at instant `now`.
func (r *Rules) EvaluateReply(in ReplyInput, now time.Time) (ReplyIndicators, error) {
	young, err := accountIsYoungerThan(in.AccountID, in.CreatedAt, r.cfg.NewAccountAge, now)
	if err != nil {
		return ReplyIndicators{}, err
	}
	return ReplyIndicators{
		NewAccount:        young,
		LowFollowers:      in.FollowersCount < r.cfg.ReplyLowFollowers,
		LowStatusesCount:  in.StatusesCount < r.cfg.LowStatuses,
		SuspiciousContent: r.content.Contains(in.Content),
	}, nil
}
