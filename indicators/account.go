package indicators

import "time"

// Inputs for the subject-account rule set. Note should already have HTML stripped.
type AccountInput struct {
	ID             string
	Note           string
	CreatedAt      string
	FollowersCount int64
	StatusesCount  int64
}

type AccountIndicators struct {
	NewAccount               bool `json:"new_account"`
	LowFollowersHighStatuses bool `json:"low_followers_high_statuses"`
	SuspiciousNote           bool `json:"suspicious_note"`
	LowStatusesCount         bool `json:"low_statuses_count"`
}

// True if any indicator is set.
func (ai AccountIndicators) Flagged() bool {
	return ai.NewAccount || ai.LowFollowersHighStatuses || ai.SuspiciousNote || ai.LowStatusesCount
}

func (ai AccountIndicators) Named() []Indicator {
	return []Indicator{
		{Name: "new_account", Value: ai.NewAccount},
		{Name: "low_followers_high_statuses", Value: ai.LowFollowersHighStatuses},
		{Name: "suspicious_note", Value: ai.SuspiciousNote},
		{Name: "low_statuses_count", Value: ai.LowStatusesCount},
	}
}

// Evaluates the subject-account rule set at instant `now`.
func (r *Rules) EvaluateAccount(in AccountInput, now time.Time) (AccountIndicators, error) {
	young, err := accountIsYoungerThan(in.ID, in.CreatedAt, r.cfg.NewAccountAge, now)
	if err != nil {
		return AccountIndicators{}, err
	}
	return AccountIndicators{
		NewAccount:               young,
		LowFollowersHighStatuses: in.FollowersCount < r.cfg.SubjectLowFollowers && in.StatusesCount > r.cfg.SubjectHighStatuses,
		SuspiciousNote:           r.note.Contains(in.Note),
		LowStatusesCount:         in.StatusesCount < r.cfg.LowStatuses,
	}, nil
}
