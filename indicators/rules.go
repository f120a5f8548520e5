package indicators

import (
	"strings"
	"time"

	"github.com/fediwatch/trollhunter/indicators/keyword"
	"github.com/fediwatch/trollhunter/util"
)

// Name/value pair for display, in rule-table order.
type Indicator struct {
	Name  string
	Value bool
}

// Compiled form of a Config. Immutable and safe for concurrent use.
type Rules struct {
	cfg     Config
	note    *keyword.Matcher
	content *keyword.Matcher
}

func NewRules(cfg Config) *Rules {
	return &Rules{
		cfg:     cfg,
		note:    keyword.NewMatcher(cfg.NotePhrases),
		content: keyword.NewMatcher(cfg.TrollKeywords),
	}
}

// Keyword matcher used for reply content; exposed for highlighting.
func (r *Rules) ContentMatcher() *keyword.Matcher {
	return r.content
}

// checks if account was created less than `age` before `now`. A missing or unparseable creation time is an error, never a silent 'false'
func accountIsYoungerThan(accountID, createdAt string, age time.Duration, now time.Time) (bool, error) {
	if strings.TrimSpace(createdAt) == "" {
		return false, &UnanalyzableError{AccountID: accountID, Field: "created_at"}
	}
	when, err := util.ParseTimestamp(createdAt)
	if err != nil {
		return false, &UnanalyzableError{AccountID: accountID, Field: "created_at", Value: createdAt, Err: err}
	}
	return now.Sub(when) < age, nil
}
