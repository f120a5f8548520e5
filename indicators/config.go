package indicators

import (
	"time"

	"github.com/fediwatch/trollhunter/indicators/keyword"
)

// Thresholds and word lists for both rule sets. Config is plain data; use
// NewRules to get an evaluator.
type Config struct {
	// accounts younger than this are "new"
	NewAccountAge time.Duration

	// subject: fewer followers than this, combined with more statuses than SubjectHighStatuses
	SubjectLowFollowers int64
	SubjectHighStatuses int64

	// both rule sets: fewer statuses than this
	LowStatuses int64

	// replier: fewer followers than this
	ReplyLowFollowers int64

	// caseless phrases looked for in the subject's bio
	NotePhrases []string

	// caseless keywords looked for in reply content; may include keyword.ExclamationSentinel
	TrollKeywords []string
}

func DefaultConfig() Config {
	return Config{
		NewAccountAge:       30 * 24 * time.Hour,
		SubjectLowFollowers: 100,
		SubjectHighStatuses: 1000,
		LowStatuses:         10,
		ReplyLowFollowers:   5,
		NotePhrases: []string{
			"woke",
			"redpill",
			"ironie",
		},
		TrollKeywords: []string{
			"woke",
			"ihr schafe",
			"trump ftw",
			"genderwahnsinn",
			"genderschwachsinn",
			"klimawahn",
			"💙",
			keyword.ExclamationSentinel,
			"Deutsches Reich",
			"Schwachsinn",
			"fuer",
			"nur die afd",
			"ae",
		},
	}
}

// Returns a copy of the config with any lists found in `lists` replacing the
// corresponding defaults (see keyword.LoadListsJSON).
func (c Config) WithLists(lists map[string][]string) Config {
	out := c
	if l, ok := lists[keyword.ListTrollKeywords]; ok {
		out.TrollKeywords = append([]string(nil), l...)
	}
	if l, ok := lists[keyword.ListNotePhrases]; ok {
		out.NotePhrases = append([]string(nil), l...)
	}
	return out
}
