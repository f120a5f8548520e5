package keyword

import (
	"regexp"
	"sort"
	"strings"
)

// Marker entry in a keyword list: when present, any run of ten or more
// exclamation marks also counts as a match.
const ExclamationSentinel = "!!!!!!!!!!!!!!!!!!!"

var exclamationRun = regexp.MustCompile(`!{10,}`)

// Caseless substring matcher over an operator-supplied keyword list. A Matcher is immutable once built.
type Matcher struct {
	keywords []string
	folded   []string
	shouting bool
	// caseless alternation of all keywords, longest first; nil if there are none
	highlight *regexp.Regexp
}

// Builds a matcher. Empty entries are ignored (they would otherwise match
// everything); whitespace-only entries are kept and matched literally.
func NewMatcher(keywords []string) *Matcher {
	m := &Matcher{}
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if kw == ExclamationSentinel {
			m.shouting = true
		}
		m.keywords = append(m.keywords, kw)
		m.folded = append(m.folded, Fold(kw))
	}

	var alts []string
	for _, kw := range m.keywords {
		if kw != ExclamationSentinel {
			alts = append(alts, regexp.QuoteMeta(kw))
		}
	}
	sort.SliceStable(alts, func(i, j int) bool { return len(alts[i]) > len(alts[j]) })
	if m.shouting {
		alts = append(alts, exclamationRun.String())
	}
	if len(alts) > 0 {
		m.highlight = regexp.MustCompile("(?i)" + strings.Join(alts, "|"))
	}
	return m
}

// Returns the first keyword (as configured) found in the text, and whether any matched.
func (m *Matcher) Match(text string) (string, bool) {
	if m == nil {
		return "", false
	}
	folded := Fold(text)
	for i, kw := range m.folded {
		if strings.Contains(folded, kw) {
			return m.keywords[i], true
		}
	}
	if m.shouting && exclamationRun.MatchString(text) {
		return ExclamationSentinel, true
	}
	return "", false
}

func (m *Matcher) Contains(text string) bool {
	_, ok := m.Match(text)
	return ok
}

// Configured keywords, in order, excluding empty entries.
func (m *Matcher) Keywords() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keywords))
	copy(out, m.keywords)
	return out
}

// Rewrites every keyword occurrence in text through mark, leaving the rest
// untouched. Used for display only; matching for indicators goes through Match.
func (m *Matcher) Highlight(text string, mark func(string) string) string {
	if m == nil || m.highlight == nil {
		return text
	}
	return m.highlight.ReplaceAllStringFunc(text, mark)
}
