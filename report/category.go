package report

import (
	"strings"

	"github.com/fediwatch/trollhunter/indicators/keyword"
)

// Moderation report category accepted by the reports endpoint.
type Category string

const (
	CategorySpam      Category = "spam"
	CategoryLegal     Category = "legal"
	CategoryViolation Category = "violation"
	CategoryOther     Category = "other"
)

var AllCategories = []Category{CategorySpam, CategoryLegal, CategoryViolation, CategoryOther}

func (c Category) String() string {
	return string(c)
}

// Parses operator input (trimmed, case-folded). Unknown values map to
// CategoryOther with ok=false; they are never rejected.
func ParseCategory(s string) (Category, bool) {
	folded := keyword.Fold(strings.TrimSpace(s))
	for _, c := range AllCategories {
		if folded == string(c) {
			return c, true
		}
	}
	return CategoryOther, false
}
