package keyword

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Case-folds and NFC-normalizes text for caseless substring comparison.
func Fold(s string) string {
	// a Caser keeps internal state, so it needs to be created per call to be safe for concurrent use
	folder := cases.Fold()
	return folder.String(norm.NFC.String(s))
}
