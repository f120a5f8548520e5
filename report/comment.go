package report

// Longest comment the reports endpoint accepts, in characters.
const MaxCommentLen = 1000

// Returns the first `limit` characters (runes) of s, or s unchanged if it is no longer than that.
func TruncateComment(s string, limit int) string {
	if limit < 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
