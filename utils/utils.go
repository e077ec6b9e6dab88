package utils

// MaxListReplyLength bounds list-style replies so they stay under the
// transport's 2000 character message limit.
const MaxListReplyLength = 1900

func AssertInvariant(condition bool, message string) {
	if !condition {
		panic("invariant violated - " + message)
	}
}

// TruncateRunes cuts text to at most limit runes without splitting a code point
func TruncateRunes(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
