package internal

import "strings"

// SanitizeTitle trims whitespace and caps the title at MaxTitleLength runes.
// A title that is empty after trimming falls back to DefaultSessionTitle.
func SanitizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultSessionTitle
	}
	return truncateRunes(title, MaxTitleLength)
}

// SanitizeContent caps message content at MaxContentLength runes.
func SanitizeContent(content string) string {
	return truncateRunes(content, MaxContentLength)
}

// DeriveTitle builds a session title from the first user message: the first
// DerivedTitleLength runes, with an ellipsis marker only when the content was
// actually truncated.
func DeriveTitle(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return DefaultSessionTitle
	}
	runes := []rune(content)
	if len(runes) <= DerivedTitleLength {
		return content
	}
	return string(runes[:DerivedTitleLength]) + "..."
}

// truncateRunes caps s at n runes without splitting a code point
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
