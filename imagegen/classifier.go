package imagegen

import (
	"strings"
	"unicode/utf8"
)

// minPromptRunes is the smallest stripped prompt worth sending; anything
// shorter falls back to the full message.
const minPromptRunes = 3

// patterns are checked in order against the lowercased message; the first
// match wins. Longer phrasings come before their shorter prefixes so that
// "generate an image of" is stripped before "generate".
var patterns = []string{
	"generate an image of",
	"generate a picture of",
	"generate an image",
	"create an image of",
	"create a picture of",
	"create an image",
	"make an image of",
	"make a picture of",
	"show me an image of",
	"show me a picture of",
	"draw me",
	"draw",
	"imagine",
	"visualize",
	"sketch",
	"paint",
	"illustrate",
}

// IsImageRequest reports whether the message asks for an image.
func IsImageRequest(message string) bool {
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, p := range patterns {
		if matchesPattern(lower, p) {
			return true
		}
	}
	return false
}

// ExtractPrompt returns the drawing prompt embedded in an image request. The
// first matching pattern is stripped from the front of the message; if the
// remainder is shorter than three runes the original message is returned
// unchanged. Non-image messages pass through as-is, which makes the
// extraction idempotent.
func ExtractPrompt(message string) string {
	trimmed := strings.TrimSpace(message)
	lower := strings.ToLower(trimmed)
	for _, p := range patterns {
		if !matchesPattern(lower, p) {
			continue
		}
		rest := strings.TrimSpace(trimmed[len(p):])
		rest = strings.TrimLeft(rest, ":,")
		rest = strings.TrimSpace(rest)
		if utf8.RuneCountInString(rest) < minPromptRunes {
			return trimmed
		}
		return rest
	}
	return trimmed
}

// matchesPattern reports whether the lowercased message starts with the
// pattern at a word boundary.
func matchesPattern(lower, p string) bool {
	if !strings.HasPrefix(lower, p) {
		return false
	}
	if len(lower) == len(p) {
		return true
	}
	// "drawing" must not match "draw".
	next := lower[len(p)]
	return next == ' ' || next == ':' || next == ','
}
