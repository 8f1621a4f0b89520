package content

import (
	"strconv"
	"strings"
	"unicode"
)

// CheckAnswer compares the learner's input against the exercise answer.
//
// Normalization rules:
// - Whitespace is trimmed and internal runs collapse to a single space
// - Comparison is case-insensitive for Latin text
// - Arabic diacritics (tashkeel) are stripped on both sides, so an
//   undiacritized answer matches a fully vowelled answer key
// - For multiple choice: matches against the choice text or index (1-based)
func CheckAnswer(learnerAnswer string, ex Exercise) bool {
	learnerAnswer = strings.TrimSpace(learnerAnswer)
	if learnerAnswer == "" {
		return false
	}

	if len(ex.Choices) > 0 {
		return checkMultipleChoice(learnerAnswer, ex)
	}

	return normalizeAnswer(learnerAnswer) == normalizeAnswer(ex.Answer)
}

// checkMultipleChoice checks the learner's answer against the choices.
func checkMultipleChoice(learnerAnswer string, ex Exercise) bool {
	if idx, err := strconv.Atoi(learnerAnswer); err == nil && idx >= 1 && idx <= len(ex.Choices) {
		return normalizeAnswer(ex.Choices[idx-1]) == normalizeAnswer(ex.Answer)
	}
	return normalizeAnswer(learnerAnswer) == normalizeAnswer(ex.Answer)
}

// normalizeAnswer lowercases, strips Arabic diacritics, and collapses
// whitespace for comparison.
func normalizeAnswer(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.Is(unicode.Mn, r):
			// Combining marks (tashkeel and friends) never decide correctness.
		default:
			if space && b.Len() > 0 {
				b.WriteRune(' ')
			}
			space = false
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
