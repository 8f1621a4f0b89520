// Package hints produces the progressively revealing hints and
// encouragement messages used by the bounded retry protocol.
//
// Reveal budgets are Unicode-aware: for Arabic text the budget counts
// base letters only, with tashkeel carried along by the letter they
// mark; for other scripts it counts non-space characters.
package hints

import (
	"math"
	"strings"
	"unicode"
)

// MaxRetryAttempts is the retry bound; the fifth hint discloses the
// full answer.
const MaxRetryAttempts = 5

// revealFractions maps the hint level (1-based) to the fraction of the
// answer revealed at that level.
var revealFractions = [MaxRetryAttempts]float64{0, 0.15, 0.40, 0.60, 1.0}

// messages frames each failed attempt as productive retrieval practice.
var messages = [MaxRetryAttempts]string{
	"Not quite — try recalling it before peeking. The effort itself strengthens memory.",
	"Still not it. Here's the beginning to jog your recall.",
	"Getting closer. A bigger piece this time — say it out loud before answering.",
	"One more try. Most of the answer is in front of you now.",
	"Here's the full answer. Read it carefully, then you'll see it again soon.",
}

// Hint is the disclosure produced for one retry attempt.
type Hint struct {
	Level          int
	Message        string
	HintText       string // empty at level 1
	ShowFullAnswer bool
}

// RetryHint returns the hint for the given attempt number, clamped to
// [1, MaxRetryAttempts]. Level 1 carries encouragement only; level 5
// discloses the full answer.
func RetryHint(answer string, attemptNumber int, arabic bool) Hint {
	level := attemptNumber
	if level < 1 {
		level = 1
	}
	if level > MaxRetryAttempts {
		level = MaxRetryAttempts
	}

	h := Hint{Level: level, Message: messages[level-1]}
	switch {
	case level == 1:
		// No text reveal on the first miss.
	case level == MaxRetryAttempts:
		h.HintText = answer
		h.ShowFullAnswer = true
	default:
		h.HintText = ProgressiveReveal(answer, revealFractions[level-1], arabic)
	}
	return h
}

// ProgressiveReveal returns the leading portion of answer sized by pct,
// clamped to [0,1]. Any pct below a single unit still reveals one unit;
// pct >= 1 returns the answer unchanged. An ellipsis marks hidden text.
func ProgressiveReveal(answer string, pct float64, arabic bool) string {
	if answer == "" {
		return ""
	}
	if pct < 0 {
		pct = 0
	}
	if pct >= 1 {
		return answer
	}
	if arabic {
		return revealArabic(answer, pct)
	}
	return revealPlain(answer, pct)
}

// revealPlain budgets over non-space characters; spaces are preserved
// verbatim and never consume budget.
func revealPlain(answer string, pct float64) string {
	runes := []rune(answer)
	visible := 0
	for _, r := range runes {
		if !unicode.IsSpace(r) {
			visible++
		}
	}
	if visible == 0 {
		return answer
	}

	budget := revealBudget(visible, pct)
	var b strings.Builder
	revealed := 0
	for _, r := range runes {
		if unicode.IsSpace(r) {
			b.WriteRune(r)
			continue
		}
		if revealed >= budget {
			break
		}
		b.WriteRune(r)
		revealed++
	}
	if revealed < visible {
		b.WriteString("...")
	}
	return b.String()
}

// revealArabic budgets over base letters; a diacritic travels with the
// letter it follows, and hidden base letters end the reveal.
func revealArabic(answer string, pct float64) string {
	runes := []rune(answer)
	baseCount := 0
	for _, r := range runes {
		if !isArabicDiacritic(r) && !unicode.IsSpace(r) {
			baseCount++
		}
	}
	if baseCount == 0 {
		return answer
	}

	budget := revealBudget(baseCount, pct)
	var b strings.Builder
	revealed := 0
	lastRevealed := false
	for _, r := range runes {
		if isArabicDiacritic(r) {
			if lastRevealed {
				b.WriteRune(r)
			}
			continue
		}
		if revealed >= budget {
			break
		}
		if unicode.IsSpace(r) {
			b.WriteRune(r)
			lastRevealed = false
			continue
		}
		b.WriteRune(r)
		revealed++
		lastRevealed = true
	}
	if revealed < baseCount {
		b.WriteString("...")
	}
	return b.String()
}

// revealBudget converts a fraction into a unit count, always at least one.
func revealBudget(units int, pct float64) int {
	budget := int(math.Ceil(float64(units) * pct))
	if budget < 1 {
		budget = 1
	}
	if budget > units {
		budget = units
	}
	return budget
}

// FirstCharacter returns the smallest meaningful opening of text: for
// Arabic, the first base letter with any diacritics attached to it; for
// other scripts, the first non-space character.
func FirstCharacter(text string, arabic bool) string {
	runes := []rune(text)
	if arabic {
		start := 0
		for start < len(runes) && (isArabicDiacritic(runes[start]) || unicode.IsSpace(runes[start])) {
			start++
		}
		if start >= len(runes) {
			return ""
		}
		end := start + 1
		for end < len(runes) && isArabicDiacritic(runes[end]) {
			end++
		}
		return string(runes[start:end])
	}
	for _, r := range runes {
		if !unicode.IsSpace(r) {
			return string(r)
		}
	}
	return ""
}

// IsArabicText reports whether text contains any character in the
// Arabic or Arabic Supplement blocks. Arabic-Indic digits match too.
func IsArabicText(text string) bool {
	for _, r := range text {
		if (r >= 0x0600 && r <= 0x06FF) || (r >= 0x0750 && r <= 0x077F) {
			return true
		}
	}
	return false
}

// isArabicDiacritic reports whether r is a combining mark (tashkeel,
// superscript alef, Quranic annotation marks).
func isArabicDiacritic(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
