package validation

import (
	"strings"
	"unicode"

	"github.com/julianstephens/niyyah/internal/constants"
	"github.com/julianstephens/niyyah/internal/models"
)

// stripped lists the punctuation removed before comparing text, smart quotes included.
var stripped = map[rune]struct{}{
	'.': {}, ',': {}, ';': {}, ':': {}, '!': {}, '?': {},
	'\'': {}, '"': {}, '(': {}, ')': {},
	'-': {}, '—': {}, '–': {},
	'“': {}, '”': {}, '‘': {}, '’': {},
}

// clean removes punctuation, collapses whitespace runs to a single space and trims
// leading whitespace. Trailing whitespace is kept so a typed trailing space is
// compared against the target. Case folding is rune for rune, so the output
// rune count never depends on fold.
func clean(text string, fold bool) string {
	var b strings.Builder
	b.Grow(len(text))

	inSpace := false
	for _, r := range text {
		if _, ok := stripped[r]; ok {
			continue
		}
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace {
			if b.Len() > 0 {
				b.WriteRune(' ')
			}
			inSpace = false
		}
		if fold {
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	if inSpace && b.Len() > 0 {
		b.WriteRune(' ')
	}
	return b.String()
}

// Normalize lowercases text, strips punctuation and collapses whitespace.
func Normalize(text string) string {
	return clean(text, true)
}

// DisplayText applies the same rules as Normalize but preserves case. Its output
// has the same rune positions as Normalize's for the same input.
func DisplayText(text string) string {
	return clean(text, false)
}

// Validate reports whether input matches target after normalization.
func Validate(input, target string) bool {
	return Normalize(input) == Normalize(target)
}

// matchedPrefix returns the number of leading runes of in that equal target.
func matchedPrefix(in, target []rune) int {
	n := 0
	for n < len(in) && n < len(target) && in[n] == target[n] {
		n++
	}
	return n
}

// Info compares input against target rune by rune.
func Info(input, target string) models.ValidationInfo {
	in := []rune(Normalize(input))
	tgt := []rune(Normalize(target))

	matched := matchedPrefix(in, tgt)
	correct := matched == len(in)

	percent := 0
	if len(tgt) > 0 {
		percent = min(100, len(in)*100/len(tgt))
	}

	return models.ValidationInfo{
		IsCorrectSoFar: correct,
		// Exact length, not percent, decides a complete match.
		IsCompleteMatch: correct && len(in) == len(tgt),
		Percent:         percent,
		InputLength:     len(in),
		TargetLength:    len(tgt),
	}
}

// Highlight splits displayTarget into the portion typed correctly, the portion
// typed incorrectly and the portion not yet typed. displayTarget is expected to
// be the output of DisplayText.
func Highlight(input, displayTarget string) models.HighlightSegments {
	if input == "" {
		return models.HighlightSegments{Remaining: displayTarget}
	}

	in := []rune(Normalize(input))
	tgt := []rune(Normalize(displayTarget))
	display := []rune(displayTarget)

	correctEnd := min(matchedPrefix(in, tgt), len(display))
	inputEnd := min(len(in), len(tgt), len(display))
	if inputEnd < correctEnd {
		inputEnd = correctEnd
	}

	return models.HighlightSegments{
		Correct:   string(display[:correctEnd]),
		Incorrect: string(display[correctEnd:inputEnd]),
		Remaining: string(display[inputEnd:]),
	}
}

// CanSubmit reports whether enough of the affirmation has been typed for a
// manual submit. Only length counts toward the threshold.
func CanSubmit(info models.ValidationInfo) bool {
	return info.Percent >= constants.SubmitThresholdPercent
}

// ShouldAutoSubmit reports whether the input is an exact match.
func ShouldAutoSubmit(info models.ValidationInfo) bool {
	return info.IsCompleteMatch
}
