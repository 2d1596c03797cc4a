package filter

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/poet/internal/textnorm"
)

var notLetterOrSpaceRe = regexp.MustCompile(`[^a-zA-Z ]`)

// Blacklist returns a filter that is true when any whitespace-separated word
// of the text, stripped to its ASCII letters and lowercased, is one of words.
// Blacklist entries get the same normalization.
func Blacklist(words []string) (Func, error) {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if n := textnorm.StripString(w); n != "" {
			set[n] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil, ErrEmptyBlacklist
	}
	return func(text string) bool {
		for _, field := range strings.Fields(text) {
			if _, ok := set[textnorm.StripString(field)]; ok {
				return true
			}
		}
		return false
	}, nil
}

// LowLetter returns a filter that is true when the share of ASCII letters and
// spaces in the text is below cutoff. Empty text is never flagged.
func LowLetter(cutoff float64) (Func, error) {
	if err := checkCutoff(cutoff); err != nil {
		return nil, err
	}
	return func(text string) bool {
		total := utf8.RuneCountInString(text)
		if total == 0 {
			return false
		}
		kept := len(notLetterOrSpaceRe.ReplaceAllString(text, ""))
		return float64(kept)/float64(total) < cutoff
	}, nil
}

// LineLength parses a range string such as "0,1,5-8" and returns a filter
// that is false when the text length (in characters) is one of the listed
// lengths and true otherwise.
func LineLength(ranges string) (Func, error) {
	set, err := ParseRangeString(ranges)
	if err != nil {
		return nil, err
	}
	return lineLength(set), nil
}

// LineLengthSet is LineLength for lengths that are already parsed.
func LineLengthSet(lengths ...int) (Func, error) {
	set, err := NewLengthSet(lengths...)
	if err != nil {
		return nil, err
	}
	return lineLength(set), nil
}

func lineLength(set LengthSet) Func {
	return func(text string) bool {
		return !set.Contains(utf8.RuneCountInString(text))
	}
}

// Regex returns a filter that is false when pattern matches somewhere in the
// text and true when it does not. The pattern is compiled immediately.
func Regex(pattern string, ignoreCase bool) (Func, error) {
	expr := pattern
	if ignoreCase {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
	}
	return func(text string) bool {
		return !re.MatchString(text)
	}, nil
}

func checkCutoff(cutoff float64) error {
	if !(cutoff > 0 && cutoff < 1) {
		return fmt.Errorf("%w: got %v", ErrCutoffRange, cutoff)
	}
	return nil
}
