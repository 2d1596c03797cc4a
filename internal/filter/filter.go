// Package filter classifies short texts such as social-media posts.
//
// Every filter is a Func. Plain filters are package-level functions; factories
// validate their configuration up front and return a Func bound to it. The
// meaning of a true result differs between filters and is stated on each one:
// most return true when the text has the tested property, while LineLength and
// Regex return false when the text satisfies their configuration.
package filter

import (
	"regexp"

	log "github.com/sirupsen/logrus"
)

// Func evaluates a single text.
type Func func(text string) bool

var (
	urlRe        = regexp.MustCompile(`http://[a-zA-Z0-9./]*\w`)
	screenNameRe = regexp.MustCompile(`@[a-zA-Z0-9]+`)
	hashtagRe    = regexp.MustCompile(`#[a-zA-Z0-9]+`)
	numeralRe    = regexp.MustCompile(`[0-9]`)
	trickyRe     = regexp.MustCompile(`[\x{0080}-\x{024F}]`)
)

// URL returns true when text contains an http:// link.
func URL(text string) bool {
	return urlRe.MatchString(text)
}

// ScreenName returns true when text contains an @mention.
func ScreenName(text string) bool {
	return screenNameRe.MatchString(text)
}

// Hashtag returns true when text contains a #hashtag.
func Hashtag(text string) bool {
	return hashtagRe.MatchString(text)
}

// Numeral returns true when text contains a digit.
func Numeral(text string) bool {
	return numeralRe.MatchString(text)
}

// TrickyCharacters counts the characters of text in the Latin-1 Supplement
// and Latin Extended blocks (U+0080 to U+024F).
func TrickyCharacters(text string) int {
	found := trickyRe.FindAllString(text, -1)
	if len(found) > 0 && log.IsLevelEnabled(log.DebugLevel) {
		log.WithField("chars", found).Debug("tricky characters")
	}
	return len(found)
}

// TrickyChar returns true when text contains at least one accented or
// extended-Latin character.
func TrickyChar(text string) bool {
	return TrickyCharacters(text) > 0
}
