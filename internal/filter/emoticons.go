package filter

import "regexp"

var emoticonRe = regexp.MustCompile(`[=:;].{0,2}[()\[\]{}|\\$DpoO0*]+`)

// Emoticons returns the emoticon-like substrings of text, such as ":-)" or
// ";D", in the order they appear. It returns nil when there are none.
func Emoticons(text string) []string {
	return emoticonRe.FindAllString(text, -1)
}
