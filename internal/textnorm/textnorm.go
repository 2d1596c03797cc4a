// Package textnorm provides string normalization shared by the text filters.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	nonLetterRe   = regexp.MustCompile(`[^a-zA-Z]`)
	camelWordRe   = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	camelBoundRe  = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	punctuationRe = regexp.MustCompile(`[#,.?!]`)
)

// StripString removes every character that is not an ASCII letter and
// lowercases the rest.
func StripString(text string) string {
	return strings.ToLower(nonLetterRe.ReplaceAllString(text, ""))
}

// DeCamel splits camel-case runs into space-separated lowercase words:
// "SpaceCadetGlee" becomes "space cadet glee".
func DeCamel(word string) string {
	s := camelWordRe.ReplaceAllString(word, "${1} ${2}")
	return strings.ToLower(camelBoundRe.ReplaceAllString(s, "${1} ${2}"))
}

// StripPunctuation drops the sentence punctuation '#', ',', '.', '?' and '!'.
func StripPunctuation(text string) string {
	return punctuationRe.ReplaceAllString(text, "")
}
