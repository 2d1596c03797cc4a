// Package screen runs a configured set of filters over texts.
package screen

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/verte-zerg/poet/internal/filter"
	"github.com/verte-zerg/poet/internal/model"
	"github.com/verte-zerg/poet/internal/wordlist"
)

// Filter names used in verdicts and summaries.
const (
	NameURL       = "url"
	NameMention   = "mention"
	NameHashtag   = "hashtag"
	NameNumeral   = "numeral"
	NameTricky    = "tricky"
	NameBlacklist = "blacklist"
	NameLowLetter = "low-letter"
	NameLengths   = "lengths"
	NameRealWord  = "real-word"
	NameRegex     = "regex"
)

type named struct {
	name  string
	check filter.Func
}

// Set is an ordered list of named filters. It is immutable once built and
// safe for concurrent use.
type Set struct {
	filters []named
}

// Build validates settings and returns the filters they enable, in a fixed
// order. Any configuration error is returned before a text is evaluated.
func Build(s model.Settings) (*Set, error) {
	set := &Set{}
	simple := []struct {
		enabled bool
		name    string
		check   filter.Func
	}{
		{s.URL, NameURL, filter.URL},
		{s.Mention, NameMention, filter.ScreenName},
		{s.Hashtag, NameHashtag, filter.Hashtag},
		{s.Numeral, NameNumeral, filter.Numeral},
		{s.Tricky, NameTricky, filter.TrickyChar},
	}
	for _, f := range simple {
		if f.enabled {
			set.add(f.name, f.check)
		}
	}

	if len(s.Blacklist) > 0 || s.BlacklistFile != "" {
		words := append([]string(nil), s.Blacklist...)
		if s.BlacklistFile != "" {
			fromFile, err := wordlist.LoadWords(s.BlacklistFile)
			if err != nil {
				return nil, fmt.Errorf("%s: failed to load blacklist: %w", NameBlacklist, err)
			}
			words = append(words, fromFile...)
		}
		f, err := filter.Blacklist(words)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", NameBlacklist, err)
		}
		set.add(NameBlacklist, f)
	}

	if s.LowLetter != 0 {
		f, err := filter.LowLetter(s.LowLetter)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", NameLowLetter, err)
		}
		set.add(NameLowLetter, f)
	}

	if s.Lengths != "" {
		f, err := filter.LineLength(s.Lengths)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", NameLengths, err)
		}
		set.add(NameLengths, f)
	}

	if s.RealWord != 0 {
		if s.Dictionary == "" {
			return nil, fmt.Errorf("%s: dictionary path is required", NameRealWord)
		}
		dict := wordlist.NewDictionary(wordlist.FileSource{Path: s.Dictionary}, wordlist.FilterForLang(s.Lang))
		f, err := filter.RealWord(filter.NewScorer(dict), s.RealWord)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", NameRealWord, err)
		}
		set.add(NameRealWord, f)
	}

	for i, rule := range s.Regex {
		f, err := filter.Regex(rule.Pattern, rule.IgnoreCase)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", NameRegex, i, err)
		}
		set.add(regexName(i, len(s.Regex)), f)
	}

	log.WithField("filters", strings.Join(set.Names(), ",")).Debug("filter set built")
	return set, nil
}

func regexName(i, total int) string {
	if total == 1 {
		return NameRegex
	}
	return fmt.Sprintf("%s[%d]", NameRegex, i)
}

func (s *Set) add(name string, check filter.Func) {
	s.filters = append(s.filters, named{name: name, check: check})
}

// Len returns the number of filters in the set.
func (s *Set) Len() int {
	return len(s.filters)
}

// Names returns the filter names in evaluation order.
func (s *Set) Names() []string {
	names := make([]string, len(s.filters))
	for i, f := range s.filters {
		names[i] = f.name
	}
	return names
}

// Evaluate runs every filter over text and records those that flagged it.
func (s *Set) Evaluate(text string) model.Verdict {
	v := model.Verdict{Text: text}
	for _, f := range s.filters {
		if f.check(text) {
			v.Flagged = append(v.Flagged, f.name)
		}
	}
	return v
}

// Summarize counts how many verdicts each filter of the set flagged. Every
// filter of the set appears, in evaluation order, even with a zero count.
func (s *Set) Summarize(verdicts []model.Verdict) []model.FilterCount {
	counts := make([]model.FilterCount, len(s.filters))
	index := make(map[string]int, len(s.filters))
	for i, f := range s.filters {
		counts[i].Name = f.name
		index[f.name] = i
	}
	for _, v := range verdicts {
		for _, name := range v.Flagged {
			if i, ok := index[name]; ok {
				counts[i].Flagged++
			}
		}
	}
	return counts
}
