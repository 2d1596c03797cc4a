// Package model defines shared data structures.
package model

// Settings defines which filters run and how they are configured.
// Zero values disable a filter.
type Settings struct {
	URL           bool
	Mention       bool
	Hashtag       bool
	Numeral       bool
	Tricky        bool
	Blacklist     []string
	BlacklistFile string
	LowLetter     float64
	Lengths       string
	RealWord      float64
	Lang          string
	Dictionary    string
	Regex         []RegexRule
}

// RegexRule configures one regex filter.
type RegexRule struct {
	Pattern    string
	IgnoreCase bool
}

// Verdict is the outcome of running a filter set over one text.
type Verdict struct {
	Text    string
	Flagged []string
}

// Passed reports whether no filter flagged the text.
func (v Verdict) Passed() bool {
	return len(v.Flagged) == 0
}

// FilterCount is the number of texts a filter flagged.
type FilterCount struct {
	Name    string
	Flagged int
}
