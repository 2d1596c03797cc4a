package filter

import (
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"github.com/verte-zerg/poet/internal/textnorm"
)

// Dictionary reports whether a lowercase word is a known word.
type Dictionary interface {
	Load() error
	Contains(word string) (bool, error)
}

// Scorer measures how much of a text is made of dictionary words.
type Scorer struct {
	dict Dictionary
}

// NewScorer returns a Scorer backed by dict. The dictionary is loaded on the
// first call that needs it.
func NewScorer(dict Dictionary) *Scorer {
	return &Scorer{dict: dict}
}

// Score returns the fraction of the text's characters that belong to
// dictionary words. Camel-case words are split and the punctuation '#', ',',
// '.', '?' and '!' is dropped before splitting on whitespace. ok is false when
// no words remain, in which case ratio carries no information.
func (s *Scorer) Score(text string) (ratio float64, ok bool, err error) {
	words := strings.Fields(strings.ToLower(textnorm.StripPunctuation(textnorm.DeCamel(text))))
	if len(words) == 0 {
		return 0, false, nil
	}

	total, known := 0, 0
	var matched []string
	for _, w := range words {
		n := utf8.RuneCountInString(w)
		total += n
		found, lookupErr := s.dict.Contains(w)
		if lookupErr != nil {
			return 0, false, lookupErr
		}
		if found {
			known += n
			matched = append(matched, w)
		}
	}
	ratio = float64(known) / float64(total)

	if log.IsLevelEnabled(log.DebugLevel) {
		log.WithFields(log.Fields{
			"words": words,
			"known": matched,
			"ratio": ratio,
		}).Debug("real word ratio")
	}
	return ratio, true, nil
}

// BelowCutoff reports whether ratio is under cutoff.
func BelowCutoff(ratio, cutoff float64) bool {
	return ratio < cutoff
}

// RealWord returns a filter that is true when the real-word ratio of the text
// is below cutoff. Texts without any words are not flagged. The scorer's
// dictionary is loaded here so that a missing corpus is reported before any
// text is evaluated.
func RealWord(s *Scorer, cutoff float64) (Func, error) {
	if err := checkCutoff(cutoff); err != nil {
		return nil, err
	}
	if err := s.dict.Load(); err != nil {
		return nil, err
	}
	return func(text string) bool {
		ratio, ok, err := s.Score(text)
		if err != nil || !ok {
			return false
		}
		return BelowCutoff(ratio, cutoff)
	}, nil
}
