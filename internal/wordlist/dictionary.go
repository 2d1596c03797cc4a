package wordlist

import (
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Source provides the raw entries of a dictionary corpus.
type Source interface {
	Words() ([]string, error)
}

// FileSource reads a word list file with one entry per line.
type FileSource struct {
	Path string
}

// Words implements Source.
func (s FileSource) Words() ([]string, error) {
	return LoadWords(s.Path)
}

// StaticSource serves an in-memory word list.
type StaticSource []string

// Words implements Source.
func (s StaticSource) Words() ([]string, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return []string(s), nil
}

// Dictionary is a set of lowercase words loaded from a Source on first use.
// The load happens at most once; its result, including a failure, is kept for
// the lifetime of the Dictionary. A Dictionary is safe for concurrent use.
type Dictionary struct {
	src  Source
	keep FilterFunc

	once  sync.Once
	words map[string]struct{}
	err   error
}

// NewDictionary returns a Dictionary backed by src. Entries are lowercased and
// then screened by keep; a nil keep retains every non-empty entry.
func NewDictionary(src Source, keep FilterFunc) *Dictionary {
	if keep == nil {
		keep = keepAll
	}
	return &Dictionary{src: src, keep: keep}
}

// Load reads the corpus if it has not been read yet.
func (d *Dictionary) Load() error {
	d.once.Do(func() {
		if d.src == nil {
			d.err = fmt.Errorf("dictionary has no source")
			return
		}
		entries, err := d.src.Words()
		if err != nil {
			d.err = fmt.Errorf("failed to load dictionary: %w", err)
			return
		}
		words := make(map[string]struct{}, len(entries))
		for _, entry := range entries {
			w := strings.ToLower(entry)
			if !d.keep(w) {
				continue
			}
			words[w] = struct{}{}
		}
		if len(words) == 0 {
			d.err = fmt.Errorf("dictionary has no usable words")
			return
		}
		d.words = words
		log.WithField("words", len(words)).Debug("dictionary loaded")
	})
	return d.err
}

// Contains reports whether word is in the corpus, loading it if needed.
// The lookup is exact; callers lowercase their input.
func (d *Dictionary) Contains(word string) (bool, error) {
	if err := d.Load(); err != nil {
		return false, err
	}
	_, ok := d.words[word]
	return ok, nil
}

// Len returns the number of distinct words, loading the corpus if needed.
func (d *Dictionary) Len() (int, error) {
	if err := d.Load(); err != nil {
		return 0, err
	}
	return len(d.words), nil
}
