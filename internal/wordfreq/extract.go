package wordfreq

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/verte-zerg/poet/internal/wordlist"
)

const dataDir = "wordfreq/data/"

// List types in preference order; "large" covers more words.
var listTypes = []string{"large", "small"}

// Source serves the words of one language from a wordfreq wheel, most frequent
// first. A Limit of zero or less keeps every word.
type Source struct {
	Wheel string
	Lang  string
	Limit int
}

// Words implements wordlist.Source.
func (s Source) Words() ([]string, error) {
	return ExtractWordlist(s.Wheel, s.Lang, s.Limit)
}

var _ wordlist.Source = Source{}

type wordEntry struct {
	word  string
	score float64
}

// ListLanguages returns the sorted language codes that have word data in the wheel.
func ListLanguages(wheelPath string) ([]string, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	seen := make(map[string]struct{})
	for _, file := range reader.File {
		if lang, _, ok := parseDataFile(file.Name); ok {
			seen[lang] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("no languages found in wordfreq wheel")
	}
	langs := make([]string, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs, nil
}

// ExtractWordlist returns the alphabetic, lowercased words of lang ordered by
// frequency, screened by wordlist.FilterForLang. The large list is used when
// the wheel has one, otherwise the small list.
func ExtractWordlist(wheelPath, lang string, limit int) ([]string, error) {
	if wheelPath == "" {
		return nil, fmt.Errorf("wheel path is required")
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return nil, fmt.Errorf("language is required")
	}

	entries, err := readWordEntries(wheelPath, lang)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].score > entries[j].score
	})

	keep := wordlist.FilterForLang(lang)
	seen := make(map[string]struct{}, len(entries))
	words := make([]string, 0, len(entries))
	for _, entry := range entries {
		word := strings.ToLower(entry.word)
		if _, ok := seen[word]; ok {
			continue
		}
		if !isAlpha(word) || !keep(word) {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
		if limit > 0 && len(words) >= limit {
			break
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no words found for %s", lang)
	}
	return words, nil
}

func readWordEntries(wheelPath, lang string) ([]wordEntry, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	file := selectDataFile(reader.File, lang)
	if file == nil {
		return nil, fmt.Errorf("no word data for language %q", lang)
	}
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	var r io.Reader = rc
	if strings.HasSuffix(file.Name, ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		r = gz
	}

	payload, err := msgpack.NewDecoder(r).DecodeInterface()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", file.Name, err)
	}
	return entriesFromData(payload)
}

func selectDataFile(files []*zip.File, lang string) *zip.File {
	byType := make(map[string]*zip.File)
	for _, file := range files {
		fileLang, listType, ok := parseDataFile(file.Name)
		if ok && fileLang == lang {
			byType[listType] = file
		}
	}
	for _, listType := range listTypes {
		if file, ok := byType[listType]; ok {
			return file
		}
	}
	return nil
}

// parseDataFile splits "wordfreq/data/large_en.msgpack.gz" into ("en", "large").
func parseDataFile(name string) (string, string, bool) {
	name = strings.ToLower(name)
	if !strings.HasPrefix(name, dataDir) {
		return "", "", false
	}
	base := strings.TrimPrefix(name, dataDir)
	base = strings.TrimSuffix(base, ".gz")
	if !strings.HasSuffix(base, ".msgpack") {
		return "", "", false
	}
	base = strings.TrimSuffix(base, ".msgpack")
	for _, listType := range listTypes {
		if lang, ok := strings.CutPrefix(base, listType+"_"); ok && lang != "" {
			return lang, listType, true
		}
	}
	return "", "", false
}

// entriesFromData reads the cB layout: an optional header map followed by one
// list of words per frequency bin, most frequent bin first. Bins given as
// [score, [words...]] pairs carry their own score.
func entriesFromData(data interface{}) ([]wordEntry, error) {
	items, ok := data.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unsupported msgpack root type %T", data)
	}
	var entries []wordEntry
	for i, item := range items {
		switch item.(type) {
		case map[string]interface{}, map[interface{}]interface{}:
			continue
		}
		if pair, ok := item.([]interface{}); ok && len(pair) == 2 {
			if score, ok := toFloat64(pair[0]); ok {
				words, ok := toStringSlice(pair[1])
				if !ok {
					return nil, fmt.Errorf("bin %d: unsupported word list", i)
				}
				entries = appendWords(entries, words, score)
				continue
			}
		}
		words, ok := toStringSlice(item)
		if !ok {
			return nil, fmt.Errorf("bin %d: unsupported entry %T", i, item)
		}
		entries = appendWords(entries, words, -float64(i))
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("wordfreq data contained no entries")
	}
	return entries, nil
}

func appendWords(entries []wordEntry, words []string, score float64) []wordEntry {
	for _, w := range words {
		entries = append(entries, wordEntry{word: w, score: score})
	}
	return entries
}

func toFloat64(v interface{}) (float64, bool) {
	switch num := v.(type) {
	case float64:
		return num, true
	case float32:
		return float64(num), true
	case int8:
		return float64(num), true
	case int16:
		return float64(num), true
	case int32:
		return float64(num), true
	case int64:
		return float64(num), true
	case uint8:
		return float64(num), true
	case uint16:
		return float64(num), true
	case uint32:
		return float64(num), true
	case uint64:
		return float64(num), true
	default:
		return 0, false
	}
}

func toStringSlice(v interface{}) ([]string, bool) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func isAlpha(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return word != ""
}
