package wordlist

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestLoadWordsSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.txt")
	if err := os.WriteFile(path, []byte("hello\n\n  world  \n"), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("LoadWords failed: %v", err)
	}
	if len(words) != 2 || words[0] != "hello" || words[1] != "world" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestReadWordsEmpty(t *testing.T) {
	if _, err := ReadWords(strings.NewReader("\n \n")); err == nil {
		t.Fatalf("expected error for empty word list")
	}
}

type countingSource struct {
	mu    sync.Mutex
	calls int
	words []string
}

func (s *countingSource) Words() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.words, nil
}

func TestDictionaryLoadsOnce(t *testing.T) {
	src := &countingSource{words: []string{"Hello", "world", "co-op"}}
	dict := NewDictionary(src, FilterForLang("en"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := dict.Contains("hello"); err != nil {
				t.Errorf("Contains failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if src.calls != 1 {
		t.Fatalf("expected one load, got %d", src.calls)
	}
	ok, err := dict.Contains("hello")
	if err != nil || !ok {
		t.Fatalf("expected hello in dictionary, ok=%v err=%v", ok, err)
	}
	if ok, _ := dict.Contains("co-op"); ok {
		t.Fatalf("expected co-op to be screened out")
	}
	if n, _ := dict.Len(); n != 2 {
		t.Fatalf("expected 2 words, got %d", n)
	}
}

func TestDictionaryKeepsLoadError(t *testing.T) {
	dict := NewDictionary(FileSource{Path: filepath.Join(t.TempDir(), "missing.txt")}, nil)
	if _, err := dict.Contains("word"); err == nil {
		t.Fatalf("expected load error")
	}
	if err := dict.Load(); err == nil {
		t.Fatalf("expected load error to be kept")
	}
}

func TestStaticSourceEmpty(t *testing.T) {
	dict := NewDictionary(StaticSource(nil), nil)
	if err := dict.Load(); err == nil {
		t.Fatalf("expected error for empty static source")
	}
}
