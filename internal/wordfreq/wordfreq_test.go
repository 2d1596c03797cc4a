package wordfreq

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/verte-zerg/poet/internal/wordlist"
)

var cbHeader = map[string]interface{}{"format": "cB", "version": 1}

func TestExtractWordlistOrderAndFilter(t *testing.T) {
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/large_en.msgpack.gz": encodeTestData(t, []interface{}{
			cbHeader,
			[]string{"the", "of"},
			[]string{"Hello", "co-op", "naïve"},
			[]string{},
			[]string{"and", "the"},
		}),
	})

	words, err := ExtractWordlist(wheelPath, "en", 0)
	if err != nil {
		t.Fatalf("ExtractWordlist failed: %v", err)
	}
	expected := []string{"the", "of", "hello", "and"}
	if len(words) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, words)
	}
	for i, word := range expected {
		if words[i] != word {
			t.Fatalf("expected %q at index %d, got %q", word, i, words[i])
		}
	}
}

func TestExtractWordlistLimit(t *testing.T) {
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/large_en.msgpack.gz": encodeTestData(t, []interface{}{
			cbHeader,
			[]string{"hello", "world", "again"},
			[]string{"more", "words"},
		}),
	})

	words, err := ExtractWordlist(wheelPath, "en", 2)
	if err != nil {
		t.Fatalf("ExtractWordlist failed: %v", err)
	}
	if len(words) != 2 || words[0] != "hello" || words[1] != "world" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestExtractWordlistScoredBins(t *testing.T) {
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/small_de.msgpack.gz": encodeTestData(t, []interface{}{
			[]interface{}{4.0, []string{"welt"}},
			[]interface{}{5.0, []string{"Grüße"}},
		}),
	})

	words, err := ExtractWordlist(wheelPath, "de", 0)
	if err != nil {
		t.Fatalf("ExtractWordlist failed: %v", err)
	}
	if len(words) != 2 || words[0] != "grüße" || words[1] != "welt" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestExtractWordlistPrefersLargeList(t *testing.T) {
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/small_en.msgpack.gz": encodeTestData(t, []interface{}{[]string{"small"}}),
		"wordfreq/data/large_en.msgpack.gz": encodeTestData(t, []interface{}{[]string{"large"}}),
	})

	words, err := ExtractWordlist(wheelPath, "en", 0)
	if err != nil {
		t.Fatalf("ExtractWordlist failed: %v", err)
	}
	if len(words) != 1 || words[0] != "large" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestExtractWordlistMissingLanguage(t *testing.T) {
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/large_en.msgpack.gz": encodeTestData(t, []interface{}{[]string{"hello"}}),
	})
	if _, err := ExtractWordlist(wheelPath, "fr", 0); err == nil {
		t.Fatalf("expected error for missing language")
	}
}

func TestListLanguages(t *testing.T) {
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/large_en.msgpack.gz":         []byte("x"),
		"wordfreq/data/large_pt-br.msgpack.gz":      []byte("x"),
		"wordfreq/data/small_zh-cn.msgpack.gz":      []byte("x"),
		"wordfreq/data/_chinese_mapping.msgpack.gz": []byte("x"),
		"wordfreq/data/jieba_zh.txt":                []byte("x"),
	})

	langs, err := ListLanguages(wheelPath)
	if err != nil {
		t.Fatalf("ListLanguages failed: %v", err)
	}
	expected := []string{"en", "pt-br", "zh-cn"}
	if len(langs) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, langs)
	}
	for i, lang := range expected {
		if langs[i] != lang {
			t.Fatalf("expected %q at index %d, got %q", lang, i, langs[i])
		}
	}
}

func TestSourceBuildsDictionary(t *testing.T) {
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/large_en.msgpack.gz": encodeTestData(t, []interface{}{
			cbHeader,
			[]string{"hello", "world"},
			[]string{"cadet"},
		}),
	})

	dict := wordlist.NewDictionary(Source{Wheel: wheelPath, Lang: "en"}, wordlist.FilterForLang("en"))
	for _, word := range []string{"hello", "world", "cadet"} {
		ok, err := dict.Contains(word)
		if err != nil {
			t.Fatalf("Contains failed: %v", err)
		}
		if !ok {
			t.Fatalf("expected %q in dictionary", word)
		}
	}
	if ok, _ := dict.Contains("xyzzy"); ok {
		t.Fatalf("expected xyzzy not in dictionary")
	}
}

func TestWriteAttribution(t *testing.T) {
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq-3.1.1.dist-info/LICENSE.txt": []byte("MIT License"),
	})
	outDir := t.TempDir()
	if err := WriteAttribution(wheelPath, outDir); err != nil {
		t.Fatalf("WriteAttribution failed: %v", err)
	}
	license, err := os.ReadFile(filepath.Join(outDir, "LICENSE.txt"))
	if err != nil {
		t.Fatalf("read license: %v", err)
	}
	if string(license) != "MIT License" {
		t.Fatalf("unexpected license: %q", license)
	}
	attribution, err := os.ReadFile(filepath.Join(outDir, "ATTRIBUTION.txt"))
	if err != nil {
		t.Fatalf("read attribution: %v", err)
	}
	if !strings.Contains(string(attribution), "CC BY-SA 4.0") {
		t.Fatalf("unexpected attribution: %q", attribution)
	}
}

func TestDownloadLatestWheelCaches(t *testing.T) {
	wheelBytes := []byte("wheel-bytes")
	var downloads atomic.Int32
	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/pypi/wordfreq/json", func(w http.ResponseWriter, _ *http.Request) {
		payload := map[string]interface{}{
			"info": map[string]string{"version": "3.1.1"},
			"urls": []map[string]string{
				{"url": server.URL + "/files/wordfreq-3.1.1.tar.gz", "filename": "wordfreq-3.1.1.tar.gz", "packagetype": "sdist"},
				{"url": server.URL + "/files/wordfreq-3.1.1-py3-none-any.whl", "filename": "wordfreq-3.1.1-py3-none-any.whl", "packagetype": "bdist_wheel"},
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	})
	mux.HandleFunc("/files/wordfreq-3.1.1-py3-none-any.whl", func(w http.ResponseWriter, _ *http.Request) {
		downloads.Add(1)
		_, _ = w.Write(wheelBytes)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	prev := pypiEndpoint
	pypiEndpoint = server.URL + "/pypi/wordfreq/json"
	defer func() { pypiEndpoint = prev }()

	cacheDir := t.TempDir()
	wheel, err := DownloadLatestWheel(context.Background(), cacheDir)
	if err != nil {
		t.Fatalf("DownloadLatestWheel failed: %v", err)
	}
	if wheel.Cached || wheel.Version != "3.1.1" || wheel.Filename != "wordfreq-3.1.1-py3-none-any.whl" {
		t.Fatalf("unexpected wheel: %+v", wheel)
	}
	data, err := os.ReadFile(wheel.Path)
	if err != nil {
		t.Fatalf("read wheel: %v", err)
	}
	if !bytes.Equal(data, wheelBytes) {
		t.Fatalf("unexpected wheel content: %q", data)
	}

	again, err := DownloadLatestWheel(context.Background(), cacheDir)
	if err != nil {
		t.Fatalf("DownloadLatestWheel failed: %v", err)
	}
	if !again.Cached || downloads.Load() != 1 {
		t.Fatalf("expected cached wheel, got %+v after %d downloads", again, downloads.Load())
	}
}

func encodeTestData(t *testing.T, data []interface{}) []byte {
	t.Helper()
	raw, err := msgpack.Marshal(data)
	if err != nil {
		t.Fatalf("failed to encode msgpack: %v", err)
	}
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(raw); err != nil {
		t.Fatalf("failed to gzip data: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to close gzip: %v", err)
	}
	return buf.Bytes()
}

func writeTestWheel(t *testing.T, files map[string][]byte) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "wordfreq-*.whl")
	if err != nil {
		t.Fatalf("failed to create temp wheel: %v", err)
	}
	defer func() {
		_ = tmpFile.Close()
	}()

	zw := zip.NewWriter(tmpFile)
	for name, data := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry: %v", err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("failed to write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return tmpFile.Name()
}
