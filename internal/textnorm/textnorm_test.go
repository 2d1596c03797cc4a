package textnorm

import "testing"

func TestStripString(t *testing.T) {
	cases := map[string]string{
		"BAD.":      "bad",
		"don't":     "dont",
		"h3ll0":     "hll",
		"résumé":    "rsum",
		"":          "",
		"...!!!123": "",
	}
	for in, want := range cases {
		if got := StripString(in); got != want {
			t.Fatalf("StripString(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDeCamel(t *testing.T) {
	cases := map[string]string{
		"SpaceCadetGlee":   "space cadet glee",
		"camelCase":        "camel case",
		"HTTPServer":       "http server",
		"version2Release":  "version2 release",
		"already lower":    "already lower",
		"#ThrowbackMonday": "# throwback monday",
		"ABC":              "abc",
	}
	for in, want := range cases {
		if got := DeCamel(in); got != want {
			t.Fatalf("DeCamel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStripPunctuation(t *testing.T) {
	got := StripPunctuation("#wow, really?! yes.")
	if got != "wow really yes" {
		t.Fatalf("unexpected result: %q", got)
	}
}
