package chapters

import (
	"testing"

	"chaptersplit/internal/exclusions"
)

func mustMatcher(t *testing.T, keyword string, phrases exclusions.Phrases) *Matcher {
	t.Helper()
	m, err := NewMatcher(keyword, phrases)
	if err != nil {
		t.Fatalf("NewMatcher returned error: %v", err)
	}
	return m
}

func TestNumberVocabulary(t *testing.T) {
	if len(numberWords) != 50 {
		t.Fatalf("expected 50 number words, got %d", len(numberWords))
	}
	for word, want := range map[string]int{"one": 1, "nineteen": 19, "twenty": 20, "twenty-one": 21, "forty-nine": 49, "fifty": 50} {
		if numberWords[word] != want {
			t.Fatalf("numberWords[%q] = %d, want %d", word, numberWords[word], want)
		}
	}
	if _, ok := numberWords["fifty-one"]; ok {
		t.Fatal("vocabulary must stop at fifty")
	}
}

func TestIsHeading(t *testing.T) {
	m := mustMatcher(t, "", nil)
	cases := []struct {
		text string
		want bool
	}{
		{"Chapter One begins", true},
		{"chapter 12", true},
		{"CHAPTER   Twenty-Three. The Return", true},
		{"And so, Chapter fifty.", true},
		{"Chapter\tseven", true},
		{"Chapter 2: The Dark/Forest?", true},
		{"chapters 5 and 6", false},
		{"Chapter", false},
		{"Chapter one-hundred", true},
		{"Chapter sixty", false},
		{"Prechapter 3", false},
		{"Chapter ninety-nine", false},
		{"the next chapter starts", false},
	}
	for _, tc := range cases {
		if got := m.IsHeading(tc.text); got != tc.want {
			t.Fatalf("IsHeading(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestExclusionAlwaysWins(t *testing.T) {
	m := mustMatcher(t, "", exclusions.Phrases{"end of sample"})
	text := "Chapter 3 ... this is the END OF SAMPLE"
	if m.IsHeading(text) {
		t.Fatal("expected exclusion to suppress heading")
	}
	if phrase, ok := m.Excluded(text); !ok || phrase != "end of sample" {
		t.Fatalf("Excluded = %q %v", phrase, ok)
	}
	if !m.IsHeading("Chapter 3") {
		t.Fatal("expected heading without excluded phrase")
	}
}

func TestMatchReportsNumber(t *testing.T) {
	m := mustMatcher(t, "", nil)
	h, ok := m.Match("Now, chapter Forty-Two.")
	if !ok {
		t.Fatal("expected match")
	}
	if h.Number != 42 || h.Token != "Forty-Two" || h.Keyword != "chapter" {
		t.Fatalf("unexpected heading: %#v", h)
	}
	h, ok = m.Match("Chapter 107")
	if !ok || h.Number != 107 {
		t.Fatalf("unexpected digit heading: %#v %v", h, ok)
	}
}

func TestCustomKeyword(t *testing.T) {
	m := mustMatcher(t, "Part", nil)
	if !m.IsHeading("Part two") {
		t.Fatal("expected custom keyword to match")
	}
	if m.IsHeading("Chapter two") {
		t.Fatal("default keyword should not match when overridden")
	}
}
