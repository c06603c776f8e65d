package language

import (
	"reflect"
	"testing"
)

func TestToISO2(t *testing.T) {
	tests := map[string]string{
		"en":      "en",
		"eng":     "en",
		"English": "en",
		"fre":     "fr",
		"en-US":   "en",
		"pt_BR":   "pt",
		"xx":      "xx",
		"xyz":     "",
		"":        "",
		"  DEU  ": "de",
	}
	for input, want := range tests {
		if got := ToISO2(input); got != want {
			t.Fatalf("ToISO2(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("ger"); got != "German" {
		t.Fatalf("DisplayName(ger) = %q", got)
	}
	if got := DisplayName(""); got != "Auto" {
		t.Fatalf("DisplayName(empty) = %q", got)
	}
	if got := DisplayName("tlh"); got != "TLH" {
		t.Fatalf("DisplayName(tlh) = %q", got)
	}
}

func TestCandidates(t *testing.T) {
	got := Candidates("en-US")
	want := []string{"en-US", "en-us", "en", "eng"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Candidates(en-US) = %v, want %v", got, want)
	}
	if Candidates("  ") != nil {
		t.Fatal("expected no candidates for blank code")
	}
	if got := Candidates("tlh"); !reflect.DeepEqual(got, []string{"tlh"}) {
		t.Fatalf("Candidates(tlh) = %v", got)
	}
}

func TestExtractFromTags(t *testing.T) {
	if got := ExtractFromTags(map[string]string{"LANGUAGE": "ENG\u0000"}); got != "eng" {
		t.Fatalf("ExtractFromTags = %q", got)
	}
	if got := ExtractFromTags(nil); got != "" {
		t.Fatalf("ExtractFromTags(nil) = %q", got)
	}
}
