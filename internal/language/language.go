package language

import "strings"

type entry struct {
	iso1    string
	iso2    []string // bibliographic and terminology codes
	display string
}

var table = []entry{
	{"en", []string{"eng"}, "English"},
	{"es", []string{"spa"}, "Spanish"},
	{"fr", []string{"fra", "fre"}, "French"},
	{"de", []string{"deu", "ger"}, "German"},
	{"it", []string{"ita"}, "Italian"},
	{"pt", []string{"por"}, "Portuguese"},
	{"nl", []string{"nld", "dut"}, "Dutch"},
	{"pl", []string{"pol"}, "Polish"},
	{"ru", []string{"rus"}, "Russian"},
	{"sv", []string{"swe"}, "Swedish"},
	{"da", []string{"dan"}, "Danish"},
	{"no", []string{"nor"}, "Norwegian"},
	{"fi", []string{"fin"}, "Finnish"},
	{"ja", []string{"jpn"}, "Japanese"},
	{"zh", []string{"zho", "chi"}, "Chinese"},
	{"ko", []string{"kor"}, "Korean"},
}

var index = func() map[string]*entry {
	m := make(map[string]*entry, len(table)*4)
	for i := range table {
		e := &table[i]
		m[e.iso1] = e
		for _, code := range e.iso2 {
			m[code] = e
		}
		m[strings.ToLower(e.display)] = e
	}
	return m
}()

func lookup(code string) *entry {
	return index[clean(code)]
}

func clean(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	// Region subtags ("en-US", "pt_BR") do not change the phrase table key.
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	return code
}

// ToISO2 converts any recognized language code or name to ISO 639-1
// (2-letter). Unknown 2-letter codes pass through; anything else yields "".
func ToISO2(code string) string {
	code = clean(code)
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.iso1
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Auto" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Auto"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// Candidates lists the keys a per-language table should be probed with, most
// specific first: the code as given, then its ISO 639-1 and ISO 639-2 forms.
func Candidates(code string) []string {
	raw := strings.TrimSpace(code)
	if raw == "" {
		return nil
	}
	out := []string{raw}
	seen := map[string]struct{}{raw: {}}
	add := func(value string) {
		if value == "" {
			return
		}
		if _, ok := seen[value]; ok {
			return
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	add(strings.ToLower(raw))
	add(clean(raw))
	if e := lookup(raw); e != nil {
		add(e.iso1)
		for _, c := range e.iso2 {
			add(c)
		}
	}
	return out
}

// ExtractFromTags returns the lower-cased language tag from container or
// stream metadata, checking the common tag spellings.
func ExtractFromTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	for _, key := range []string{"language", "LANGUAGE", "Language", "lang", "LANG"} {
		if value, ok := tags[key]; ok {
			value = strings.TrimSpace(strings.ReplaceAll(value, "\u0000", ""))
			if value != "" {
				return strings.ToLower(value)
			}
		}
	}
	return ""
}
