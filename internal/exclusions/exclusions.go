package exclusions

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"chaptersplit/internal/language"
	"chaptersplit/internal/services"
	"chaptersplit/internal/textutil"
)

// Phrases is an ordered set of lower-cased exclusion phrases for one language.
type Phrases []string

// Table maps a language code to its exclusion phrases.
type Table map[string]Phrases

// Load reads an exclusion table from path. Files ending in .toml are decoded
// as TOML; everything else as a JSON object of language code to phrase list.
// A missing or malformed resource is a configuration error.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrConfiguration, "exclusions", "load", "phrase file not found: "+path, err)
		}
		return nil, services.Wrap(services.ErrConfiguration, "exclusions", "load", path, err)
	}
	raw := map[string][]string{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &raw)
	} else {
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "exclusions", "parse", path, err)
	}
	table := make(Table, len(raw))
	for code, phrases := range raw {
		table[code] = normalize(phrases)
	}
	return table, nil
}

// LoadPhrases loads path and returns the phrases for languageCode. An empty
// path disables exclusions and yields an empty set.
func LoadPhrases(path, languageCode string) (Phrases, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	table, err := Load(path)
	if err != nil {
		return nil, err
	}
	return table.Phrases(languageCode), nil
}

// Phrases returns the phrases registered for languageCode, trying the code as
// given before its normalized ISO forms. An unknown code has no exclusions.
func (t Table) Phrases(languageCode string) Phrases {
	for _, key := range language.Candidates(languageCode) {
		if phrases, ok := t[key]; ok {
			return phrases
		}
	}
	return nil
}

// Contains reports whether text contains any phrase, ignoring case. It stops
// at the first match.
func (p Phrases) Contains(text string) bool {
	if len(p) == 0 {
		return false
	}
	for _, phrase := range p {
		if textutil.ContainsFold(text, phrase) {
			return true
		}
	}
	return false
}

// Match returns the first phrase contained in text.
func (p Phrases) Match(text string) (string, bool) {
	for _, phrase := range p {
		if textutil.ContainsFold(text, phrase) {
			return phrase, true
		}
	}
	return "", false
}

func normalize(phrases []string) Phrases {
	out := make(Phrases, 0, len(phrases))
	for _, phrase := range phrases {
		phrase = strings.ToLower(strings.TrimSpace(phrase))
		if phrase == "" {
			continue
		}
		out = append(out, phrase)
	}
	return out
}
