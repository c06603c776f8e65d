package chapters

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"chaptersplit/internal/exclusions"
)

// DefaultKeyword introduces a chapter heading when no keyword is configured.
const DefaultKeyword = "Chapter"

// Heading describes a matched chapter announcement.
type Heading struct {
	// Keyword is the heading keyword as spoken in the text.
	Keyword string
	// Token is the cardinal as it appeared ("12", "Twenty-One").
	Token string
	// Number is the numeric value of Token.
	Number int
}

// Matcher recognizes chapter headings in transcript text. It is immutable and
// safe for concurrent use.
type Matcher struct {
	pattern *regexp.Regexp
	phrases exclusions.Phrases
}

// NewMatcher builds a matcher for keyword (DefaultKeyword when blank) that
// rejects any text containing one of phrases.
func NewMatcher(keyword string, phrases exclusions.Phrases) (*Matcher, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		keyword = DefaultKeyword
	}
	expr := fmt.Sprintf(`(?i)\b(%s)\s+(\d+|%s)\b`, regexp.QuoteMeta(keyword), numberAlternation())
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile heading pattern: %w", err)
	}
	return &Matcher{pattern: pattern, phrases: phrases}, nil
}

// IsHeading reports whether text announces a new chapter. An exclusion
// phrase always wins over a pattern match.
func (m *Matcher) IsHeading(text string) bool {
	_, ok := m.Match(text)
	return ok
}

// Match returns the heading found in text, if any.
func (m *Matcher) Match(text string) (Heading, bool) {
	if m.phrases.Contains(text) {
		return Heading{}, false
	}
	match := m.pattern.FindStringSubmatch(text)
	if match == nil {
		return Heading{}, false
	}
	return Heading{Keyword: match[1], Token: match[2], Number: cardinalValue(match[2])}, true
}

// Excluded returns the exclusion phrase that suppresses text, if any.
func (m *Matcher) Excluded(text string) (string, bool) {
	return m.phrases.Match(text)
}

func cardinalValue(token string) int {
	if n, err := strconv.Atoi(token); err == nil {
		return n
	}
	return numberWords[strings.ToLower(token)]
}
