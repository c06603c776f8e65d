package chapters

import (
	"sort"
	"strings"
)

var unitWords = []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}

var teenWords = []string{
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen",
}

var tensWords = map[int]string{20: "twenty", 30: "thirty", 40: "forty", 50: "fifty"}

// numberWords maps the closed vocabulary of spelled-out chapter numbers
// (one through fifty, compounds hyphenated) to their values.
var numberWords = func() map[string]int {
	words := make(map[string]int, 50)
	for i, w := range unitWords {
		words[w] = i + 1
	}
	for i, w := range teenWords {
		words[w] = i + 10
	}
	for tens := 20; tens <= 40; tens += 10 {
		words[tensWords[tens]] = tens
		for i, w := range unitWords {
			words[tensWords[tens]+"-"+w] = tens + i + 1
		}
	}
	words[tensWords[50]] = 50
	return words
}()

// numberAlternation renders the vocabulary as a regexp alternation, longest
// words first so compounds win over their prefixes.
func numberAlternation() string {
	words := make([]string, 0, len(numberWords))
	for w := range numberWords {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	return strings.Join(words, "|")
}
