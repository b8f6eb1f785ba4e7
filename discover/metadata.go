package discover

import (
	"strings"
	"unicode"

	"github.com/toolrack/toolrack/unit"
)

// DisplayNameFromSource derives the default display name from a candidate
// file name: suffix stripped, underscores replaced by spaces, each word
// capitalized ("code_fx_rates.yaml" -> "Code Fx Rates"). A declared name
// override takes precedence over this derivation.
func DisplayNameFromSource(candidate, suffix string) string {
	base := strings.TrimSuffix(candidate, suffix)
	words := strings.Split(strings.ReplaceAll(base, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// NumericIDFromSource extracts the first run of digits immediately after the
// discovery prefix ("code10.yaml" -> 10, "code_app_5.yaml" -> 5). Candidates
// with no digits get unit.DefaultNumericID so unnumbered units sort last.
func NumericIDFromSource(candidate, prefix string) int {
	rest := strings.TrimPrefix(candidate, prefix)
	start := -1
	for i, r := range rest {
		if unicode.IsDigit(r) {
			start = i
			break
		}
	}
	if start < 0 {
		return unit.DefaultNumericID
	}

	id := 0
	for _, r := range rest[start:] {
		if !unicode.IsDigit(r) {
			break
		}
		id = id*10 + int(r-'0')
	}
	return id
}
