package rank

import (
	"regexp"
	"strings"
)

// wordPattern matches lowercase alphanumeric runs. Everything between
// runs (punctuation, whitespace, emoji) is a boundary and is discarded.
var wordPattern = regexp.MustCompile(`[0-9a-z]+`)

// Tokenize normalizes free text into lowercase word tokens.
// Deterministic, no error path; empty input yields an empty sequence.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}
