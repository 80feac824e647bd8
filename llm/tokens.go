package llm

import (
	"strings"
	"unicode/utf8"
)

// EstimateTokensByWords approximates a token count as words × tokensPerWord,
// truncated toward zero.
func EstimateTokensByWords(text string, tokensPerWord float64) int {
	words := len(strings.Fields(text))
	return int(float64(words) * tokensPerWord)
}

// EstimateTokensByChars approximates a token count as one token per
// charsPerToken characters, rounded up.
func EstimateTokensByChars(text string, charsPerToken int) int {
	if charsPerToken <= 0 {
		charsPerToken = 4
	}
	n := utf8.RuneCountInString(text)
	return (n + charsPerToken - 1) / charsPerToken
}

// ContextLimit maps a model-name substring to a context window.
type ContextLimit struct {
	Match  string
	Tokens int
}

// ContextTable is an ordered list of context limits. More specific
// substrings must come first.
type ContextTable struct {
	Limits   []ContextLimit
	Fallback int
}

// Lookup returns the first limit whose substring occurs in model, or the
// fallback.
func (t ContextTable) Lookup(model string) int {
	lower := strings.ToLower(model)
	for _, limit := range t.Limits {
		if strings.Contains(lower, strings.ToLower(limit.Match)) {
			return limit.Tokens
		}
	}
	return t.Fallback
}
