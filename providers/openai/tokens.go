package openai

import (
	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"

	"github.com/deepnoodle-ai/llmkit/llm"
)

func init() {
	// Use the embedded BPE ranks instead of downloading them on first use.
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// tokenizer counts tokens with the model's tiktoken encoding. Models
// without a known encoding fall back to one token per four characters.
type tokenizer struct {
	encoding *tiktoken.Tiktoken
}

func newTokenizer(model string) tokenizer {
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return tokenizer{}
	}
	return tokenizer{encoding: encoding}
}

// Exact reports whether counts come from a tiktoken encoding.
func (t tokenizer) Exact() bool {
	return t.encoding != nil
}

func (t tokenizer) Count(text string) int {
	if t.encoding == nil {
		return llm.EstimateTokensByChars(text, charsPerToken)
	}
	// Special token markers in user text are counted as ordinary text.
	return len(t.encoding.EncodeOrdinary(text))
}
