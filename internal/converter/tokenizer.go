package converter

import (
	"strings"
)

// Tokenizer splits record lines into tokens.
// Tokenizer 将记录行拆分为词元。
type Tokenizer struct{}

// NewTokenizer creates a new Tokenizer instance.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize splits s on runs of Unicode whitespace. Leading, trailing and
// repeated separators never produce empty tokens.
// Tokenize 按连续的 Unicode 空白拆分 s，不会产生空词元。
func (t *Tokenizer) Tokenize(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}
