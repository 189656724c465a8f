// # internal/parser/tokenizer.go
package parser

import (
	"regexp"
	"strings"
)

// Vocabulary maps literal substrings (structural delimiters) to their
// space-padded replacements. Padding before splitting guarantees every
// configured delimiter ends up as its own token even when glued to an
// identifier in the source.
type Vocabulary map[string]string

// DefaultVocabulary pads the punctuation that the entity grammars need as
// standalone tokens. Dots and asterisks are deliberately absent so package
// paths like a.b.* stay attached.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		":":  " : ",
		";":  " ; ",
		"{":  " { ",
		"}":  " } ",
		"(":  " ( ",
		")":  " ) ",
		"[":  " [ ",
		"]":  " ] ",
		"?":  " ? ",
		"!":  " ! ",
		",":  " , ",
		"<":  " < ",
		">":  " > ",
		"\"": " \" ",
	}
}

// tokenPattern keeps newlines as their own tokens so the comment filter can
// see line boundaries.
var tokenPattern = regexp.MustCompile(`\S+|\n`)

// Tokenize applies the vocabulary substitutions and splits on whitespace.
// It always succeeds; empty input yields an empty slice.
func Tokenize(text string, vocab Vocabulary) []string {
	for literal, padded := range vocab {
		text = strings.ReplaceAll(text, literal, padded)
	}
	return tokenPattern.FindAllString(text, -1)
}

// TokenizeWords is the narrow variant without any delimiter padding, used
// wherever a grammar needs undivided path tokens.
func TokenizeWords(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}
