// # internal/parser/comments.go
package parser

import "strings"

// CommentStyle names the comment markers of one language.
type CommentStyle struct {
	Line       string
	BlockStart string
	BlockEnd   string
}

// StripComments drops every token from a line-comment marker through the
// next newline-bearing token, and every token from a block-start marker
// through the matching block-end marker. An unterminated block comment
// swallows the rest of the input. The survivors are rejoined into a single
// string because downstream matchers re-tokenize with their own vocabulary.
func StripComments(tokens []string, style CommentStyle) string {
	kept := make([]string, 0, len(tokens))
	inLine, inBlock := false, false

	for _, tok := range tokens {
		switch {
		case inBlock:
			if strings.Contains(tok, style.BlockEnd) {
				inBlock = false
			}
		case inLine:
			if strings.Contains(tok, "\n") {
				inLine = false
			}
		case strings.HasPrefix(tok, style.BlockStart):
			if !strings.Contains(tok[len(style.BlockStart):], style.BlockEnd) {
				inBlock = true
			}
		case strings.HasPrefix(tok, style.Line):
			if !strings.Contains(tok, "\n") {
				inLine = true
			}
		default:
			kept = append(kept, tok)
		}
	}

	return strings.Join(kept, " ")
}
