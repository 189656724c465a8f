// # internal/parser/readahead.go
package parser

import (
	"iter"
	"strings"
)

const (
	// maxReadAheadTokens caps how many tokens after an anchor are handed to
	// one grammar attempt. Matches beyond this horizon are never attempted.
	maxReadAheadTokens = 30

	// maxDebugTokens bounds the token context logged on a parse miss.
	maxDebugTokens = 10
)

// anchor is one keyword occurrence plus everything after it.
type anchor struct {
	index     int
	keyword   string
	following []string
}

// scanAnchors lazily yields an anchor for every position whose token equals
// one of the given keywords. The following slice aliases the input; callers
// must not mutate it.
func scanAnchors(tokens []string, keywords ...string) iter.Seq[anchor] {
	return func(yield func(anchor) bool) {
		for i, tok := range tokens {
			for _, kw := range keywords {
				if tok != kw {
					continue
				}
				if !yield(anchor{index: i, keyword: tok, following: tokens[i+1:]}) {
					return
				}
				break
			}
		}
	}
}

// readAheadString concatenates the anchor with its bounded window into the
// single string a grammar attempt runs against.
func (a anchor) readAheadString() string {
	following := a.following
	if len(following) > maxReadAheadTokens {
		following = following[:maxReadAheadTokens]
	}
	parts := make([]string, 0, len(following)+1)
	parts = append(parts, a.keyword)
	parts = append(parts, following...)
	return strings.Join(parts, " ")
}

// debugTokens returns the anchor plus a short tail for miss diagnostics.
func (a anchor) debugTokens() []string {
	following := a.following
	if len(following) > maxDebugTokens {
		following = following[:maxDebugTokens]
	}
	return append([]string{a.keyword}, following...)
}
