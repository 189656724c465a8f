// # internal/parser/scopes.go
package parser

// entityScopes locates every entity declaration in the file and cuts out its
// brace-delimited token slice. The file tokens are comment-filtered and
// re-tokenized with the given vocabulary first, so every returned slice is a
// contiguous sub-sequence of the same filtered token stream.
//
// The grammar decides whether a keyword occurrence really is a declaration;
// rejected occurrences are skipped silently here (hit/miss bookkeeping
// belongs to the package/import/inheritance extraction passes).
func (f *FileResult) entityScopes(keywords []string, grammar Grammar, style CommentStyle, vocab Vocabulary) []*EntityResult {
	filtered := Tokenize(StripComments(f.Tokens, style), vocab)

	var entities []*EntityResult
	for a := range scanAnchors(filtered, keywords...) {
		caps, ok := grammar.Match(a.readAheadString())
		if !ok {
			continue
		}
		name := caps[capEntityName]
		if name == "" {
			continue
		}

		entities = append(entities, &EntityResult{
			EntityName: name,
			ModuleName: f.ModuleName,
			Parent:     f,
			Tokens:     scopeSlice(filtered, a.index),
		})
	}
	return entities
}

// scopeSlice returns the tokens from the declaration keyword through the
// brace that closes its body. A missing or unbalanced closing brace extends
// the scope to the end of the stream (best effort, never an error). The
// capacity is capped at the scope's end: sibling scopes alias the same
// backing array, and appending to one must not overwrite the next.
func scopeSlice(tokens []string, start int) []string {
	depth := 0
	opened := false
	for i := start; i < len(tokens); i++ {
		switch tokens[i] {
		case "{":
			depth++
			opened = true
		case "}":
			depth--
			if opened && depth <= 0 {
				return tokens[start : i+1 : i+1]
			}
		}
	}
	return tokens[start:]
}
