// # internal/parser/comments_test.go
package parser

import (
	"strings"
	"testing"
)

var cStyle = CommentStyle{Line: "//", BlockStart: "/*", BlockEnd: "*/"}

func TestStripCommentsLine(t *testing.T) {
	tokens := Tokenize("val x = 1 // the answer\nval y = 2", DefaultVocabulary())
	filtered := StripComments(tokens, cStyle)

	if strings.Contains(filtered, "answer") {
		t.Errorf("Line comment survived: %q", filtered)
	}
	if !strings.Contains(filtered, "val y = 2") {
		t.Errorf("Code after the comment line was lost: %q", filtered)
	}
}

func TestStripCommentsBlock(t *testing.T) {
	tokens := Tokenize("before /* one\ntwo\nthree */ after", DefaultVocabulary())
	filtered := StripComments(tokens, cStyle)

	if filtered != "before after" {
		t.Errorf("Expected %q, got %q", "before after", filtered)
	}
}

func TestStripCommentsSingleTokenBlock(t *testing.T) {
	tokens := Tokenize("a /*x*/ b", DefaultVocabulary())
	filtered := StripComments(tokens, cStyle)

	if filtered != "a b" {
		t.Errorf("Expected %q, got %q", "a b", filtered)
	}
}

func TestStripCommentsUnterminatedBlock(t *testing.T) {
	tokens := Tokenize("a /* never closed\nb c d", DefaultVocabulary())
	filtered := StripComments(tokens, cStyle)

	if filtered != "a" {
		t.Errorf("Unterminated block should swallow the rest, got %q", filtered)
	}
}

func TestStripCommentsIdempotent(t *testing.T) {
	source := "class Foo { // local\n/* block */ val x = 1 }"
	once := StripComments(Tokenize(source, DefaultVocabulary()), cStyle)
	twice := StripComments(Tokenize(once, DefaultVocabulary()), cStyle)

	if once != twice {
		t.Errorf("Second pass changed the output:\n first: %q\nsecond: %q", once, twice)
	}
}

func TestStripCommentsNoComments(t *testing.T) {
	tokens := Tokenize("class Foo { }", DefaultVocabulary())
	filtered := StripComments(tokens, cStyle)

	if filtered != "class Foo { }" {
		t.Errorf("Comment-free input changed: %q", filtered)
	}
}
