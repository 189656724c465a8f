// # internal/parser/scopes_test.go
package parser

import (
	"strings"
	"testing"
)

func TestScopeSliceBalancedBraces(t *testing.T) {
	tokens := Tokenize("class A { fun x ( ) { y } } class B { }", DefaultVocabulary())

	scope := scopeSlice(tokens, 0)
	if scope[len(scope)-1] != "}" {
		t.Fatalf("Expected scope to end at a closing brace, got %v", scope)
	}
	if contains(scope, "B") {
		t.Errorf("Scope leaked into the next declaration: %v", scope)
	}
	if !contains(scope, "y") {
		t.Errorf("Nested body missing from scope: %v", scope)
	}
}

func TestScopeSliceCapsCapacity(t *testing.T) {
	tokens := Tokenize("class A { } class B { }", DefaultVocabulary())

	scope := scopeSlice(tokens, 0)
	// Appending through one scope must never reach into the shared backing
	// array where the next declaration lives.
	_ = append(scope, "intruder")

	if tokens[4] != "class" || tokens[5] != "B" {
		t.Errorf("Append through a scope overwrote following tokens: %v", tokens)
	}
}

func TestScopeSliceUnterminated(t *testing.T) {
	tokens := Tokenize("class A { fun x ( ) {", DefaultVocabulary())

	scope := scopeSlice(tokens, 0)
	if len(scope) != len(tokens) {
		t.Errorf("Unterminated scope should extend to the end, got %v", scope)
	}
}

func TestScanAnchorsYieldsEveryOccurrence(t *testing.T) {
	tokens := []string{"class", "A", "{", "class", "B", "}", "object", "C"}

	var seen []string
	for a := range scanAnchors(tokens, "class", "object") {
		seen = append(seen, a.keyword)
	}
	if len(seen) != 3 {
		t.Fatalf("Expected 3 anchors, got %v", seen)
	}
	if seen[2] != "object" {
		t.Errorf("Expected object anchor last, got %v", seen)
	}
}

func TestScanAnchorsExactTokenMatch(t *testing.T) {
	tokens := []string{"classes", "subclass", "class"}

	count := 0
	for range scanAnchors(tokens, "class") {
		count++
	}
	if count != 1 {
		t.Errorf("Anchors must match whole tokens only, got %d", count)
	}
}

func TestReadAheadWindowCapped(t *testing.T) {
	tokens := make([]string, 50)
	for i := range tokens {
		tokens[i] = "t"
	}
	tokens[0] = "class"

	for a := range scanAnchors(tokens, "class") {
		window := a.readAheadString()
		if got := len(strings.Fields(window)); got != maxReadAheadTokens+1 {
			t.Errorf("Expected %d window tokens, got %d", maxReadAheadTokens+1, got)
		}
		break
	}
}

func TestGrammarNamedCaptures(t *testing.T) {
	caps, ok := kotlinEntityGrammar.Match("class Bar : Base { }")
	if !ok {
		t.Fatal("Expected a match")
	}
	if caps[capEntityName] != "Bar" {
		t.Errorf("Expected entity Bar, got %q", caps[capEntityName])
	}
	if caps[capInheritedName] != "Base" {
		t.Errorf("Expected inherited Base, got %q", caps[capInheritedName])
	}
}

func TestGrammarMissWithoutBrace(t *testing.T) {
	if _, ok := kotlinEntityGrammar.Match("class Bar : Base"); ok {
		t.Error("A window without an opening brace must not match")
	}
}

func TestGrammarConstructorClauseHidesInheritance(t *testing.T) {
	// A primary constructor between name and colon pushes the supertype out
	// of the grammar's reach; the declaration still matches as an entity.
	caps, ok := kotlinEntityGrammar.Match("class Bar ( x : Int ) : Base { }")
	if !ok {
		t.Fatal("Expected an entity match")
	}
	if caps[capInheritedName] != "" {
		t.Errorf("Expected no inherited capture, got %q", caps[capInheritedName])
	}
}
