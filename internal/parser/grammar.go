// # internal/parser/grammar.go
package parser

import (
	"regexp"
)

// Grammar is one structural pattern matched against a read-ahead string.
// Patterns are anchored at the start of the window and expose named
// captures; a failed match is reported as a plain miss, never an error.
type Grammar struct {
	re *regexp.Regexp
}

func mustGrammar(pattern string) Grammar {
	return Grammar{re: regexp.MustCompile(pattern)}
}

// Match attempts the pattern and returns the named captures on success.
func (g Grammar) Match(readAhead string) (map[string]string, bool) {
	m := g.re.FindStringSubmatch(readAhead)
	if m == nil {
		return nil, false
	}
	caps := make(map[string]string)
	for i, name := range g.re.SubexpNames() {
		if name == "" || i >= len(m) {
			continue
		}
		caps[name] = m[i]
	}
	return caps, true
}

// Capture names shared by all language grammars.
const (
	capEntityName    = "entity_name"
	capInheritedName = "inherited_entity_name"
	capImportPath    = "import_path"
	capPackageName   = "package_name"
)
