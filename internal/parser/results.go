// # internal/parser/results.go
package parser

import (
	"time"
)

type Language string

const (
	LangKotlin Language = "KOTLIN"
	LangSwift  Language = "SWIFT"
)

// Result is either a *FileResult or an *EntityResult; both live in the same
// Results map keyed by unique name.
type Result interface {
	Key() string
	ResultLanguage() Language
}

// FileResult holds everything extracted from a single source file.
// Imports are appended in source order; duplicates across multiple import
// statements are kept as-is.
type FileResult struct {
	UniqueName   string
	DisplayName  string
	AbsolutePath string
	RelativePath string // relative to the parent of the analysis source dir
	ModuleName   string
	ScannedBy    string
	Language     Language
	Tokens       []string
	Imports      []string
	ScannedAt    time.Time
}

func (f *FileResult) Key() string              { return f.UniqueName }
func (f *FileResult) ResultLanguage() Language { return f.Language }

// EntityResult is one named type declaration located inside a FileResult.
// Its token slice is a contiguous sub-sequence of the parent's filtered
// tokens, and its imports are a deduplicated subset of the parent's.
type EntityResult struct {
	EntityName string
	UniqueName string
	ModuleName string
	Parent     *FileResult
	Tokens     []string
	Imports    []string
	Inherits   []string
}

func (e *EntityResult) Key() string              { return e.UniqueName }
func (e *EntityResult) ResultLanguage() Language { return e.Parent.Language }

// Results maps unique name to result. Insertion performs no collision
// detection: a later result under the same key replaces the earlier one.
type Results map[string]Result

func (r Results) Add(res Result) {
	r[res.Key()] = res
}

func (r Results) FileResults() map[string]*FileResult {
	out := make(map[string]*FileResult)
	for k, v := range r {
		if f, ok := v.(*FileResult); ok {
			out[k] = f
		}
	}
	return out
}

func (r Results) EntityResults() map[string]*EntityResult {
	out := make(map[string]*EntityResult)
	for k, v := range r {
		if e, ok := v.(*EntityResult); ok {
			out[k] = e
		}
	}
	return out
}

// ByEntityName returns the first entity result with the given declared name.
func (r Results) ByEntityName(name string) (*EntityResult, bool) {
	for _, v := range r {
		if e, ok := v.(*EntityResult); ok && e.EntityName == name {
			return e, true
		}
	}
	return nil, false
}

// uniqueEntityName qualifies the entity with its module when one is known.
// Callers are responsible for avoiding collisions; the map is not.
func uniqueEntityName(module, entity string) string {
	if module != "" {
		return module + "." + entity
	}
	return entity
}
