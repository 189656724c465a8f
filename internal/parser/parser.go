// # internal/parser/parser.go
package parser

import (
	"log/slog"
	"path/filepath"
	"strings"

	"depscan/internal/shared/observability"
)

// Statistics keys understood by the analysis-scoped stats sink.
const (
	StatParsingHits   = "parsing_hits"
	StatParsingMisses = "parsing_misses"
)

// StatsSink counts match outcomes. Purely observational; never affects
// control flow.
type StatsSink interface {
	Increment(key string)
}

// Context is the slice of the surrounding analysis a language parser needs:
// where the source root lives, which dependencies to drop, and where to
// count hits and misses.
type Context struct {
	SourceDir string
	Ignore    func(dependency string) bool
	Stats     StatsSink
}

// RelativePath computes the analysis-relative name for an absolute file
// path. The name keeps the source directory itself as its first component
// so unique names stay stable across machines.
func (c *Context) RelativePath(absolutePath string) string {
	base := filepath.Dir(filepath.Clean(c.SourceDir))
	rel, err := filepath.Rel(base, absolutePath)
	if err != nil {
		return absolutePath
	}
	return filepath.ToSlash(rel)
}

// Ignored consults the externally supplied ignore predicate.
func (c *Context) Ignored(dependency string) bool {
	return c.Ignore != nil && c.Ignore(dependency)
}

func (c *Context) countHit(lang Language) {
	if c.Stats != nil {
		c.Stats.Increment(StatParsingHits)
	}
	observability.ParsingHits.WithLabelValues(string(lang)).Inc()
}

func (c *Context) countMiss(lang Language, a anchor) {
	if c.Stats != nil {
		c.Stats.Increment(StatParsingMisses)
	}
	observability.ParsingMisses.WithLabelValues(string(lang)).Inc()
	slog.Warn("could not parse read-ahead window",
		"language", string(lang),
		"next_tokens", strings.Join(a.debugTokens(), " "))
}

// LanguageParser is the shared capability contract of the per-language
// parsers. File results for a whole analysis are generated before any
// entity results.
type LanguageParser interface {
	Name() string
	Language() Language
	Results() Results

	GenerateFileResult(ctx *Context, fileName, absolutePath, content string)
	// AfterFileResults runs once all file results of this parser exist and
	// before entity generation starts.
	AfterFileResults(ctx *Context)
	GenerateEntityResults(ctx *Context)
}

// Registry maps file extensions to fresh language parsers.
type Registry struct {
	byExt map[string]LanguageParser
}

func NewRegistry(parsers ...LanguageParser) *Registry {
	r := &Registry{byExt: make(map[string]LanguageParser)}
	for _, p := range parsers {
		for _, ext := range extensionsOf(p.Language()) {
			r.byExt[ext] = p
		}
	}
	return r
}

// ForPath returns the parser responsible for the file's extension.
func (r *Registry) ForPath(path string) (LanguageParser, bool) {
	p, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return p, ok
}

// Parsers returns the distinct registered parsers.
func (r *Registry) Parsers() []LanguageParser {
	seen := make(map[LanguageParser]bool)
	out := make([]LanguageParser, 0, len(r.byExt))
	for _, p := range r.byExt {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// Extensions returns every file extension the registry can handle.
func (r *Registry) Extensions() []string {
	out := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		out = append(out, ext)
	}
	return out
}

func extensionsOf(lang Language) []string {
	switch lang {
	case LangKotlin:
		return []string{".kt", ".kts"}
	case LangSwift:
		return []string{".swift"}
	default:
		return nil
	}
}
