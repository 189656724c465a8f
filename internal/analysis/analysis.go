// # internal/analysis/analysis.go
package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/google/uuid"

	"depscan/internal/parser"
)

// Analysis holds the configuration and collected results of one source scan.
type Analysis struct {
	ID        string
	Name      string
	SourceDir string

	IgnoreDirs  []string
	IgnoreFiles []string

	ignoreDeps []glob.Glob

	Stats   *Statistics
	Results parser.Results

	StartedAt  time.Time
	FinishedAt time.Time
}

func New(name, sourceDir string, ignoreDeps []string) (*Analysis, error) {
	a := &Analysis{
		ID:        uuid.NewString(),
		Name:      name,
		SourceDir: sourceDir,
		Stats:     NewStatistics(),
		Results:   make(parser.Results),
	}

	for _, pattern := range ignoreDeps {
		g, err := glob.Compile(normalizePattern(pattern))
		if err != nil {
			return nil, fmt.Errorf("compile ignore pattern %q: %w", pattern, err)
		}
		a.ignoreDeps = append(a.ignoreDeps, g)
	}

	return a, nil
}

// IgnoreDependency reports whether a dependency name matches any configured
// ignore pattern.
func (a *Analysis) IgnoreDependency(dependency string) bool {
	for _, g := range a.ignoreDeps {
		if g.Match(dependency) {
			return true
		}
	}
	return false
}

// ParserContext is the view of this analysis handed to language parsers.
func (a *Analysis) ParserContext() *parser.Context {
	return &parser.Context{
		SourceDir: a.SourceDir,
		Ignore:    a.IgnoreDependency,
		Stats:     a.Stats,
	}
}

// Collect merges a parser's results into the shared mapping. Colliding
// unique names overwrite silently.
func (a *Analysis) Collect(results parser.Results) {
	for k, v := range results {
		a.Results[k] = v
	}
}

// Duration returns the wall time of the run, zero before it finished.
func (a *Analysis) Duration() time.Duration {
	if a.StartedAt.IsZero() || a.FinishedAt.IsZero() {
		return 0
	}
	return a.FinishedAt.Sub(a.StartedAt)
}

// normalizePattern widens bare substrings into *substr* globs so config
// entries like "java.util" behave the way the ignore list always worked.
func normalizePattern(pattern string) string {
	if strings.ContainsAny(pattern, "*?[{") {
		return pattern
	}
	return "*" + pattern + "*"
}
