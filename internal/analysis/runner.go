// # internal/analysis/runner.go
package analysis

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"depscan/internal/parser"
	"depscan/internal/shared/observability"
)

// Runner drives the language parsers over the analysis source tree in two
// strict phases: every file result first, then entity results. Per-file
// construction happens inside each parser; only the final merge into the
// shared results map touches shared state.
type Runner struct {
	analysis *Analysis
	registry *parser.Registry
}

func NewRunner(a *Analysis, registry *parser.Registry) *Runner {
	return &Runner{analysis: a, registry: registry}
}

func (r *Runner) Run(ctx context.Context) error {
	a := r.analysis
	a.StartedAt = time.Now()
	defer func() { a.FinishedAt = time.Now() }()

	slog.Info("starting analysis", "name", a.Name, "id", a.ID, "source", a.SourceDir)

	pctx := a.ParserContext()

	start := time.Now()
	if err := r.scanFiles(ctx, pctx); err != nil {
		return err
	}
	a.Stats.AddDuration(StatScanningRuntime, time.Since(start))
	observability.PhaseDuration.WithLabelValues("file_results").Observe(time.Since(start).Seconds())

	for _, p := range r.registry.Parsers() {
		p.AfterFileResults(pctx)
	}

	start = time.Now()
	for _, p := range r.registry.Parsers() {
		p.GenerateEntityResults(pctx)
	}
	a.Stats.AddDuration(StatEntityRuntime, time.Since(start))
	observability.PhaseDuration.WithLabelValues("entity_results").Observe(time.Since(start).Seconds())

	for _, p := range r.registry.Parsers() {
		a.Collect(p.Results())
	}

	slog.Info("analysis finished",
		"files", len(a.Results.FileResults()),
		"entities", len(a.Results.EntityResults()),
		"hits", a.Stats.Counter(parser.StatParsingHits),
		"misses", a.Stats.Counter(parser.StatParsingMisses))

	return nil
}

func (r *Runner) scanFiles(ctx context.Context, pctx *parser.Context) error {
	a := r.analysis

	info, err := os.Stat(a.SourceDir)
	if err != nil {
		return fmt.Errorf("source directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source %s is not a directory", a.SourceDir)
	}

	return filepath.WalkDir(a.SourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if r.ignoredDir(d.Name()) {
				slog.Debug("skipping ignored directory", "dir", path)
				return filepath.SkipDir
			}
			return nil
		}

		if r.ignoredFile(d.Name()) {
			slog.Debug("skipping ignored file", "file", path)
			a.Stats.Increment(StatSkippedFiles)
			observability.FilesSkipped.Inc()
			return nil
		}

		lang, ok := r.registry.ForPath(path)
		if !ok {
			a.Stats.Increment(StatSkippedFiles)
			observability.FilesSkipped.Inc()
			return nil
		}

		resolved, ok := resolveSymlink(path)
		if !ok {
			slog.Warn("ignoring unresolvable symlink", "path", path)
			a.Stats.Increment(StatSkippedFiles)
			observability.FilesSkipped.Inc()
			return nil
		}

		content, err := os.ReadFile(resolved)
		if err != nil {
			slog.Warn("could not read file", "path", resolved, "error", err)
			a.Stats.Increment(StatSkippedFiles)
			observability.FilesSkipped.Inc()
			return nil
		}

		lang.GenerateFileResult(pctx, d.Name(), resolved, string(content))
		a.Stats.Increment(StatScannedFiles)
		observability.FilesScanned.WithLabelValues(string(lang.Language())).Inc()
		return nil
	})
}

func (r *Runner) ignoredDir(name string) bool {
	return containsAny(name, r.analysis.IgnoreDirs)
}

func (r *Runner) ignoredFile(name string) bool {
	return containsAny(name, r.analysis.IgnoreFiles)
}

func containsAny(name string, substrings []string) bool {
	for _, s := range substrings {
		if s != "" && strings.Contains(name, s) {
			return true
		}
	}
	return false
}

func resolveSymlink(path string) (string, bool) {
	info, err := os.Lstat(path)
	if err != nil {
		return "", false
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return path, true
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", false
	}
	return resolved, true
}
