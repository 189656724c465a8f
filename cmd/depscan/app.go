// # cmd/depscan/app.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"depscan/internal/analysis"
	"depscan/internal/config"
	"depscan/internal/graph"
	"depscan/internal/history"
	"depscan/internal/output"
	"depscan/internal/parser"
	"depscan/internal/shared/util"
	"depscan/internal/watcher"
)

// App wires configuration, analysis runs, exports and history together.
type App struct {
	cfg     *config.Config
	store   *history.Store
	watcher *watcher.Watcher

	runMu sync.Mutex
}

func NewApp(cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	if cfg.HistoryDB != "" {
		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return nil, err
		}
		app.store = store
	}

	return app, nil
}

func (a *App) Close() error {
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// newRegistry builds fresh parser instances; results reset with them.
func (a *App) newRegistry() (*parser.Registry, error) {
	var parsers []parser.LanguageParser
	for _, lang := range a.cfg.Languages {
		switch strings.ToLower(lang) {
		case "kotlin":
			parsers = append(parsers, parser.NewKotlinParser())
		case "swift":
			parsers = append(parsers, parser.NewSwiftParser())
		default:
			return nil, fmt.Errorf("unsupported language %q", lang)
		}
	}
	if len(parsers) == 0 {
		return nil, fmt.Errorf("no languages configured")
	}
	return parser.NewRegistry(parsers...), nil
}

// RunOnce performs a full analysis pass: scan, graphs, exports, history.
func (a *App) RunOnce(ctx context.Context) error {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	registry, err := a.newRegistry()
	if err != nil {
		return err
	}

	run, err := analysis.New(a.cfg.AnalysisName, a.cfg.Source, a.cfg.Ignore.Dependencies)
	if err != nil {
		return err
	}
	run.IgnoreDirs = a.cfg.Ignore.Dirs
	run.IgnoreFiles = a.cfg.Ignore.Files

	if err := analysis.NewRunner(run, registry).Run(ctx); err != nil {
		return err
	}

	representations, err := buildGraphs(run.Results)
	if err != nil {
		return err
	}

	cycles, err := representations[0].Cycles()
	if err != nil {
		return err
	}

	if err := a.export(run, representations); err != nil {
		return err
	}

	a.printSummary(run, representations, cycles)

	if a.store != nil {
		if err := a.saveSnapshot(run, cycles); err != nil {
			slog.Warn("failed to record history snapshot", "error", err)
		}
	}

	return nil
}

func buildGraphs(results parser.Results) ([]*graph.Representation, error) {
	fileDeps, err := graph.BuildFileDependencies(results)
	if err != nil {
		return nil, err
	}
	entityDeps, err := graph.BuildEntityDependencies(results)
	if err != nil {
		return nil, err
	}
	inheritance, err := graph.BuildEntityInheritance(results)
	if err != nil {
		return nil, err
	}
	complete, err := graph.BuildEntityComplete(entityDeps, inheritance)
	if err != nil {
		return nil, err
	}
	return []*graph.Representation{fileDeps, entityDeps, inheritance, complete}, nil
}

func (a *App) export(run *analysis.Analysis, representations []*graph.Representation) error {
	if a.cfg.Export.DOT {
		for _, r := range representations {
			cycles, err := r.Cycles()
			if err != nil {
				return err
			}
			dot, err := output.NewDOTGenerator(r).Generate(cycles)
			if err != nil {
				return err
			}
			path := filepath.Join(a.cfg.ExportDir, string(r.Kind)+".dot")
			if err := util.WriteStringWithDirs(path, dot, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		}
	}

	if a.cfg.Export.JSON {
		report, err := output.BuildReport(run, representations)
		if err != nil {
			return err
		}
		data, err := report.Encode()
		if err != nil {
			return err
		}
		path := filepath.Join(a.cfg.ExportDir, run.Name+".json")
		if err := util.WriteFileWithDirs(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	if a.cfg.Export.TSV {
		tsv, err := output.NewTSVGenerator(run.Results).Generate()
		if err != nil {
			return err
		}
		path := filepath.Join(a.cfg.ExportDir, run.Name+".tsv")
		if err := util.WriteStringWithDirs(path, tsv, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	return nil
}

func (a *App) printSummary(run *analysis.Analysis, representations []*graph.Representation, cycles [][]string) {
	fmt.Printf("Analysis %s (%s)\n", run.Name, run.ID)
	fmt.Printf("  files: %d, entities: %d\n",
		len(run.Results.FileResults()), len(run.Results.EntityResults()))
	fmt.Printf("  parsing hits: %d, misses: %d\n",
		run.Stats.Counter(parser.StatParsingHits), run.Stats.Counter(parser.StatParsingMisses))
	for _, r := range representations {
		fmt.Printf("  %s: %d nodes, %d edges\n", r.Kind, r.NodeCount(), r.EdgeCount())
	}
	if len(cycles) > 0 {
		fmt.Printf("  file dependency cycles: %d\n", len(cycles))
		for _, cycle := range cycles {
			fmt.Printf("    %s\n", strings.Join(cycle, " -> "))
		}
	}
	fmt.Printf("  runtime: %s\n", run.Duration())
}

func (a *App) saveSnapshot(run *analysis.Analysis, cycles [][]string) error {
	return a.store.Save(history.Snapshot{
		SchemaVersion: history.SchemaVersion,
		RunID:         run.ID,
		Timestamp:     run.FinishedAt,
		AnalysisName:  run.Name,
		FileResults:   len(run.Results.FileResults()),
		EntityResults: len(run.Results.EntityResults()),
		ParsingHits:   run.Stats.Counter(parser.StatParsingHits),
		ParsingMisses: run.Stats.Counter(parser.StatParsingMisses),
		CycleCount:    len(cycles),
		RuntimeMillis: run.Duration().Milliseconds(),
	})
}

// TrendReport renders run-over-run deltas from the history store.
func (a *App) TrendReport(limit int) (string, error) {
	if a.store == nil {
		return "", fmt.Errorf("no history_db configured")
	}
	report, err := a.store.Trend(a.cfg.AnalysisName, limit)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Trend for %s (%d runs)\n", report.AnalysisName, report.ScanCount))
	for _, p := range report.Points {
		b.WriteString(fmt.Sprintf("  %s files=%d (%+d) entities=%d (%+d) cycles=%d (%+d) misses=%d (%+d)\n",
			p.Timestamp.Format("2006-01-02 15:04:05"),
			p.FileResults, p.DeltaFiles,
			p.EntityResults, p.DeltaEntities,
			p.CycleCount, p.DeltaCycles,
			p.ParsingMisses, p.DeltaParsingMisses))
	}
	return b.String(), nil
}

// StartWatcher begins rescanning on source changes.
func (a *App) StartWatcher(ctx context.Context) error {
	registry, err := a.newRegistry()
	if err != nil {
		return err
	}

	w, err := watcher.New(
		a.cfg.Watch.Debounce,
		a.cfg.Watch.RescanPerMinute,
		a.cfg.Ignore.Dirs,
		a.cfg.Ignore.Files,
		registry.Extensions(),
		func(paths []string) {
			slog.Info("source changed, rescanning", "changes", len(paths))
			if err := a.RunOnce(ctx); err != nil {
				slog.Error("rescan failed", "error", err)
			}
		},
	)
	if err != nil {
		return err
	}

	a.watcher = w
	return w.Watch(a.cfg.Source)
}
