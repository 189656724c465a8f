// # cmd/depscan/app_test.go
package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depscan/internal/config"
	"depscan/internal/graph"
)

func writeSource(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func fixtureConfig(t *testing.T) *config.Config {
	t.Helper()
	tmp := t.TempDir()
	source := filepath.Join(tmp, "src")

	writeSource(t, source, "base/Base.kt", `package com.example.base

class Base { }
`)
	writeSource(t, source, "app/Child.kt", `package com.example.app

import com.example.base.Base

class Child : Base { }
`)

	cfg := config.Default()
	cfg.AnalysisName = "fixture"
	cfg.Source = source
	cfg.ExportDir = filepath.Join(tmp, "out")
	cfg.HistoryDB = filepath.Join(tmp, "history.db")
	cfg.Export.DOT = true
	cfg.Export.JSON = true
	cfg.Export.TSV = true
	return cfg
}

func TestRunOnceExportsEverything(t *testing.T) {
	cfg := fixtureConfig(t)

	app, err := NewApp(cfg)
	require.NoError(t, err)
	defer app.Close()

	require.NoError(t, app.RunOnce(context.Background()))

	kinds := []graph.Kind{
		graph.FileDependencyGraph,
		graph.EntityDependencyGraph,
		graph.EntityInheritanceGraph,
		graph.EntityCompleteGraph,
	}
	for _, kind := range kinds {
		path := filepath.Join(cfg.ExportDir, string(kind)+".dot")
		data, err := os.ReadFile(path)
		require.NoError(t, err, "missing DOT export %s", path)
		assert.True(t, strings.HasPrefix(string(data), "digraph"), "export %s is not DOT", path)
	}

	jsonData, err := os.ReadFile(filepath.Join(cfg.ExportDir, "fixture.json"))
	require.NoError(t, err)
	var report map[string]any
	require.NoError(t, json.Unmarshal(jsonData, &report))
	assert.Equal(t, float64(2), report["file_results"])
	assert.Equal(t, float64(2), report["entity_results"])

	tsvData, err := os.ReadFile(filepath.Join(cfg.ExportDir, "fixture.tsv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(tsvData), "\n"), "\n")
	assert.Len(t, lines, 5, "header plus 2 file rows plus 2 entity rows")
}

func TestRunOnceRecordsHistory(t *testing.T) {
	cfg := fixtureConfig(t)

	app, err := NewApp(cfg)
	require.NoError(t, err)
	defer app.Close()

	require.NoError(t, app.RunOnce(context.Background()))
	// A second run under a fresh run id.
	require.NoError(t, app.RunOnce(context.Background()))

	out, err := app.TrendReport(10)
	require.NoError(t, err)
	assert.Contains(t, out, "Trend for fixture (2 runs)")
}

func TestTrendReportWithoutStore(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.HistoryDB = ""

	app, err := NewApp(cfg)
	require.NoError(t, err)
	defer app.Close()

	_, err = app.TrendReport(5)
	assert.Error(t, err)
}

func TestNewRegistryRejectsUnknownLanguage(t *testing.T) {
	cfg := config.Default()
	cfg.Languages = []string{"fortran"}

	app := &App{cfg: cfg}
	_, err := app.newRegistry()
	assert.Error(t, err)
}

func TestNewRegistryRejectsEmptyLanguages(t *testing.T) {
	cfg := config.Default()
	cfg.Languages = nil

	app := &App{cfg: cfg}
	_, err := app.newRegistry()
	assert.Error(t, err)
}

func TestWatcherTriggersRescan(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Export.DOT = false
	cfg.Export.TSV = false
	cfg.Watch.Debounce = 50 * time.Millisecond
	cfg.Watch.RescanPerMinute = 600

	app, err := NewApp(cfg)
	require.NoError(t, err)
	defer app.Close()

	require.NoError(t, app.RunOnce(context.Background()))
	require.NoError(t, app.StartWatcher(context.Background()))

	writeSource(t, cfg.Source, "app/Extra.kt", `package com.example.app

class Extra { }
`)

	jsonPath := filepath.Join(cfg.ExportDir, "fixture.json")
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		data, err := os.ReadFile(jsonPath)
		if err == nil {
			var report map[string]any
			if json.Unmarshal(data, &report) == nil {
				if count, ok := report["file_results"].(float64); ok && count == 3 {
					return
				}
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("Rescan never refreshed the JSON export")
}
