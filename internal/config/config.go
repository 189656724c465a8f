// # internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	AnalysisName string   `toml:"analysis_name"`
	Source       string   `toml:"source"`
	ExportDir    string   `toml:"export_dir"`
	Languages    []string `toml:"languages"`
	HistoryDB    string   `toml:"history_db"`
	Ignore       Ignore   `toml:"ignore"`
	Export       Export   `toml:"export"`
	Watch        Watch    `toml:"watch"`
	Metrics      Metrics  `toml:"metrics"`
}

type Ignore struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
	// Dependencies holds glob patterns; a bare substring matches anywhere
	// inside a dependency name.
	Dependencies []string `toml:"dependencies"`
}

type Export struct {
	DOT  bool `toml:"dot"`
	JSON bool `toml:"json"`
	TSV  bool `toml:"tsv"`
}

type Watch struct {
	Enabled         bool          `toml:"enabled"`
	Debounce        time.Duration `toml:"debounce"`
	RescanPerMinute int           `toml:"rescan_per_minute"`
}

type Metrics struct {
	// Listen is an optional address (e.g. ":9151") serving /metrics.
	Listen string `toml:"listen"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a runnable configuration without a config file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.AnalysisName == "" {
		cfg.AnalysisName = "depscan"
	}
	if cfg.Source == "" {
		cfg.Source = "."
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"kotlin", "swift"}
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.RescanPerMinute == 0 {
		cfg.Watch.RescanPerMinute = 6
	}
	if len(cfg.Ignore.Dirs) == 0 {
		cfg.Ignore.Dirs = []string{".git"}
	}
}
