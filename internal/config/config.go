// Package config provides HCL configuration handling for the tool.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"

	"github.com/the-hwk/powercfg/internal/brand"
	"github.com/the-hwk/powercfg/internal/logging"
)

// Config is the top-level structure for the tool configuration.
type Config struct {
	// Path or name of the powercfg binary to invoke.
	PowercfgBin string `hcl:"powercfg_bin,optional"`
	// Directory holding the snapshot database. Defaults to the user
	// config dir.
	StateDir string `hcl:"state_dir,optional"`

	Log      *LogConfig      `hcl:"log,block"`
	Snapshot *SnapshotConfig `hcl:"snapshot,block"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `hcl:"level,optional"` // debug, info, warn, error
	JSON  bool   `hcl:"json,optional"`
}

// SnapshotConfig controls the local snapshot history.
type SnapshotConfig struct {
	// Auto takes a snapshot of the live scheme before every apply.
	Auto bool `hcl:"auto,optional"`
	// Keep bounds how many snapshots prune retains.
	Keep int `hcl:"keep,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.PowercfgBin == "" {
		cfg.PowercfgBin = brand.PowercfgBinary
	}
	if cfg.StateDir == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.StateDir = filepath.Join(dir, brand.LowerName)
		} else {
			cfg.StateDir = "."
		}
	}
	if cfg.Log == nil {
		cfg.Log = &LogConfig{}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Snapshot == nil {
		cfg.Snapshot = &SnapshotConfig{Auto: true}
	}
	if cfg.Snapshot.Keep == 0 {
		cfg.Snapshot.Keep = 20
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return brand.ConfigFileName
	}
	return filepath.Join(dir, brand.LowerName, brand.ConfigFileName)
}

// LoadFile loads an HCL config file. A missing file is not an error: the
// defaults apply.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := hclsimple.Decode(path, data, evalContext(), &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// evalContext exposes a few convenience variables to config expressions,
// e.g. state_dir = "${home}/.powerprof".
func evalContext() *hcl.EvalContext {
	home, _ := os.UserHomeDir()
	configDir, _ := os.UserConfigDir()
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"home":       cty.StringVal(home),
			"config_dir": cty.StringVal(configDir),
		},
	}
}

// LogLevel maps the configured level string to a logging level.
func (c *Config) LogLevel() logging.Level {
	switch c.Log.Level {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

// StatePath returns the snapshot database location.
func (c *Config) StatePath() string {
	return filepath.Join(c.StateDir, brand.StateFileName)
}
