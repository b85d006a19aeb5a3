// Package cmd implements the CLI subcommands.
package cmd

import (
	"fmt"
	"os"

	"github.com/the-hwk/powercfg/internal/config"
	"github.com/the-hwk/powercfg/internal/logging"
	"github.com/the-hwk/powercfg/internal/power"
	"github.com/the-hwk/powercfg/internal/state"
)

// loadConfig loads the HCL config (defaults if the file is absent) and
// configures the default logger from it.
func loadConfig(configFile string) (*config.Config, error) {
	if configFile == "" {
		configFile = config.DefaultPath()
	}
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return nil, err
	}
	logging.SetDefault(logging.New(logging.Config{
		Level: cfg.LogLevel(),
		JSON:  cfg.Log.JSON,
	}))
	return cfg, nil
}

// loadManager loads the config and parses the live scheme from powercfg.
func loadManager(configFile string) (*power.Manager, *config.Config, error) {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return nil, nil, err
	}
	mgr := power.NewManager(cfg.PowercfgBin, nil, nil)
	if err := mgr.Load(); err != nil {
		return nil, nil, err
	}
	return mgr, cfg, nil
}

// openStore opens the snapshot database, creating the state dir if needed.
func openStore(cfg *config.Config) (*state.Store, error) {
	if err := os.MkdirAll(cfg.StateDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return state.Open(state.DefaultOptions(cfg.StatePath()))
}

// printCommands prints the command lines issued (or planned) by an apply.
func printCommands(cmds []power.AppliedCommand, dryRun bool) {
	if len(cmds) == 0 {
		fmt.Println("No changes to apply.")
		return
	}
	for _, c := range cmds {
		if dryRun {
			fmt.Printf("would run: %s\n", c)
		} else {
			fmt.Println(c)
		}
	}
}
