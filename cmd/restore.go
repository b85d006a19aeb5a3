package cmd

import (
	"flag"
	"fmt"

	"github.com/the-hwk/powercfg/internal/logging"
	"github.com/the-hwk/powercfg/internal/power"
	"github.com/the-hwk/powercfg/internal/state"
)

// RunRestore loads a profile JSON file into the live scheme and
// re-applies only the values that differ through powercfg.
func RunRestore(args []string) error {
	restoreFlags := flag.NewFlagSet("restore", flag.ExitOnError)
	configFile := restoreFlags.String("config", "", "Configuration file")
	restoreFlags.StringVar(configFile, "c", "", "Configuration file (short)")

	file := restoreFlags.String("file", "", "Profile JSON file (required)")
	restoreFlags.StringVar(file, "f", "", "Profile JSON file (short)")

	dryRun := restoreFlags.Bool("dry-run", false, "Print commands without running them")
	restoreFlags.BoolVar(dryRun, "n", false, "Dry run (short)")
	restoreFlags.Parse(args)

	if *file == "" {
		return fmt.Errorf("missing required flag: --file <profile.json>")
	}

	mgr, cfg, err := loadManager(*configFile)
	if err != nil {
		return err
	}

	// Snapshot the live scheme before mutating it, so the previous
	// state stays recoverable.
	var store *state.Store
	if cfg.Snapshot.Auto && !*dryRun {
		store, err = openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		if _, err := store.SaveSnapshot("pre-restore", mgr.Scheme().ToRecord()); err != nil {
			return err
		}
	}

	if err := mgr.LoadFile(*file); err != nil {
		return err
	}

	cmds, applyErr := mgr.Apply(power.ApplyOptions{DryRun: *dryRun})
	printCommands(cmds, *dryRun)

	if store != nil {
		if err := store.LogApplied(mgr.Scheme().GUID(), cmds); err != nil {
			logging.Warn("failed to record applied commands", "error", err)
		}
	}
	return applyErr
}
