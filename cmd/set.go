package cmd

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/the-hwk/powercfg/internal/logging"
	"github.com/the-hwk/powercfg/internal/power"
	"github.com/the-hwk/powercfg/internal/state"
)

// RunSet mutates one setting's AC and/or DC value and applies the delta.
// Values accept decimal or 0x-prefixed hex.
func RunSet(args []string) error {
	setFlags := flag.NewFlagSet("set", flag.ExitOnError)
	configFile := setFlags.String("config", "", "Configuration file")
	setFlags.StringVar(configFile, "c", "", "Configuration file (short)")

	settingGUID := setFlags.String("setting", "", "Setting GUID (required)")
	setFlags.StringVar(settingGUID, "s", "", "Setting GUID (short)")

	acRaw := setFlags.String("ac", "", "New AC value")
	dcRaw := setFlags.String("dc", "", "New DC value")

	dryRun := setFlags.Bool("dry-run", false, "Print commands without running them")
	setFlags.BoolVar(dryRun, "n", false, "Dry run (short)")
	setFlags.Parse(args)

	if *settingGUID == "" {
		return fmt.Errorf("missing required flag: --setting <guid>")
	}
	if *acRaw == "" && *dcRaw == "" {
		return fmt.Errorf("nothing to set: pass --ac and/or --dc")
	}

	mgr, cfg, err := loadManager(*configFile)
	if err != nil {
		return err
	}

	_, setting, ok := mgr.Scheme().FindSetting(*settingGUID)
	if !ok {
		return fmt.Errorf("no setting with GUID %s in scheme %s", *settingGUID, mgr.Scheme().GUID())
	}

	if *acRaw != "" {
		v, err := strconv.ParseInt(*acRaw, 0, 64)
		if err != nil {
			return fmt.Errorf("bad AC value %q: %w", *acRaw, err)
		}
		if err := setting.SetACValue(v); err != nil {
			return err
		}
	}
	if *dcRaw != "" {
		v, err := strconv.ParseInt(*dcRaw, 0, 64)
		if err != nil {
			return fmt.Errorf("bad DC value %q: %w", *dcRaw, err)
		}
		if err := setting.SetDCValue(v); err != nil {
			return err
		}
	}

	var store *state.Store
	if cfg.Snapshot.Auto && !*dryRun {
		store, err = openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
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
