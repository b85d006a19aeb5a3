package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"time"

	"github.com/the-hwk/powercfg/internal/logging"
	"github.com/the-hwk/powercfg/internal/power"
)

// RunSnapshot manages the local snapshot history.
// Subcommands: save, list, show, restore, prune, history.
func RunSnapshot(args []string) error {
	if len(args) == 0 {
		printSnapshotUsage()
		return nil
	}

	switch args[0] {
	case "save":
		return runSnapshotSave(args[1:])
	case "list":
		return runSnapshotList(args[1:])
	case "show":
		return runSnapshotShow(args[1:])
	case "restore":
		return runSnapshotRestore(args[1:])
	case "prune":
		return runSnapshotPrune(args[1:])
	case "history":
		return runSnapshotHistory(args[1:])
	case "help":
		printSnapshotUsage()
		return nil
	default:
		printSnapshotUsage()
		return fmt.Errorf("unknown snapshot subcommand: %s", args[0])
	}
}

func runSnapshotSave(args []string) error {
	saveFlags := flag.NewFlagSet("snapshot save", flag.ExitOnError)
	configFile := saveFlags.String("config", "", "Configuration file")
	label := saveFlags.String("label", "manual", "Snapshot label")
	saveFlags.Parse(args)

	mgr, cfg, err := loadManager(*configFile)
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SaveSnapshot(*label, mgr.Scheme().ToRecord())
	if err != nil {
		return err
	}
	fmt.Printf("Saved snapshot %d (%s) of scheme %s\n", id, *label, mgr.Scheme().GUID())
	return nil
}

func runSnapshotList(args []string) error {
	listFlags := flag.NewFlagSet("snapshot list", flag.ExitOnError)
	configFile := listFlags.String("config", "", "Configuration file")
	listFlags.Parse(args)

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	snaps, err := store.ListSnapshots()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("No snapshots.")
		return nil
	}
	fmt.Printf("%-6s %-20s %-14s %s\n", "ID", "TAKEN", "LABEL", "SCHEME")
	for _, s := range snaps {
		fmt.Printf("%-6d %-20s %-14s %s\n", s.ID, s.TakenAt.Local().Format(time.DateTime), s.Label, s.SchemeGUID)
	}
	return nil
}

func runSnapshotShow(args []string) error {
	showFlags := flag.NewFlagSet("snapshot show", flag.ExitOnError)
	configFile := showFlags.String("config", "", "Configuration file")
	id := showFlags.Int64("id", 0, "Snapshot id (required)")
	showFlags.Parse(args)

	if *id == 0 {
		return fmt.Errorf("missing required flag: --id <n>")
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := store.GetSnapshot(*id)
	if err != nil {
		return err
	}
	buf, err := json.MarshalIndent(snap.Record, "", "    ")
	if err != nil {
		return err
	}
	fmt.Println(string(buf))
	return nil
}

func runSnapshotRestore(args []string) error {
	restoreFlags := flag.NewFlagSet("snapshot restore", flag.ExitOnError)
	configFile := restoreFlags.String("config", "", "Configuration file")
	id := restoreFlags.Int64("id", 0, "Snapshot id (required)")
	dryRun := restoreFlags.Bool("dry-run", false, "Print commands without running them")
	restoreFlags.BoolVar(dryRun, "n", false, "Dry run (short)")
	restoreFlags.Parse(args)

	if *id == 0 {
		return fmt.Errorf("missing required flag: --id <n>")
	}

	mgr, cfg, err := loadManager(*configFile)
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := store.GetSnapshot(*id)
	if err != nil {
		return err
	}
	if err := mgr.Scheme().LoadRecord(snap.Record); err != nil {
		return err
	}

	cmds, applyErr := mgr.Apply(power.ApplyOptions{DryRun: *dryRun})
	printCommands(cmds, *dryRun)

	if !*dryRun {
		if err := store.LogApplied(mgr.Scheme().GUID(), cmds); err != nil {
			logging.Warn("failed to record applied commands", "error", err)
		}
	}
	return applyErr
}

func runSnapshotPrune(args []string) error {
	pruneFlags := flag.NewFlagSet("snapshot prune", flag.ExitOnError)
	configFile := pruneFlags.String("config", "", "Configuration file")
	keep := pruneFlags.Int("keep", 0, "How many snapshots to keep (default from config)")
	pruneFlags.Parse(args)

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	if *keep == 0 {
		*keep = cfg.Snapshot.Keep
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.PruneSnapshots(*keep)
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d snapshot(s), kept the newest %d.\n", removed, *keep)
	return nil
}

func runSnapshotHistory(args []string) error {
	historyFlags := flag.NewFlagSet("snapshot history", flag.ExitOnError)
	configFile := historyFlags.String("config", "", "Configuration file")
	limit := historyFlags.Int("limit", 50, "How many entries to show")
	historyFlags.Parse(args)

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.RecentApplied(*limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No applied commands recorded.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %s\n", e.At.Local().Format(time.DateTime), e.Command)
	}
	return nil
}

func printSnapshotUsage() {
	fmt.Println(`Usage: snapshot <subcommand> [options]

Subcommands:
  save      Save a snapshot of the live scheme (--label <text>)
  list      List stored snapshots
  show      Print one snapshot as JSON (--id <n>)
  restore   Restore setting values from a snapshot (--id <n>, --dry-run)
  prune     Delete old snapshots (--keep <n>)
  history   Show recently applied powercfg commands (--limit <n>)`)
}
