package main

import (
	"fmt"
	"os"

	"github.com/the-hwk/powercfg/cmd"
	"github.com/the-hwk/powercfg/internal/brand"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "query":
		if err := cmd.RunQuery(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
			os.Exit(1)
		}

	case "export":
		if err := cmd.RunExport(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}

	case "restore":
		if err := cmd.RunRestore(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Restore failed: %v\n", err)
			os.Exit(1)
		}

	case "apply":
		if err := cmd.RunApply(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Apply failed: %v\n", err)
			os.Exit(1)
		}

	case "set":
		if err := cmd.RunSet(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Set failed: %v\n", err)
			os.Exit(1)
		}

	case "diff":
		if len(os.Args) < 4 {
			fmt.Println("Usage: " + brand.BinaryName + " diff <a.json> <b.json>")
			os.Exit(1)
		}
		if err := cmd.RunDiff(os.Args[2], os.Args[3]); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

	case "snapshot":
		if err := cmd.RunSnapshot(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Snapshot failed: %v\n", err)
			os.Exit(1)
		}

	case "console":
		if err := cmd.RunConsole(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Console failed: %v\n", err)
			os.Exit(1)
		}

	case "version":
		fmt.Printf("%s version %s\n", brand.Name, brand.Version)

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - %s

Usage:
  %s <command> [options]

Commands:
  query     Show the current power scheme
            Options: --json, --yaml, --config (-c) <file>
  export    Write the current scheme to a profile JSON file
            Options: --out (-o) <file>
  restore   Apply values from a profile JSON file
            Options: --file (-f) <file>, --dry-run (-n)
  apply     Alias for restore
  set       Change one setting's AC/DC value and apply it
            Options: --setting (-s) <guid>, --ac <v>, --dc <v>, --dry-run (-n)
  diff      Compare two exported profiles
  snapshot  Manage the local snapshot history
            Subcommands: save, list, show, restore, prune, history
  console   Interactive settings browser/editor
  version   Print version info

Examples:
  %s query --yaml
  %s export -o balanced.json
  %s restore -f balanced.json --dry-run
  %s set -s 29f6c1db-86da-48c5-9fdb-f2b67b1f44da --ac 900
  %s snapshot list

For snapshot-specific help: %s snapshot help
`,
		brand.Name, brand.Description,
		brand.BinaryName,
		brand.BinaryName, brand.BinaryName, brand.BinaryName,
		brand.BinaryName, brand.BinaryName, brand.BinaryName)
}
