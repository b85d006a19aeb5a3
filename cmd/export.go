package cmd

import (
	"flag"
	"fmt"
)

// RunExport loads the live scheme and writes it as a profile JSON file.
func RunExport(args []string) error {
	exportFlags := flag.NewFlagSet("export", flag.ExitOnError)
	configFile := exportFlags.String("config", "", "Configuration file")
	exportFlags.StringVar(configFile, "c", "", "Configuration file (short)")

	out := exportFlags.String("out", "", "Output profile file (required)")
	exportFlags.StringVar(out, "o", "", "Output profile file (short)")
	exportFlags.Parse(args)

	if *out == "" {
		return fmt.Errorf("missing required flag: --out <file>")
	}

	mgr, _, err := loadManager(*configFile)
	if err != nil {
		return err
	}
	if err := mgr.ExportFile(*out); err != nil {
		return err
	}
	fmt.Printf("Exported scheme %s to %s\n", mgr.Scheme().GUID(), *out)
	return nil
}
