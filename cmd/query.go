package cmd

import (
	"encoding/json"
	"flag"
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/the-hwk/powercfg/internal/power"
)

// RunQuery loads the live scheme and prints it as a tree, JSON profile,
// or YAML dump.
func RunQuery(args []string) error {
	queryFlags := flag.NewFlagSet("query", flag.ExitOnError)
	configFile := queryFlags.String("config", "", "Configuration file")
	queryFlags.StringVar(configFile, "c", "", "Configuration file (short)")

	asJSON := queryFlags.Bool("json", false, "Print the profile JSON document")
	asYAML := queryFlags.Bool("yaml", false, "Print a YAML dump")
	queryFlags.Parse(args)

	mgr, _, err := loadManager(*configFile)
	if err != nil {
		return err
	}

	switch {
	case *asJSON:
		buf, err := json.MarshalIndent(mgr.Scheme().ToRecord(), "", "    ")
		if err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
		fmt.Println(string(buf))
		return nil
	case *asYAML:
		return printYAML(mgr.Scheme().ToRecord())
	default:
		printTree(mgr.Scheme())
		return nil
	}
}

func printTree(scheme *power.Scheme) {
	fmt.Printf("Power Scheme: %s (%s)\n", orGUID(scheme.Name(), scheme.GUID()), scheme.GUID())
	for _, g := range scheme.SubGroups() {
		fmt.Printf("  %s (%s)\n", orGUID(g.Name(), g.GUID()), g.GUID())
		for _, s := range g.Settings() {
			changed := ""
			if s.IsACChanged() || s.IsDCChanged() {
				changed = " *"
			}
			fmt.Printf("    %s (%s)%s\n", orGUID(s.Name(), s.GUID()), s.GUID(), changed)
			fmt.Printf("      AC: %s (%d)  DC: %s (%d)\n", s.ACValueHex(), s.ACValue(), s.DCValueHex(), s.DCValue())
			fmt.Printf("      options: %s %v\n", s.OptionsType(), s.Options())
		}
	}
}

func orGUID(name, guid string) string {
	if name != "" {
		return name
	}
	return guid
}

// printYAML re-encodes the record through JSON so the YAML keys match
// the persisted schema instead of the Go field names.
func printYAML(rec power.SchemeRecord) error {
	buf, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	var generic map[string]interface{}
	if err := json.Unmarshal(buf, &generic); err != nil {
		return err
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	fmt.Print(string(out))
	return nil
}
