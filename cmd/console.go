package cmd

import (
	"flag"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/the-hwk/powercfg/internal/tui"
)

// RunConsole starts the interactive TUI browser/editor.
func RunConsole(args []string) error {
	consoleFlags := flag.NewFlagSet("console", flag.ExitOnError)
	configFile := consoleFlags.String("config", "", "Configuration file")
	consoleFlags.StringVar(configFile, "c", "", "Configuration file (short)")
	consoleFlags.Parse(args)

	mgr, _, err := loadManager(*configFile)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(mgr), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("console failed: %w", err)
	}
	return nil
}
