package power

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/the-hwk/powercfg/internal/brand"
	"github.com/the-hwk/powercfg/internal/logging"
)

// powercfg invocations used by the manager.
const (
	queryArg  = "/query"
	setACVerb = "-setacvalueindex"
	setDCVerb = "-setdcvalueindex"
)

// Manager owns one live Scheme and drives the powercfg round trips:
// initial load, JSON export/restore, and delta re-application.
type Manager struct {
	bin    string
	runner CommandRunner
	scheme *Scheme
	log    *logging.Logger
}

// NewManager creates a manager around the given powercfg binary and
// runner. A nil runner falls back to DefaultCommandRunner.
func NewManager(bin string, runner CommandRunner, log *logging.Logger) *Manager {
	if bin == "" {
		bin = brand.PowercfgBinary
	}
	if runner == nil {
		runner = DefaultCommandRunner
	}
	if log == nil {
		log = logging.WithComponent("power")
	}
	return &Manager{bin: bin, runner: runner, log: log}
}

// Load queries the current power configuration and parses it into a
// fresh scheme. One-shot full population, called at startup.
func (m *Manager) Load() error {
	out, err := m.runner.Output(m.bin, queryArg)
	if err != nil {
		return fmt.Errorf("failed to query power configuration: %w", err)
	}
	scheme, err := ParseScheme(string(out))
	if err != nil {
		return err
	}
	m.scheme = scheme
	m.log.Debug("loaded scheme", "guid", scheme.GUID(), "subgroups", len(scheme.SubGroups()))
	return nil
}

// Scheme returns the owned scheme, or nil before Load.
func (m *Manager) Scheme() *Scheme { return m.scheme }

// LoadFile restores setting values from a profile JSON file. Values pass
// through the validating setters; the scheme GUID must match.
func (m *Manager) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read profile: %w", err)
	}
	var rec SchemeRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("failed to decode profile %s: %w", path, err)
	}
	return m.scheme.LoadRecord(rec)
}

// ExportFile serializes the whole tree to a profile JSON file, creating
// it if absent and overwriting if present.
func (m *Manager) ExportFile(path string) error {
	buf, err := json.MarshalIndent(m.scheme.ToRecord(), "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := os.WriteFile(path, append(buf, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// AppliedCommand records one powercfg invocation issued (or planned, in
// dry-run mode) by Apply.
type AppliedCommand struct {
	Bin          string
	SubGroupGUID string
	SettingGUID  string
	Phase        string // "ac" or "dc"
	Value        int64
	Args         []string
}

// String renders the full command line for display and audit.
func (c AppliedCommand) String() string {
	out := c.Bin
	for _, a := range c.Args {
		out += " " + a
	}
	return out
}

// ApplyOptions controls Apply behavior.
type ApplyOptions struct {
	// DryRun collects the commands without running them or advancing
	// the baseline.
	DryRun bool
}

// Apply walks the tree in traversal order and issues one powercfg
// command per changed AC or DC value, then commits the baseline for each
// setting whether or not a command ran. There is no rollback: a failed
// command still advances the baseline, and the failure is surfaced in
// the returned error.
func (m *Manager) Apply(opts ApplyOptions) ([]AppliedCommand, error) {
	var issued []AppliedCommand
	var errs []error

	for _, g := range m.scheme.SubGroups() {
		for _, s := range g.Settings() {
			if s.IsACChanged() {
				cmd := m.buildCommand(setACVerb, g, s, "ac", s.ACValue(), s.ACValueHex())
				issued = append(issued, cmd)
				if !opts.DryRun {
					m.runCommand(cmd, &errs)
				}
			}
			if s.IsDCChanged() {
				cmd := m.buildCommand(setDCVerb, g, s, "dc", s.DCValue(), s.DCValueHex())
				issued = append(issued, cmd)
				if !opts.DryRun {
					m.runCommand(cmd, &errs)
				}
			}
			if !opts.DryRun {
				s.UpdateOldValues()
			}
		}
	}
	return issued, errors.Join(errs...)
}

func (m *Manager) buildCommand(verb string, g *SubGroup, s *Setting, phase string, value int64, hex string) AppliedCommand {
	return AppliedCommand{
		Bin:          m.bin,
		SubGroupGUID: g.GUID(),
		SettingGUID:  s.GUID(),
		Phase:        phase,
		Value:        value,
		Args:         []string{verb, m.scheme.GUID(), g.GUID(), s.GUID(), hex},
	}
}

func (m *Manager) runCommand(cmd AppliedCommand, errs *[]error) {
	m.log.Info("applying setting", "setting", cmd.SettingGUID, "phase", cmd.Phase, "value", cmd.Value)
	if err := m.runner.Run(m.bin, cmd.Args...); err != nil {
		m.log.Error("apply command failed", "setting", cmd.SettingGUID, "phase", cmd.Phase, "error", err)
		*errs = append(*errs, err)
	}
}
