// Package tui implements the interactive console: a two-level browser
// over the power scheme tree with inline AC/DC value editing.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/the-hwk/powercfg/internal/power"
)

// View represents the currently active screen.
type View int

const (
	ViewSubGroups View = iota
	ViewSettings
)

// Backend defines what the console needs from the rest of the tool.
// *power.Manager satisfies it.
type Backend interface {
	Scheme() *power.Scheme
	Apply(opts power.ApplyOptions) ([]power.AppliedCommand, error)
}

type subgroupItem struct {
	group *power.SubGroup
}

func (i subgroupItem) Title() string {
	if n := i.group.Name(); n != "" {
		return n
	}
	return i.group.GUID()
}

func (i subgroupItem) Description() string {
	return fmt.Sprintf("%d settings  %s", len(i.group.Settings()), i.group.GUID())
}

func (i subgroupItem) FilterValue() string {
	return i.group.Name() + " " + i.group.GUID()
}

type settingItem struct {
	setting *power.Setting
}

func (i settingItem) Title() string {
	title := i.setting.Name()
	if title == "" {
		title = i.setting.GUID()
	}
	if i.setting.IsACChanged() || i.setting.IsDCChanged() {
		title += " " + StyleStatusWarn.Render("*")
	}
	return title
}

func (i settingItem) Description() string {
	opts := i.setting.Options()
	var domain string
	if i.setting.OptionsType() == power.RangeOptions && len(opts) == 2 {
		domain = fmt.Sprintf("range %d..%d", opts[0], opts[1])
	} else {
		domain = fmt.Sprintf("list %v", opts)
	}
	return fmt.Sprintf("AC %s  DC %s  (%s)", i.setting.ACValueHex(), i.setting.DCValueHex(), domain)
}

func (i settingItem) FilterValue() string {
	return i.setting.Name() + " " + i.setting.GUID()
}

// Model is the console application state.
type Model struct {
	Backend Backend

	ActiveView View
	Width      int
	Height     int

	groups   list.Model
	settings list.Model

	editing     bool
	editPhase   string // "ac" or "dc"
	editSetting *power.Setting
	editInput   textinput.Model

	status    string
	statusBad bool
}

// NewModel creates a new initial model over an already-loaded backend.
func NewModel(backend Backend) Model {
	scheme := backend.Scheme()

	items := make([]list.Item, 0, len(scheme.SubGroups()))
	for _, g := range scheme.SubGroups() {
		items = append(items, subgroupItem{group: g})
	}

	groups := list.New(items, list.NewDefaultDelegate(), 0, 0)
	groups.Title = schemeTitle(scheme)
	groups.SetShowHelp(false)

	settings := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	settings.SetShowHelp(false)

	input := textinput.New()
	input.Prompt = StylePrompt.Render("> ")
	input.CharLimit = 12

	return Model{
		Backend:    backend,
		ActiveView: ViewSubGroups,
		groups:     groups,
		settings:   settings,
		editInput:  input,
	}
}

func schemeTitle(s *power.Scheme) string {
	if n := s.Name(); n != "" {
		return n
	}
	return s.GUID()
}

// Init initializes the application.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		// Leave room for the header and status lines.
		m.groups.SetSize(msg.Width-2, msg.Height-4)
		m.settings.SetSize(msg.Width-2, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if m.ActiveView == ViewSubGroups {
				return m.enterSubGroup(), nil
			}
		case "esc":
			if m.ActiveView == ViewSettings {
				m.ActiveView = ViewSubGroups
				return m, nil
			}
		case "a", "d":
			if m.ActiveView == ViewSettings {
				return m.startEditing(msg.String()), nil
			}
		case "p":
			return m.applyChanges(), nil
		}
	}

	var cmd tea.Cmd
	switch m.ActiveView {
	case ViewSubGroups:
		m.groups, cmd = m.groups.Update(msg)
	case ViewSettings:
		m.settings, cmd = m.settings.Update(msg)
	}
	return m, cmd
}

func (m Model) enterSubGroup() Model {
	item, ok := m.groups.SelectedItem().(subgroupItem)
	if !ok {
		return m
	}
	items := make([]list.Item, 0, len(item.group.Settings()))
	for _, s := range item.group.Settings() {
		items = append(items, settingItem{setting: s})
	}
	m.settings.SetItems(items)
	m.settings.Title = item.Title()
	m.settings.ResetSelected()
	m.ActiveView = ViewSettings
	return m
}

func (m Model) startEditing(key string) Model {
	item, ok := m.settings.SelectedItem().(settingItem)
	if !ok {
		return m
	}
	m.editing = true
	m.editSetting = item.setting
	if key == "a" {
		m.editPhase = "ac"
		m.editInput.SetValue(strconv.FormatInt(item.setting.ACValue(), 10))
	} else {
		m.editPhase = "dc"
		m.editInput.SetValue(strconv.FormatInt(item.setting.DCValue(), 10))
	}
	m.editInput.Focus()
	m.status = ""
	return m
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.editInput.Blur()
		return m, nil
	case "enter":
		return m.commitEdit(), nil
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

func (m Model) commitEdit() Model {
	raw := strings.TrimSpace(m.editInput.Value())
	v, err := strconv.ParseInt(raw, 0, 64)
	if err != nil {
		m.status = fmt.Sprintf("not a number: %q", raw)
		m.statusBad = true
		return m
	}

	if m.editPhase == "ac" {
		err = m.editSetting.SetACValue(v)
	} else {
		err = m.editSetting.SetDCValue(v)
	}
	if err != nil {
		m.status = err.Error()
		m.statusBad = true
		return m
	}

	m.editing = false
	m.editInput.Blur()
	m.status = fmt.Sprintf("%s %s set to %d (pending)", m.editSetting.Name(), strings.ToUpper(m.editPhase), v)
	m.statusBad = false
	return m
}

func (m Model) applyChanges() Model {
	cmds, err := m.Backend.Apply(power.ApplyOptions{})
	if err != nil {
		m.status = fmt.Sprintf("apply finished with errors: %v", err)
		m.statusBad = true
		return m
	}
	m.status = fmt.Sprintf("applied %d command(s)", len(cmds))
	m.statusBad = false
	return m
}

func (m Model) pendingCount() int {
	n := 0
	for _, g := range m.Backend.Scheme().SubGroups() {
		for _, s := range g.Settings() {
			if s.IsACChanged() {
				n++
			}
			if s.IsDCChanged() {
				n++
			}
		}
	}
	return n
}

// View renders the application.
func (m Model) View() string {
	var body string
	switch m.ActiveView {
	case ViewSubGroups:
		body = m.groups.View()
	case ViewSettings:
		body = m.settings.View()
	}

	header := StyleTitle.Render("POWERPROF") + "  " +
		StyleSubtitle.Render(fmt.Sprintf("%d pending change(s)", m.pendingCount()))

	var footer string
	switch {
	case m.editing:
		footer = fmt.Sprintf("new %s value for %s %s  %s",
			strings.ToUpper(m.editPhase), m.editSetting.Name(), m.editInput.View(),
			StyleHelp.Render("[enter] save  [esc] cancel"))
	case m.ActiveView == ViewSettings:
		footer = StyleHelp.Render("[a] edit AC  [d] edit DC  [p] apply  [esc] back  [q] quit")
	default:
		footer = StyleHelp.Render("[enter] open  [p] apply  [q] quit")
	}

	status := m.status
	if status != "" {
		if m.statusBad {
			status = StyleStatusBad.Render(status)
		} else {
			status = StyleStatusGood.Render(status)
		}
	}

	return StyleApp.Render(lipgloss.JoinVertical(lipgloss.Left, header, body, status, footer))
}
