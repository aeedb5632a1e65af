package viz

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/dotsprite/internal/config"
)

type Category int

const (
	CategoryAgent Category = iota
	CategoryModel
)

// Setting is one row of the settings panel. The value cycles through Options.
type Setting struct {
	Key      string
	Label    string
	Options  []string
	Category Category
}

type AgentChangedMsg struct{ Agent string }

type ModelChangedMsg struct{ Model string }

// SettingsClosedMsg carries every change made while the panel was open,
// keyed by setting key.
type SettingsClosedMsg struct {
	AgentChanges map[string]string
	ModelChanges map[string]string
}

// Settings is the agent/model selection panel.
type Settings struct {
	settings     []Setting
	current      map[string]string
	selected     int
	agentChanges map[string]string
	modelChanges map[string]string
	theme        Theme
}

func NewSettings(cfg *config.Config, th Theme) *Settings {
	return &Settings{
		settings: []Setting{
			{Key: "agent", Label: "Agent", Options: sortedCopy(cfg.AgentLabels()), Category: CategoryAgent},
			{Key: "active_model", Label: "Model", Options: cfg.Settings.Models, Category: CategoryModel},
		},
		current: map[string]string{
			"agent":        cfg.ActiveAgentLabel(),
			"active_model": cfg.Settings.ActiveModel,
		},
		agentChanges: make(map[string]string),
		modelChanges: make(map[string]string),
		theme:        th,
	}
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

func (s *Settings) Selected() int { return s.selected }

// Value is the displayed value of setting i: a pending change if any, else
// the configured value.
func (s *Settings) Value(i int) string {
	key := s.settings[i].Key
	if v, ok := s.agentChanges[key]; ok {
		return v
	}
	if v, ok := s.modelChanges[key]; ok {
		return v
	}
	return s.current[key]
}

func (s *Settings) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k":
		s.selected = (s.selected - 1 + len(s.settings)) % len(s.settings)
	case "down", "j":
		s.selected = (s.selected + 1) % len(s.settings)
	case " ", "enter":
		return s.toggle()
	case "esc":
		agent, model := copyMap(s.agentChanges), copyMap(s.modelChanges)
		return func() tea.Msg {
			return SettingsClosedMsg{AgentChanges: agent, ModelChanges: model}
		}
	}
	return nil
}

// toggle moves the selected setting to its next option. A value missing from
// the options restarts at the first option.
func (s *Settings) toggle() tea.Cmd {
	setting := s.settings[s.selected]
	current := s.Value(s.selected)

	next := current
	if len(setting.Options) > 0 {
		next = setting.Options[0]
		for i, opt := range setting.Options {
			if opt == current {
				next = setting.Options[(i+1)%len(setting.Options)]
				break
			}
		}
	}

	if setting.Category == CategoryAgent {
		s.agentChanges[setting.Key] = next
		return func() tea.Msg { return AgentChangedMsg{Agent: next} }
	}
	s.modelChanges[setting.Key] = next
	return func() tea.Msg { return ModelChangedMsg{Model: next} }
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Settings) View() string {
	title := titleBase.Foreground(s.theme.Secondary).Render("Agent & Model Settings")
	on := lipgloss.NewStyle().Foreground(s.theme.Text).Bold(true)
	off := lipgloss.NewStyle().Foreground(s.theme.Muted)

	var b strings.Builder
	b.WriteString(title + "\n\n")
	for i, setting := range s.settings {
		cursor, style := "  ", off
		if i == s.selected {
			cursor, style = "› ", on
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s: %s", cursor, setting.Label, s.Value(i))) + "\n")
	}
	b.WriteString("\n" + KeyHint(s.theme, "↑↓", "navigate", "space/enter", "toggle", "esc", "exit"))
	return panelBase.BorderForeground(s.theme.Muted).Render(b.String())
}

func (s *Settings) SetTheme(th Theme) { s.theme = th }
