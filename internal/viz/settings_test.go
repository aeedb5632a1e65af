package viz

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/dotsprite/internal/config"
	"github.com/san-kum/dotsprite/internal/sprite"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSettings_CursorWraps(t *testing.T) {
	t.Parallel()

	s := NewSettings(config.DefaultConfig(), ThemeMinimal)
	assert.Equal(t, 0, s.Selected())
	s.Update(key("up"))
	assert.Equal(t, 1, s.Selected())
	s.Update(key("down"))
	assert.Equal(t, 0, s.Selected())
	s.Update(key("j"))
	s.Update(key("j"))
	assert.Equal(t, 0, s.Selected())
}

func TestSettings_ToggleCyclesAgent(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	s := NewSettings(cfg, ThemeMinimal)
	require.Equal(t, "default - asks before editing files", s.Value(0))

	// options are sorted: auto, default, plan
	msg := s.Update(key(" "))()
	assert.Equal(t, AgentChangedMsg{Agent: "plan - read-only exploration"}, msg)
	s.Update(key("enter"))
	assert.Equal(t, "auto - edits without confirmation", s.Value(0))
}

func TestSettings_ToggleModel(t *testing.T) {
	t.Parallel()

	s := NewSettings(config.DefaultConfig(), ThemeMinimal)
	s.Update(key("down"))
	msg := s.Update(key("enter"))()
	assert.Equal(t, ModelChangedMsg{Model: "devstral-small"}, msg)
}

func TestSettings_UnknownValueRestartsAtFirstOption(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Settings.ActiveModel = "retired-model"
	s := NewSettings(cfg, ThemeMinimal)
	s.Update(key("down"))
	s.Update(key(" "))
	assert.Equal(t, "devstral-medium", s.Value(1))
}

func TestSettings_NoOptionsKeepsValue(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Settings.Models = nil
	s := NewSettings(cfg, ThemeMinimal)
	s.Update(key("down"))
	s.Update(key(" "))
	assert.Equal(t, "devstral-medium", s.Value(1))
}

func TestSettings_CloseReportsChanges(t *testing.T) {
	t.Parallel()

	s := NewSettings(config.DefaultConfig(), ThemeMinimal)
	s.Update(key(" "))
	s.Update(key("down"))
	s.Update(key(" "))

	msg, ok := s.Update(key("esc"))().(SettingsClosedMsg)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"agent": "plan - read-only exploration"}, msg.AgentChanges)
	assert.Equal(t, map[string]string{"active_model": "devstral-small"}, msg.ModelChanges)
	assert.Contains(t, s.View(), "Agent & Model Settings")
}

func TestApp_Flow(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	sp, err := sprite.Get("blink")
	require.NoError(t, err)
	app := NewApp(cfg, sp)
	require.NotNil(t, app.Init())

	b := app.Banner()
	next, cmd := app.Update(TickMsg{ID: b.id, Seq: b.seq})
	require.NotNil(t, cmd)
	app = next.(App)
	assert.Equal(t, 1, b.Cursor())

	next, _ = app.Update(key("f"))
	app = next.(App)
	assert.True(t, b.FreezeRequested())
	assert.Equal(t, "freezing", app.status)

	next, _ = app.Update(key("tab"))
	app = next.(App)
	assert.True(t, app.showSettings)
	next, _ = app.Update(key("down"))
	app = next.(App)
	_, cmd = app.Update(key(" "))
	require.NotNil(t, cmd)
	_, cmd = app.Update(key("esc"))
	next, _ = app.Update(cmd())
	app = next.(App)
	assert.False(t, app.showSettings)
	assert.Equal(t, "devstral-small", cfg.Settings.ActiveModel)

	next, _ = app.Update(key("t"))
	app = next.(App)
	assert.Equal(t, "retro", cfg.Theme)
	assert.Contains(t, app.View(), "BLINK")

	_, cmd = app.Update(key("q"))
	require.NotNil(t, cmd)
	assert.True(t, b.Closed())
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
