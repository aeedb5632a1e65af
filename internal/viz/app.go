package viz

import (
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/dotsprite/internal/config"
	"github.com/san-kum/dotsprite/internal/sprite"
)

// App is the interactive program: a sprite banner with an optional
// agent/model settings panel underneath.
type App struct {
	cfg          *config.Config
	banner       *Banner
	settings     *Settings
	showSettings bool
	status       string
	width        int
	height       int
}

func NewApp(cfg *config.Config, s *sprite.Sprite) App {
	th := GetTheme(cfg.Theme)
	status := "idle"
	if cfg.Animate {
		status = "playing"
	}
	return App{
		cfg: cfg,
		banner: NewBanner(s, BannerOptions{
			Period:      cfg.Period(),
			Animate:     cfg.Animate,
			Theme:       th,
			Gradient:    cfg.Gradient,
			FreezeAfter: cfg.FreezeAfter,
		}),
		settings: NewSettings(cfg, th),
		status:   status,
		width:    80,
		height:   24,
	}
}

func (m App) Init() tea.Cmd {
	log.Printf("banner %d: sprite=%s period=%v animate=%v", m.banner.ID(), m.banner.Sprite().Name, m.cfg.Period(), m.cfg.Animate)
	return m.banner.Init()
}

func (m App) Banner() *Banner { return m.banner }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case TickMsg, FreezeMsg:
		return m, m.banner.Update(msg)
	case StoppedMsg:
		m.status = "resting"
		log.Printf("banner %d: %s stopped at cursor %d", msg.ID, msg.Sprite, m.banner.Cursor())
	case AgentChangedMsg:
		m.status = "agent: " + msg.Agent
		log.Printf("agent changed: %s", msg.Agent)
	case ModelChangedMsg:
		m.status = "model: " + msg.Model
		log.Printf("model changed: %s", msg.Model)
	case SettingsClosedMsg:
		m.showSettings = false
		m.apply(msg)
	}
	return m, nil
}

func (m App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.showSettings {
		return m, m.settings.Update(msg)
	}
	switch msg.String() {
	case "q":
		return m.quit()
	case "f":
		if !m.banner.FreezeRequested() {
			log.Printf("banner %d: freeze requested at cursor %d", m.banner.ID(), m.banner.Cursor())
		}
		m.banner.RequestFreeze()
		if !m.banner.Frozen() {
			m.status = "freezing"
		}
	case "tab", "s":
		m.showSettings = true
	case "t":
		th := NextTheme(m.banner.Theme().Name)
		m.banner.SetTheme(th)
		m.settings.SetTheme(th)
		m.cfg.Theme = th.Name
	}
	return m, nil
}

func (m App) quit() (App, tea.Cmd) {
	m.banner.Close()
	log.Printf("banner %d: closed", m.banner.ID())
	return m, tea.Quit
}

// apply records the panel's changes in the configuration.
func (m *App) apply(msg SettingsClosedMsg) {
	if label, ok := msg.AgentChanges["agent"]; ok {
		for _, a := range m.cfg.Settings.Agents {
			if a.Label() == label {
				m.cfg.Settings.ActiveAgent = a.Name
			}
		}
	}
	if model, ok := msg.ModelChanges["active_model"]; ok {
		m.cfg.Settings.ActiveModel = model
	}
	log.Printf("settings closed: agent=%s model=%s", m.cfg.Settings.ActiveAgent, m.cfg.Settings.ActiveModel)
}

func (m App) View() string {
	th := m.banner.Theme()
	s := m.banner.Sprite()

	title := titleBase.Foreground(th.Primary).Render(strings.ToUpper(s.Name))
	info := lipgloss.NewStyle().Foreground(th.Muted).Render(
		fmt.Sprintf("%dx%d dots · %d transitions · %v", s.Width, s.Height, len(s.Table), m.cfg.Period()))
	agent := lipgloss.NewStyle().Foreground(th.Text).Render(m.cfg.ActiveAgentLabel())
	model := lipgloss.NewStyle().Foreground(th.Accent).Render(m.cfg.Settings.ActiveModel)
	side := lipgloss.JoinVertical(lipgloss.Left, title, info, "", agent, model)

	var b strings.Builder
	b.WriteString("\n" + lipgloss.JoinHorizontal(lipgloss.Top, m.banner.View(), "  ", side) + "\n\n")
	if m.showSettings {
		b.WriteString(m.settings.View() + "\n\n")
	}
	b.WriteString(statusBase.Foreground(th.Secondary).Render(m.status) + "\n")
	b.WriteString(KeyHint(th, "f", "freeze", "tab", "settings", "t", "theme", "q", "quit") + "\n")
	return b.String()
}

// Run starts the interactive program and blocks until it exits.
func Run(cfg *config.Config, s *sprite.Sprite) error {
	_, err := tea.NewProgram(NewApp(cfg, s), tea.WithAltScreen()).Run()
	return err
}
