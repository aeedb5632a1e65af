package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSprite   = "chat"
	DefaultPeriodMS = 160
	DefaultTheme    = "cyberpunk"
)

var (
	ErrBadPeriod   = errors.New("config: period_ms must be positive")
	ErrFreezeAfter = errors.New("config: freeze_after must not be negative")
)

type Config struct {
	Sprite      string         `yaml:"sprite"`
	SpriteFile  string         `yaml:"sprite_file,omitempty"`
	PeriodMS    int            `yaml:"period_ms"`
	Animate     bool           `yaml:"animate"`
	Theme       string         `yaml:"theme"`
	Gradient    bool           `yaml:"gradient"`
	FreezeAfter int            `yaml:"freeze_after,omitempty"`
	Settings    SettingsConfig `yaml:"settings"`
}

// SettingsConfig feeds the agent/model settings panel.
type SettingsConfig struct {
	Agents      []AgentConfig `yaml:"agents"`
	Models      []string      `yaml:"models"`
	ActiveAgent string        `yaml:"active_agent"`
	ActiveModel string        `yaml:"active_model"`
}

type AgentConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Label is how an agent appears in the settings panel.
func (a AgentConfig) Label() string {
	return fmt.Sprintf("%s - %s", a.Name, a.Description)
}

func DefaultConfig() *Config {
	return &Config{
		Sprite:   DefaultSprite,
		PeriodMS: DefaultPeriodMS,
		Animate:  true,
		Theme:    DefaultTheme,
		Gradient: true,
		Settings: SettingsConfig{
			Agents: []AgentConfig{
				{Name: "default", Description: "asks before editing files"},
				{Name: "plan", Description: "read-only exploration"},
				{Name: "auto", Description: "edits without confirmation"},
			},
			Models:      []string{"devstral-medium", "devstral-small", "local"},
			ActiveAgent: "default",
			ActiveModel: "devstral-medium",
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadInto(path, DefaultConfig())
}

// LoadInto reads path over a copy of base, so fields missing from the file
// keep base's values. base itself is left untouched.
func LoadInto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// FileKeys reports which top-level keys a config file sets.
func FileKeys(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	keys := make(map[string]bool, len(raw))
	for k := range raw {
		keys[k] = true
	}
	return keys, nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Settings.Agents = append([]AgentConfig(nil), c.Settings.Agents...)
	cp.Settings.Models = append([]string(nil), c.Settings.Models...)
	return &cp
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.PeriodMS <= 0 {
		return ErrBadPeriod
	}
	if c.FreezeAfter < 0 {
		return ErrFreezeAfter
	}
	return nil
}

func (c *Config) Period() time.Duration {
	return time.Duration(c.PeriodMS) * time.Millisecond
}

// AgentLabels lists the panel labels of every configured agent.
func (c *Config) AgentLabels() []string {
	labels := make([]string, len(c.Settings.Agents))
	for i, a := range c.Settings.Agents {
		labels[i] = a.Label()
	}
	return labels
}

// ActiveAgentLabel returns the label of the active agent, or the bare name if
// it is not configured.
func (c *Config) ActiveAgentLabel() string {
	for _, a := range c.Settings.Agents {
		if a.Name == c.Settings.ActiveAgent {
			return a.Label()
		}
	}
	return c.Settings.ActiveAgent
}
