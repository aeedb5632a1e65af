package config

import "sort"

// Presets override playback fields of the default configuration.
var Presets = map[string]*Config{
	"calm": {
		Sprite: "chat", PeriodMS: 320, Animate: true, Theme: "ocean", Gradient: true,
	},
	"lively": {
		Sprite: "chat", PeriodMS: 80, Animate: true, Theme: "sunset", Gradient: true,
	},
	"still": {
		Sprite: "chat", PeriodMS: DefaultPeriodMS, Animate: false, Theme: "minimal",
	},
	"spinner": {
		Sprite: "orbit", PeriodMS: 80, Animate: true, Theme: "retro",
	},
}

// GetPreset returns the default configuration with the named preset applied,
// or nil if there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Sprite = p.Sprite
	cfg.PeriodMS = p.PeriodMS
	cfg.Animate = p.Animate
	cfg.Theme = p.Theme
	cfg.Gradient = p.Gradient
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
