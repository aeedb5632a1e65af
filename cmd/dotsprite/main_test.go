package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/dotsprite/internal/anim"
	"github.com/san-kum/dotsprite/internal/grid"
	"github.com/san-kum/dotsprite/internal/sprite"
	"github.com/san-kum/dotsprite/internal/storage"
)

// command builds a fresh command tree, which also resets every flag variable,
// and parses args against the subcommand they name.
func command(t *testing.T, args ...string) (*cobra.Command, []string) {
	t.Helper()
	root := newRootCmd()
	cmd, rest, err := root.Find(args)
	if err != nil {
		t.Fatalf("find %v: %v", args, err)
	}
	if err := cmd.ParseFlags(rest); err != nil {
		t.Fatalf("parse %v: %v", rest, err)
	}
	return cmd, cmd.Flags().Args()
}

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func wink(t *testing.T) *sprite.Sprite {
	t.Helper()
	dot := []grid.Coord{grid.C(0, 0)}
	s, err := sprite.New("wink", 2, 4, 0, nil, anim.Table{{Add: dot}, {Remove: dot}})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestLoadConfig_Precedence(t *testing.T) {
	themeOnly := writeFile(t, "theme.yaml", "theme: retro\n")
	withPeriod := writeFile(t, "period.yaml", "period_ms: 90\n")

	tests := []struct {
		name       string
		args       []string
		wantPeriod int
		wantTheme  string
		wantSprite string
		periodSet  bool
	}{
		{"defaults", []string{"render"}, 160, "cyberpunk", "chat", false},
		{"preset", []string{"render", "--preset", "calm"}, 320, "ocean", "chat", true},
		{"file over preset keeps preset fields", []string{"render", "--preset", "calm", "--config", themeOnly}, 320, "retro", "chat", true},
		{"flag over file and preset", []string{"render", "--preset", "calm", "--config", themeOnly, "--period", "50"}, 50, "retro", "chat", true},
		{"file without period", []string{"render", "--config", themeOnly}, 160, "retro", "chat", false},
		{"file period", []string{"render", "--config", withPeriod}, 90, "cyberpunk", "chat", true},
		{"root theme flag over file", []string{"--config", themeOnly, "--theme", "sunset"}, 160, "sunset", "chat", false},
		{"sprite argument over preset", []string{"render", "--preset", "spinner", "blink"}, 80, "retro", "blink", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := command(t, tt.args...)
			cfg, periodSet, err := loadConfig(cmd, args)
			if err != nil {
				t.Fatalf("loadConfig() error = %v", err)
			}
			if cfg.PeriodMS != tt.wantPeriod {
				t.Errorf("PeriodMS = %d, want %d", cfg.PeriodMS, tt.wantPeriod)
			}
			if cfg.Theme != tt.wantTheme {
				t.Errorf("Theme = %s, want %s", cfg.Theme, tt.wantTheme)
			}
			if cfg.Sprite != tt.wantSprite {
				t.Errorf("Sprite = %s, want %s", cfg.Sprite, tt.wantSprite)
			}
			if periodSet != tt.periodSet {
				t.Errorf("periodSet = %v, want %v", periodSet, tt.periodSet)
			}
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	bad := writeFile(t, "bad.yaml", "period_ms: -1\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown preset", []string{"render", "--preset", "nope"}, "unknown preset"},
		{"invalid file", []string{"render", "--config", bad}, "failed to load config"},
		{"negative freeze flag", []string{"render", "--freeze-after", "-3"}, "freeze_after"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := command(t, tt.args...)
			if _, _, err := loadConfig(cmd, args); err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("loadConfig() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestResolve_SpritePeriod(t *testing.T) {
	themeOnly := writeFile(t, "theme.yaml", "theme: retro\n")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"own period", []string{"render", "orbit"}, 80},
		{"own period with file that leaves it unset", []string{"render", "--config", themeOnly, "orbit"}, 80},
		{"explicit flag", []string{"render", "--period", "200", "orbit"}, 200},
		{"preset", []string{"render", "--preset", "calm", "orbit"}, 320},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := command(t, tt.args...)
			cfg, s, err := resolve(cmd, args)
			if err != nil {
				t.Fatalf("resolve() error = %v", err)
			}
			if s.Name != "orbit" {
				t.Errorf("sprite = %s, want orbit", s.Name)
			}
			if cfg.PeriodMS != tt.want {
				t.Errorf("PeriodMS = %d, want %d", cfg.PeriodMS, tt.want)
			}
		})
	}
}

func TestResolve_InstalledSprite(t *testing.T) {
	dir := t.TempDir()
	if err := storage.New(dir).Save(wink(t), "wink.yaml"); err != nil {
		t.Fatal(err)
	}

	cmd, args := command(t, "render", "--data", dir, "wink")
	_, s, err := resolve(cmd, args)
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}
	if s.Name != "wink" || len(s.Table) != 2 {
		t.Errorf("resolved %s with %d transitions", s.Name, len(s.Table))
	}

	cmd, args = command(t, "render", "--data", dir, "missing")
	if _, _, err := resolve(cmd, args); !errors.Is(err, sprite.ErrUnknownSprite) {
		t.Errorf("expected ErrUnknownSprite, got %v", err)
	}
}

func TestResolve_SpriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wink.yaml")
	if err := sprite.Save(path, wink(t)); err != nil {
		t.Fatal(err)
	}

	cmd, args := command(t, "render", "--file", path)
	_, s, err := resolve(cmd, args)
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}
	if s.Name != "wink" {
		t.Errorf("sprite = %s, want wink", s.Name)
	}
}

func TestInstall(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(t.TempDir(), "wink.yaml")
	if err := sprite.Save(custom, wink(t)); err != nil {
		t.Fatal(err)
	}
	blink, err := sprite.Get("blink")
	if err != nil {
		t.Fatal(err)
	}
	reserved := filepath.Join(t.TempDir(), "blink.yaml")
	if err := sprite.Save(reserved, blink); err != nil {
		t.Fatal(err)
	}

	run := func(args ...string) error {
		root := newRootCmd()
		root.SetArgs(args)
		root.SetOut(io.Discard)
		root.SetErr(io.Discard)
		return execute(root)
	}

	if err := run("install", "--data", dir, reserved); err == nil || !strings.Contains(err.Error(), "bundled") {
		t.Errorf("install of bundled name: error = %v", err)
	}
	if err := run("install", "--data", dir, custom); err != nil {
		t.Fatalf("install failed: %v", err)
	}

	list, err := storage.New(dir).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "wink" {
		t.Errorf("library = %+v, want only wink", list)
	}

	if err := run("uninstall", "--data", dir, "wink"); err != nil {
		t.Fatalf("uninstall failed: %v", err)
	}
	if err := run("uninstall", "--data", dir, "wink"); !errors.Is(err, storage.ErrNotInstalled) {
		t.Errorf("second uninstall: error = %v", err)
	}
}

func TestExecute_ClosesLogOnFailure(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debug.log")

	root := newRootCmd()
	root.SetArgs([]string{"render", "--log", logPath, "no-such-sprite"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := execute(root); err == nil {
		t.Fatal("expected an error for an unknown sprite")
	}
	if logCloser != nil {
		t.Error("log file left open after a failed command")
	}
	if _, err := os.Stat(logPath); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestPopulation(t *testing.T) {
	dir := t.TempDir()
	if err := storage.New(dir).Save(wink(t), "wink.yaml"); err != nil {
		t.Fatal(err)
	}
	// a hand-edited table shows the chart reads the stored copy
	csv := "pose,lit\n0,0\n1,1\n2,0\n3,7\n"
	if err := os.WriteFile(filepath.Join(dir, "wink", "population.csv"), []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}

	command(t, "inspect", "--data", dir)

	counts, caption, meta := population(wink(t))
	if meta == nil || meta.Source != "wink.yaml" {
		t.Fatalf("metadata = %+v, want source wink.yaml", meta)
	}
	if len(counts) != 4 || counts[3] != 7 {
		t.Errorf("counts = %v, want the stored table", counts)
	}
	if !strings.Contains(caption, "installed") {
		t.Errorf("caption = %q", caption)
	}

	blink, err := sprite.Get("blink")
	if err != nil {
		t.Fatal(err)
	}
	counts, _, meta = population(blink)
	if meta != nil || len(counts) != 3 || counts[1] != 4 {
		t.Errorf("bundled population = %v, %+v", counts, meta)
	}
}

func TestExportSVG_SinglePose(t *testing.T) {
	out := filepath.Join(t.TempDir(), "blink.svg")

	root := newRootCmd()
	root.SetArgs([]string{"export-svg", "--frame", "1", "blink", out})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := execute(root); err != nil {
		t.Fatalf("export-svg failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "<circle"); n != 4 {
		t.Errorf("expected 4 dots in pose 1, got %d", n)
	}
}
