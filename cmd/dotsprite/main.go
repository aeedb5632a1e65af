package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/dotsprite/internal/braille"
	"github.com/san-kum/dotsprite/internal/config"
	"github.com/san-kum/dotsprite/internal/export"
	"github.com/san-kum/dotsprite/internal/sprite"
	"github.com/san-kum/dotsprite/internal/storage"
	"github.com/san-kum/dotsprite/internal/tui"
	"github.com/san-kum/dotsprite/internal/viz"
)

var (
	// Global
	dataDir    string
	configFile string
	logFile    string
	preset     string
	// Playback
	spriteFile  string
	period      int
	animate     bool
	freezeAfter int
	theme       string
	gradient    bool
	noANSI      bool
	// Output
	frame     int
	filmstrip bool
	scale     float64

	logCloser io.Closer
)

// main runs the dotsprite CLI and exits with status 1 if a command fails.
func main() {
	if err := execute(newRootCmd()); err != nil {
		os.Exit(1)
	}
}

// execute runs the command tree and closes the log file whether or not the
// command failed.
func execute(root *cobra.Command) error {
	err := root.Execute()
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
		log.SetOutput(io.Discard)
	}
	return err
}

// newRootCmd registers the dotsprite commands and flags. The root command runs
// the interactive banner when no subcommand is given.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "dotsprite [sprite]",
		Short:             "braille sprite animator",
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: setupLogging,
		RunE:              runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".dotsprite", "installed sprite directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logFile, "log", "", "write debug log to file")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&spriteFile, "file", "", "load sprite from a yaml asset")
	pf.IntVar(&period, "period", config.DefaultPeriodMS, "frame period in milliseconds")
	pf.BoolVar(&animate, "animate", true, "animate the sprite")
	pf.IntVar(&freezeAfter, "freeze-after", 0, "request a freeze after n ticks (0 = never)")

	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "colour theme")
	rootCmd.Flags().BoolVar(&gradient, "gradient", true, "colour the sprite with the theme gradient")

	playCmd := &cobra.Command{
		Use:   "play [sprite]",
		Short: "play a sprite on stdout; ctrl+c freezes, twice quits",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}
	playCmd.Flags().BoolVar(&noANSI, "no-ansi", false, "append frames instead of redrawing in place")

	renderCmd := &cobra.Command{
		Use:   "render [sprite]",
		Short: "print one pose",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&frame, "frame", 0, "pose index (0 = initial)")

	inspectCmd := &cobra.Command{
		Use:   "inspect [sprite]",
		Short: "validate a sprite and chart its population",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInspect,
	}

	validateCmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "validate yaml sprite assets",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runValidate,
	}

	exportYAMLCmd := &cobra.Command{
		Use:   "export-yaml [sprite] <path>",
		Short: "write a sprite as a yaml asset (- for stdout)",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runExportYAML,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [sprite] <path>",
		Short: "write a pose or the whole loop as svg (- for stdout)",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runExportSVG,
	}
	exportSVGCmd.Flags().BoolVar(&filmstrip, "filmstrip", false, "draw every pose of the loop")
	exportSVGCmd.Flags().IntVar(&frame, "frame", 0, "pose index (0 = initial)")
	exportSVGCmd.Flags().Float64Var(&scale, "scale", 8, "pixels per dot")

	installCmd := &cobra.Command{
		Use:   "install <file>...",
		Short: "validate yaml assets and add them to the sprite library",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runInstall,
	}

	uninstallCmd := &cobra.Command{
		Use:   "uninstall <name>...",
		Short: "remove sprites from the library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			for _, name := range args {
				if err := st.Remove(name); err != nil {
					return err
				}
				fmt.Printf("removed %s\n", name)
			}
			return nil
		},
	}

	spritesCmd := &cobra.Command{
		Use:   "sprites",
		Short: "list bundled and installed sprites",
		RunE:  listSprites,
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list colour themes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range viz.ThemeNames() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSPRITE\tPERIOD\tANIMATE\tTHEME")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%v\t%v\t%s\n", name, p.Sprite, p.Period(), p.Animate, p.Theme)
			}
			w.Flush()
		},
	}

	rootCmd.AddCommand(playCmd, renderCmd, inspectCmd, validateCmd, exportYAMLCmd, exportSVGCmd, installCmd, uninstallCmd, spritesCmd, themesCmd, presetsCmd)
	return rootCmd
}

func setupLogging(cmd *cobra.Command, args []string) error {
	if logFile == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := tea.LogToFile(logFile, "dotsprite")
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	logCloser = f
	return nil
}

// loadConfig layers preset, config file and explicitly set flags, in that
// order, over the defaults. periodSet reports whether any layer chose the
// period; otherwise the sprite's own period applies.
func loadConfig(cmd *cobra.Command, args []string) (cfg *config.Config, periodSet bool, err error) {
	cfg = config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, false, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		periodSet = true
	}

	if configFile != "" {
		cfg, err = config.LoadInto(configFile, cfg)
		if err != nil {
			return nil, false, fmt.Errorf("failed to load config: %w", err)
		}
		keys, kerr := config.FileKeys(configFile)
		if kerr != nil {
			return nil, false, fmt.Errorf("failed to load config: %w", kerr)
		}
		if keys["period_ms"] {
			periodSet = true
		}
		log.Printf("config %s loaded", configFile)
	}

	flags := cmd.Flags()
	if len(args) > 0 {
		cfg.Sprite = args[0]
		cfg.SpriteFile = ""
	}
	if flags.Changed("file") {
		cfg.SpriteFile = spriteFile
	}
	if flags.Changed("period") {
		cfg.PeriodMS = period
		periodSet = true
	}
	if flags.Changed("animate") {
		cfg.Animate = animate
	}
	if flags.Changed("freeze-after") {
		cfg.FreezeAfter = freezeAfter
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Lookup("gradient") != nil && flags.Changed("gradient") {
		cfg.Gradient = gradient
	}

	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return cfg, periodSet, nil
}

func loadSprite(cfg *config.Config) (*sprite.Sprite, error) {
	var (
		s   *sprite.Sprite
		err error
	)
	if cfg.SpriteFile != "" {
		s, err = sprite.Load(cfg.SpriteFile)
	} else {
		s, err = sprite.Get(cfg.Sprite)
		if errors.Is(err, sprite.ErrUnknownSprite) {
			installed, ierr := storage.New(dataDir).Sprite(cfg.Sprite)
			if ierr == nil {
				s, err = installed, nil
			} else if !errors.Is(ierr, storage.ErrNotInstalled) {
				err = ierr
			}
		}
	}
	if err != nil {
		return nil, err
	}
	log.Printf("sprite %s: %dx%d, %d transitions", s.Name, s.Width, s.Height, len(s.Table))
	return s, nil
}

func resolve(cmd *cobra.Command, args []string) (*config.Config, *sprite.Sprite, error) {
	cfg, periodSet, err := loadConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	s, err := loadSprite(cfg)
	if err != nil {
		return nil, nil, err
	}
	if !periodSet {
		cfg.PeriodMS = int(s.Period / time.Millisecond)
	}
	return cfg, s, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, s, err := resolve(cmd, args)
	if err != nil {
		return err
	}
	return viz.Run(cfg, s)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, s, err := resolve(cmd, args)
	if err != nil {
		return err
	}

	p := tui.NewPlayer(os.Stdout, s, tui.Options{
		Period:      cfg.Period(),
		Animate:     cfg.Animate,
		FreezeAfter: cfg.FreezeAfter,
		ANSI:        !noANSI,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sig := make(chan os.Signal, 2)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)
	go func() {
		// First interrupt lets the loop finish, the second one abandons it.
		for n := 0; ; n++ {
			select {
			case <-ctx.Done():
				return
			case <-sig:
				if n == 0 {
					log.Printf("play: freeze requested")
					p.Freeze()
					continue
				}
				cancel()
				return
			}
		}
	}()

	err = p.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runRender(cmd *cobra.Command, args []string) error {
	_, s, err := resolve(cmd, args)
	if err != nil {
		return err
	}
	fmt.Println(braille.Render(s.Pose(frame), s.Width, s.Height))
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	_, s, err := resolve(cmd, args)
	if err != nil {
		return err
	}

	status := "ok"
	if verr := s.Validate(); verr != nil {
		status = verr.Error()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "sprite\t%s\n", s.Name)
	fmt.Fprintf(w, "grid\t%dx%d dots\n", s.Width, s.Height)
	rows, cols := braille.CellDims(s.Width, s.Height)
	fmt.Fprintf(w, "cells\t%dx%d\n", cols, rows)
	fmt.Fprintf(w, "transitions\t%d (%d holds)\n", len(s.Table), s.Holds())
	fmt.Fprintf(w, "period\t%v\n", s.Period)
	fmt.Fprintf(w, "loop\t%v\n", s.LoopDuration())
	fmt.Fprintf(w, "validation\t%s\n", status)

	counts, caption, meta := population(s)
	if meta != nil {
		fmt.Fprintf(w, "installed\t%s from %s\n", meta.Installed.Format("2006-01-02 15:04"), meta.Source)
	}
	w.Flush()

	fmt.Println()
	fmt.Println(braille.Render(s.Pose(0), s.Width, s.Height))
	fmt.Println()
	fmt.Println(viz.PopulationChart(counts, caption))
	return nil
}

// population returns the lit counts to chart for s. Installed sprites use the
// table stored at install time and also return their metadata.
func population(s *sprite.Sprite) ([]int, string, *storage.SpriteMetadata) {
	counts, caption := s.Population(), "lit dots per pose"
	if _, err := sprite.Get(s.Name); err == nil {
		return counts, caption, nil
	}
	st := storage.New(dataDir)
	meta, err := st.Load(s.Name)
	if err != nil {
		return counts, caption, nil
	}
	if stored, err := st.LoadPopulation(s.Name); err == nil {
		counts, caption = stored, "lit dots per pose (installed)"
	}
	return counts, caption, meta
}

func runValidate(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		s, err := sprite.Load(path)
		if err != nil {
			fmt.Printf("FAIL  %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("ok    %s: %s, %d transitions\n", path, s.Name, len(s.Table))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d assets invalid", failed, len(args))
	}
	return nil
}

// splitTarget separates the optional sprite argument from the output path.
func splitTarget(args []string) ([]string, string) {
	return args[:len(args)-1], args[len(args)-1]
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func runExportYAML(cmd *cobra.Command, args []string) error {
	spriteArgs, path := splitTarget(args)
	_, s, err := resolve(cmd, spriteArgs)
	if err != nil {
		return err
	}
	data, err := sprite.Encode(s)
	if err != nil {
		return err
	}
	return writeOutput(path, data)
}

func runExportSVG(cmd *cobra.Command, args []string) error {
	spriteArgs, path := splitTarget(args)
	_, s, err := resolve(cmd, spriteArgs)
	if err != nil {
		return err
	}
	var svg string
	if filmstrip {
		svg = export.FramesToSVG(s.Poses(), s.Width, s.Height, scale)
	} else {
		svg = export.CanvasToSVG(braille.Draw(s.Pose(frame), s.Width, s.Height), scale)
	}
	return writeOutput(path, []byte(svg))
}

func runInstall(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	for _, path := range args {
		s, err := sprite.Load(path)
		if err != nil {
			return err
		}
		if _, err := sprite.Get(s.Name); err == nil {
			return fmt.Errorf("%s: name %q is taken by a bundled sprite", path, s.Name)
		}
		if err := st.Save(s, path); err != nil {
			return err
		}
		log.Printf("installed %s from %s into %s", s.Name, path, st.Dir())
		fmt.Printf("installed %s\n", s.Name)
	}
	return nil
}

func listSprites(cmd *cobra.Command, args []string) error {
	installed, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tTRANSITIONS\tPERIOD\tSOURCE")
	for _, name := range sprite.Names() {
		s, err := sprite.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%v\tbundled\n", s.Name, s.Width, s.Height, len(s.Table), s.Period)
	}
	for _, m := range installed {
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%v\t%s\n", m.Name, m.Width, m.Height, m.Transitions,
			time.Duration(m.PeriodMS)*time.Millisecond, m.Installed.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
