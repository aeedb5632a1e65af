package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/dotsprite/internal/anim"
	"github.com/san-kum/dotsprite/internal/braille"
	"github.com/san-kum/dotsprite/internal/sprite"
)

const (
	clearScreen = "\033[2J\033[H"
	cursorHome  = "\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

type Options struct {
	Period      time.Duration
	Animate     bool
	FreezeAfter int // ticks before an automatic freeze request, 0 disables
	ANSI        bool
}

// Player draws a sprite to a plain writer, one frame per tick. All animator
// access happens on the goroutine running Run.
type Player struct {
	out    io.Writer
	sprite *sprite.Sprite
	anim   *anim.Animator
	opts   Options
	freeze chan struct{}
	ticks  int
	frames int
}

func NewPlayer(out io.Writer, s *sprite.Sprite, opts Options) *Player {
	if opts.Period <= 0 {
		opts.Period = s.Period
	}
	return &Player{
		out:    out,
		sprite: s,
		anim:   s.Animator(opts.Animate),
		opts:   opts,
		freeze: make(chan struct{}, 1),
	}
}

// Freeze asks the animation to stop at the end of its loop. Safe to call from
// any goroutine, any number of times.
func (p *Player) Freeze() {
	select {
	case p.freeze <- struct{}{}:
	default:
	}
}

// Frames reports how many frames have been written.
func (p *Player) Frames() int { return p.frames }

// Run draws the initial pose, then one frame per changed tick until the
// animator stops or ctx is done. Stopping draws a last frame with its status. The clock is always released on return.
func (p *Player) Run(ctx context.Context) error {
	if p.opts.ANSI {
		fmt.Fprint(p.out, hideCursor+clearScreen)
		defer fmt.Fprint(p.out, showCursor)
	}
	p.draw()
	if !p.anim.Running() {
		return nil
	}

	ticker := anim.NewTicker(p.opts.Period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.freeze:
			p.anim.RequestFreeze()
		case <-ticker.C():
			if p.anim.Tick() {
				p.draw()
			}
			if !p.anim.Running() {
				p.draw()
				return nil
			}
			p.ticks++
			if p.opts.FreezeAfter > 0 && p.ticks >= p.opts.FreezeAfter {
				p.anim.RequestFreeze()
			}
		}
	}
}

func (p *Player) draw() {
	var b strings.Builder
	if p.opts.ANSI && p.frames > 0 {
		b.WriteString(cursorHome)
	}
	frame := braille.Render(p.anim.Snapshot(), p.sprite.Width, p.sprite.Height)
	for _, line := range strings.Split(frame, "\n") {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	status := "running"
	switch {
	case !p.anim.Running():
		status = "stopped"
	case p.anim.FreezeRequested():
		status = "freezing"
	}
	b.WriteString(fmt.Sprintf("  %s  %d/%d  %d lit  %s\n", p.sprite.Name, p.anim.Cursor(), p.anim.Len(), p.anim.Lit(), status))
	fmt.Fprint(p.out, b.String())
	p.frames++
}
