package viz

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/dotsprite/internal/anim"
	"github.com/san-kum/dotsprite/internal/braille"
	"github.com/san-kum/dotsprite/internal/sprite"
)

var lastBannerID int64

// TickMsg drives one banner. Ticks whose ID or Seq do not match the banner's
// current chain are dropped.
type TickMsg struct {
	ID   int
	Seq  int
	Time time.Time
}

// FreezeMsg asks a banner to come to rest at the end of its loop. ID 0
// addresses every banner.
type FreezeMsg struct{ ID int }

// StoppedMsg is emitted once when a banner's animator stops.
type StoppedMsg struct {
	ID     int
	Sprite string
}

type BannerOptions struct {
	Period      time.Duration
	Animate     bool
	Theme       Theme
	Gradient    bool
	FreezeAfter int // request a freeze after this many ticks, 0 disables
}

// Banner shows one animated sprite. It owns the animator and its tick chain:
// at most one tea.Tick is outstanding, and none once the animator has
// stopped or the banner is closed.
type Banner struct {
	id     int
	seq    int
	sprite *sprite.Sprite
	anim   *anim.Animator
	opts   BannerOptions
	frame  string
	ticks  int
	closed bool
}

func NewBanner(s *sprite.Sprite, opts BannerOptions) *Banner {
	if opts.Period <= 0 {
		opts.Period = s.Period
	}
	b := &Banner{
		id:     int(atomic.AddInt64(&lastBannerID, 1)),
		sprite: s,
		anim:   s.Animator(opts.Animate),
		opts:   opts,
	}
	b.redraw()
	return b
}

func (b *Banner) ID() int { return b.id }

// Init starts the tick chain when the banner animates.
func (b *Banner) Init() tea.Cmd {
	if b.closed || !b.anim.Running() {
		return nil
	}
	return b.tick()
}

func (b *Banner) tick() tea.Cmd {
	id, seq := b.id, b.seq
	return tea.Tick(b.opts.Period, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Seq: seq, Time: t}
	})
}

func (b *Banner) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TickMsg:
		if b.closed || !b.anim.Running() || msg.ID != b.id || msg.Seq != b.seq {
			return nil
		}
		return b.step()
	case FreezeMsg:
		if msg.ID == 0 || msg.ID == b.id {
			b.anim.RequestFreeze()
		}
	}
	return nil
}

func (b *Banner) step() tea.Cmd {
	if b.anim.Tick() {
		b.redraw()
	}
	if !b.anim.Running() {
		id, name := b.id, b.sprite.Name
		return func() tea.Msg { return StoppedMsg{ID: id, Sprite: name} }
	}
	b.ticks++
	if b.opts.FreezeAfter > 0 && b.ticks >= b.opts.FreezeAfter {
		b.anim.RequestFreeze()
	}
	b.seq++
	return b.tick()
}

// RequestFreeze forwards to the animator.
func (b *Banner) RequestFreeze() {
	b.anim.RequestFreeze()
}

// Close ends the tick chain. Pending ticks are ignored. Safe to call twice.
func (b *Banner) Close() {
	if b.closed {
		return
	}
	b.closed = true
	b.seq++
}

func (b *Banner) Closed() bool { return b.closed }

// Frozen reports whether the animation has come to rest.
func (b *Banner) Frozen() bool { return !b.anim.Running() }

func (b *Banner) FreezeRequested() bool { return b.anim.FreezeRequested() }

func (b *Banner) Cursor() int { return b.anim.Cursor() }

func (b *Banner) Sprite() *sprite.Sprite { return b.sprite }

// Frame returns the unstyled braille text of the current pose.
func (b *Banner) Frame() string { return b.frame }

func (b *Banner) SetTheme(th Theme) { b.opts.Theme = th }

func (b *Banner) Theme() Theme { return b.opts.Theme }

func (b *Banner) View() string {
	return Paint(b.frame, b.opts.Theme, b.opts.Gradient)
}

func (b *Banner) redraw() {
	b.frame = braille.Render(b.anim.Snapshot(), b.sprite.Width, b.sprite.Height)
}
