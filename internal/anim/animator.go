package anim

import (
	"github.com/san-kum/dotsprite/internal/grid"
)

// Phase is the animator's lifecycle state.
type Phase int

const (
	Running Phase = iota
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Table is a cyclic sequence of deltas. Applying every delta in order to the
// sprite's initial pose must give back the initial pose.
type Table []grid.Delta

// Animator steps a grid through a Table, one delta per tick.
type Animator struct {
	dots     *grid.State
	table    Table
	cursor   int
	phase    Phase
	freezeRq bool
}

// New returns an animator over a copy of initial. With animate false the
// animator starts Stopped and never mutates its grid. An empty table also
// yields a Stopped animator.
func New(initial []grid.Coord, table Table, animate bool) *Animator {
	a := &Animator{
		dots:  grid.NewState(initial...),
		table: table,
		phase: Running,
	}
	if !animate || len(table) == 0 {
		a.phase = Stopped
	}
	return a
}

// Tick advances the animation by one step and reports whether the grid
// changed. A pending freeze takes effect only when the cursor is back at 0,
// so the sprite always rests on its initial pose.
func (a *Animator) Tick() bool {
	if a.phase == Stopped {
		return false
	}
	if a.freezeRq && a.cursor == 0 {
		a.phase = Stopped
		return false
	}
	a.dots.Apply(a.table[a.cursor])
	a.cursor = (a.cursor + 1) % len(a.table)
	return true
}

// RequestFreeze asks the animator to stop at the next loop boundary.
func (a *Animator) RequestFreeze() {
	a.freezeRq = true
}

func (a *Animator) FreezeRequested() bool { return a.freezeRq }
func (a *Animator) Phase() Phase          { return a.phase }
func (a *Animator) Running() bool         { return a.phase == Running }
func (a *Animator) Cursor() int           { return a.cursor }
func (a *Animator) Len() int              { return len(a.table) }

// Snapshot returns the lit dots in row-major order.
func (a *Animator) Snapshot() []grid.Coord {
	return a.dots.Snapshot()
}

// Lit reports the number of lit dots.
func (a *Animator) Lit() int {
	return a.dots.Len()
}
