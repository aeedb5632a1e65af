// Package sprite holds authored dot animations and checks them.
//
// A [Sprite] is static configuration: grid size, initial pose, transition
// table and tick period. Bundled sprites live in a registry ([Get], [Names]);
// custom ones are read from YAML assets ([Load], [Decode]).
//
// Every constructor validates the sprite once. A valid sprite has every
// coordinate inside its grid and a transition table that returns to the
// initial pose after one loop.
package sprite

import (
	"fmt"
	"strings"
	"time"

	"github.com/san-kum/dotsprite/internal/anim"
	"github.com/san-kum/dotsprite/internal/grid"
)

const (
	litDot   = '#'
	unlitDot = '.'
)

// Sprite is a looping dot animation.
type Sprite struct {
	Name    string
	Width   int
	Height  int
	Period  time.Duration
	Initial []grid.Coord
	Table   anim.Table
}

// New builds and validates a sprite.
func New(name string, width, height int, period time.Duration, initial []grid.Coord, table anim.Table) (*Sprite, error) {
	if period <= 0 {
		period = anim.DefaultPeriod
	}
	s := &Sprite{
		Name:    name,
		Width:   width,
		Height:  height,
		Period:  period,
		Initial: grid.NewState(initial...).Snapshot(),
		Table:   table,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks dimensions, bounds of every coordinate and loop closure.
func (s *Sprite) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return s.fail(WholeSprite, nil, ErrBadDimensions)
	}
	if len(s.Table) == 0 {
		return s.fail(WholeSprite, nil, ErrEmptyTable)
	}
	start := grid.NewState(s.Initial...)
	if c, ok := start.FirstOutside(s.Width, s.Height); ok {
		return s.fail(InitialFrame, &c, ErrOutOfBounds)
	}
	for i, d := range s.Table {
		for _, c := range d.Coords() {
			if !c.In(s.Width, s.Height) {
				return s.fail(i, &c, ErrOutOfBounds)
			}
		}
	}

	end := start.Clone()
	for _, d := range s.Table {
		end.Apply(d)
	}
	if !end.Equal(start) {
		missing, extra := start.Diff(end)
		c := append(missing, extra...)[0]
		return s.fail(WholeSprite, &c, ErrOpenLoop)
	}
	return nil
}

func (s *Sprite) fail(frame int, c *grid.Coord, err error) error {
	var at *grid.Coord
	if c != nil {
		cp := *c
		at = &cp
	}
	return &ConfigError{Sprite: s.Name, Frame: frame, Coord: at, Wrapped: err}
}

// Animator returns a fresh animator positioned on the initial pose.
func (s *Sprite) Animator(animate bool) *anim.Animator {
	return anim.New(s.Initial, s.Table, animate)
}

// Poses returns the initial pose followed by the pose after each transition,
// len(Table)+1 entries. The last entry equals the first for a valid sprite.
func (s *Sprite) Poses() [][]grid.Coord {
	st := grid.NewState(s.Initial...)
	poses := make([][]grid.Coord, 0, len(s.Table)+1)
	poses = append(poses, st.Snapshot())
	for _, d := range s.Table {
		st.Apply(d)
		poses = append(poses, st.Snapshot())
	}
	return poses
}

// Pose returns the pose after n transitions, wrapping around the loop.
func (s *Sprite) Pose(n int) []grid.Coord {
	st := grid.NewState(s.Initial...)
	if len(s.Table) == 0 {
		return st.Snapshot()
	}
	n %= len(s.Table)
	if n < 0 {
		n += len(s.Table)
	}
	for i := 0; i < n; i++ {
		st.Apply(s.Table[i])
	}
	return st.Snapshot()
}

// Population returns the lit-dot count of each pose in Poses.
func (s *Sprite) Population() []int {
	poses := s.Poses()
	counts := make([]int, len(poses))
	for i, p := range poses {
		counts[i] = len(p)
	}
	return counts
}

// Holds counts the transitions that change nothing and only hold the pose
// for a tick.
func (s *Sprite) Holds() int {
	n := 0
	for _, d := range s.Table {
		if d.Empty() {
			n++
		}
	}
	return n
}

// LoopDuration is how long one full loop takes at the sprite's period.
func (s *Sprite) LoopDuration() time.Duration {
	return time.Duration(len(s.Table)) * s.Period
}

// ParseRows reads a pose drawn as text, one string per dot row, '#' lit and
// '.' unlit. Any other rune is an error.
func ParseRows(rows []string) ([]grid.Coord, error) {
	var out []grid.Coord
	for r, line := range rows {
		for c, ch := range []rune(line) {
			switch ch {
			case litDot:
				out = append(out, grid.C(r, c))
			case unlitDot:
			default:
				return nil, fmt.Errorf("%w: row %d col %d: unexpected %q", ErrMalformedAsset, r, c, ch)
			}
		}
	}
	return out, nil
}

// FormatRows draws dots as Height strings of Width runes, the inverse of
// ParseRows.
func FormatRows(dots []grid.Coord, width, height int) []string {
	cells := make([][]rune, height)
	for r := range cells {
		cells[r] = []rune(strings.Repeat(string(unlitDot), width))
	}
	for _, c := range dots {
		if c.In(width, height) {
			cells[c.Row][c.Col] = litDot
		}
	}
	rows := make([]string, height)
	for r := range cells {
		rows[r] = string(cells[r])
	}
	return rows
}

// mustRows is ParseRows for bundled data.
func mustRows(rows ...string) []grid.Coord {
	dots, err := ParseRows(rows)
	if err != nil {
		panic(err)
	}
	return dots
}
