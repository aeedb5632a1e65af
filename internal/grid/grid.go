// Package grid holds the sparse dot state of a sprite.
//
// A sprite is drawn on a fixed logical grid of Width × Height dots. Only the
// lit dots are stored:
//
//   - [Coord]: one addressable dot (row, column)
//   - [State]: the set of currently lit dots
//   - [Delta]: coordinates to switch off, then coordinates to switch on
//
// State is not safe for concurrent use. It is owned by a single animator and
// read synchronously by the renderer on the same goroutine.
package grid

import (
	"fmt"
	"sort"
)

// Coord addresses one dot. Row grows downwards, Col grows to the right.
type Coord struct {
	Row int
	Col int
}

// C is shorthand for Coord{Row: row, Col: col}, used heavily by sprite data.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// In reports whether c lies inside a width × height grid.
func (c Coord) In(width, height int) bool {
	return c.Row >= 0 && c.Row < height && c.Col >= 0 && c.Col < width
}

// Less orders coordinates row-major.
func (c Coord) Less(o Coord) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

// Delta moves a grid from one pose to the next. Remove is applied before Add,
// so a coordinate listed in both ends up lit.
type Delta struct {
	Remove []Coord
	Add    []Coord
}

// Reverse returns the delta that undoes d when d's lists are disjoint from the
// rest of the pose.
func (d Delta) Reverse() Delta {
	return Delta{Remove: d.Add, Add: d.Remove}
}

// Empty reports whether d changes nothing.
func (d Delta) Empty() bool {
	return len(d.Remove) == 0 && len(d.Add) == 0
}

// Coords returns every coordinate d mentions, removals first.
func (d Delta) Coords() []Coord {
	out := make([]Coord, 0, len(d.Remove)+len(d.Add))
	out = append(out, d.Remove...)
	return append(out, d.Add...)
}

// State is the set of lit dots.
type State struct {
	dots map[Coord]struct{}
}

// NewState returns a state with the given dots lit. Duplicates collapse.
func NewState(coords ...Coord) *State {
	s := &State{dots: make(map[Coord]struct{}, len(coords))}
	for _, c := range coords {
		s.dots[c] = struct{}{}
	}
	return s
}

// Apply switches off d.Remove then switches on d.Add. Removing an unlit dot
// and adding a lit one are no-ops.
func (s *State) Apply(d Delta) {
	for _, c := range d.Remove {
		delete(s.dots, c)
	}
	for _, c := range d.Add {
		s.dots[c] = struct{}{}
	}
}

// Snapshot returns the lit dots in row-major order. The slice is a copy.
func (s *State) Snapshot() []Coord {
	out := make([]Coord, 0, len(s.dots))
	for c := range s.dots {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func (s *State) Has(c Coord) bool {
	_, ok := s.dots[c]
	return ok
}

func (s *State) Len() int {
	return len(s.dots)
}

// Clone returns an independent copy of s.
func (s *State) Clone() *State {
	c := &State{dots: make(map[Coord]struct{}, len(s.dots))}
	for k := range s.dots {
		c.dots[k] = struct{}{}
	}
	return c
}

// Equal reports set equality.
func (s *State) Equal(o *State) bool {
	if s.Len() != o.Len() {
		return false
	}
	for c := range s.dots {
		if !o.Has(c) {
			return false
		}
	}
	return true
}

// Diff returns the dots lit in s but not in o, and those lit in o but not in s.
func (s *State) Diff(o *State) (onlyS, onlyO []Coord) {
	for c := range s.dots {
		if !o.Has(c) {
			onlyS = append(onlyS, c)
		}
	}
	for c := range o.dots {
		if !s.Has(c) {
			onlyO = append(onlyO, c)
		}
	}
	sort.Slice(onlyS, func(i, j int) bool { return onlyS[i].Less(onlyS[j]) })
	sort.Slice(onlyO, func(i, j int) bool { return onlyO[i].Less(onlyO[j]) })
	return onlyS, onlyO
}

// FirstOutside returns the first lit dot (row-major) outside a width × height
// grid.
func (s *State) FirstOutside(width, height int) (Coord, bool) {
	for _, c := range s.Snapshot() {
		if !c.In(width, height) {
			return c, true
		}
	}
	return Coord{}, false
}
