// Package braille packs dot grids into Unicode braille cells.
//
// Each output rune covers 2 columns × 4 rows of dots. The rune is U+2800 plus
// an 8-bit mask; an empty cell is U+2800 itself, never a space, so a sprite
// keeps its footprint when all its dots are off.
package braille

import "github.com/san-kum/dotsprite/internal/grid"

// Render packs dots into ceil(h/4) lines of ceil(w/2) braille runes joined by
// "\n". Output depends only on its arguments. Dots outside w × h are a caller
// error and are dropped.
func Render(dots []grid.Coord, w, h int) string {
	return Draw(dots, w, h).String()
}

// Draw returns a w × h canvas with dots lit.
func Draw(dots []grid.Coord, w, h int) *Canvas {
	c := NewCanvas(w, h)
	for _, d := range dots {
		c.Set(d)
	}
	return c
}
