package braille

import (
	"strings"

	"github.com/san-kum/dotsprite/internal/grid"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const Blank rune = 0x2800

var pixelMap = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Bit returns the mask bit of the dot at (rowOff, colOff) inside a cell.
func Bit(rowOff, colOff int) rune {
	return pixelMap[rowOff][colOff]
}

// Canvas is a grid of braille cells covering Width × Height dots.
type Canvas struct {
	Width, Height int // in dots
	Cells         [][]rune
}

func NewCanvas(w, h int) *Canvas {
	rows, cols := CellDims(w, h)
	c := &Canvas{
		Width:  w,
		Height: h,
		Cells:  make([][]rune, rows),
	}
	for i := range c.Cells {
		c.Cells[i] = make([]rune, cols)
		for j := range c.Cells[i] {
			c.Cells[i][j] = Blank
		}
	}
	return c
}

// CellDims returns how many cell rows and columns a w × h dot grid needs.
func CellDims(w, h int) (rows, cols int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return (h + 3) / 4, (w + 1) / 2
}

// Set lights dot d. Dots outside the canvas are ignored.
func (c *Canvas) Set(d grid.Coord) {
	if !d.In(c.Width, c.Height) {
		return
	}
	c.Cells[d.Row/4][d.Col/2] |= pixelMap[d.Row%4][d.Col%2]
}

// Clear resets every cell to Blank.
func (c *Canvas) Clear() {
	for i := range c.Cells {
		for j := range c.Cells[i] {
			c.Cells[i][j] = Blank
		}
	}
}

// Dots decodes the canvas back into lit coordinates, row-major.
func (c *Canvas) Dots() []grid.Coord {
	var out []grid.Coord
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			if c.Cells[row/4][col/2]&pixelMap[row%4][col%2] != 0 {
				out = append(out, grid.C(row, col))
			}
		}
	}
	return out
}

// Lines returns one string per cell row.
func (c *Canvas) Lines() []string {
	lines := make([]string, len(c.Cells))
	for i, row := range c.Cells {
		lines[i] = string(row)
	}
	return lines
}

// String joins the cell rows with newlines, without a trailing newline.
func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n")
}
