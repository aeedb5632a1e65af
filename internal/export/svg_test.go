package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/san-kum/dotsprite/internal/braille"
	"github.com/san-kum/dotsprite/internal/grid"
)

func TestPoseToSVG(t *testing.T) {
	t.Parallel()

	svg := PoseToSVG([]grid.Coord{grid.C(0, 0), grid.C(3, 1), grid.C(9, 9)}, 4, 4, 10)
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.Equal(t, 2, strings.Count(svg, "<circle"), "out-of-grid dots are skipped")
	assert.Contains(t, svg, `width="40" height="40"`)
	assert.Contains(t, svg, `<circle cx="5.0" cy="5.0" r="4.0"/>`)
	assert.Contains(t, svg, `<circle cx="15.0" cy="35.0" r="4.0"/>`)
}

func TestFramesToSVG(t *testing.T) {
	t.Parallel()

	poses := [][]grid.Coord{{grid.C(0, 0)}, {grid.C(0, 0)}, nil}
	svg := FramesToSVG(poses, 2, 4, 1)
	assert.Equal(t, 2, strings.Count(svg, "<circle"))
	// three frames of width 2 with two gaps of 2
	assert.Contains(t, svg, `width="10" height="4"`)
	assert.Contains(t, svg, `<circle cx="4.5" cy="0.5"`)

	assert.Empty(t, FramesToSVG(nil, 2, 4, 1))
	assert.Empty(t, FramesToSVG(poses, 0, 4, 1))
}

func TestCanvasToSVG(t *testing.T) {
	t.Parallel()

	c := braille.NewCanvas(4, 4)
	c.Set(grid.C(1, 1))
	c.Set(grid.C(2, 3))
	assert.Equal(t, 2, strings.Count(CanvasToSVG(c, 2), "<circle"))
	assert.Empty(t, CanvasToSVG(nil, 2))
}
