package sprite

import (
	"github.com/san-kum/dotsprite/internal/anim"
	"github.com/san-kum/dotsprite/internal/grid"
)

// The chat sprite: a sitting cat that blinks, swishes its tail left and right
// and bobs its head.
const (
	chatWidth  = 22
	chatHeight = 12
)

var chatInitial = mustRows(
	"......................",
	"......##.......#...#..",
	".....#..#.....#.#.#.#.",
	"....#.##......#..#..#.",
	"...#.#....###.#.....#.",
	"...#.#...#...##.#.#.#.",
	"...#.#..#....#...#...#",
	"...#..###..#..###.###.",
	"....##..#...#....#.#..",
	"......###....#....#.#.",
	".........############.",
	"......................",
)

var (
	tailRightToMid = grid.Delta{
		Remove: []grid.Coord{grid.C(1, 6), grid.C(1, 7), grid.C(2, 8), grid.C(3, 4), grid.C(3, 6), grid.C(3, 7), grid.C(8, 4), grid.C(8, 5)},
		Add:    []grid.Coord{grid.C(1, 4), grid.C(2, 3), grid.C(3, 3), grid.C(3, 5), grid.C(7, 5), grid.C(8, 3), grid.C(9, 4), grid.C(9, 5)},
	}
	tailMidToRight = tailRightToMid.Reverse()

	tailMidToLeft = grid.Delta{
		Remove: []grid.Coord{grid.C(1, 4), grid.C(2, 5), grid.C(3, 3), grid.C(3, 5), grid.C(7, 5), grid.C(8, 3), grid.C(9, 4), grid.C(9, 5)},
		Add:    []grid.Coord{grid.C(1, 1), grid.C(1, 2), grid.C(2, 0), grid.C(3, 1), grid.C(3, 2), grid.C(3, 4), grid.C(8, 4), grid.C(8, 5)},
	}
	tailLeftToMid = tailMidToLeft.Reverse()

	wait = grid.Delta{}

	headRight = grid.Delta{
		Remove: []grid.Coord{grid.C(5, 16), grid.C(5, 18), grid.C(6, 17)},
		Add:    []grid.Coord{grid.C(5, 17), grid.C(5, 19), grid.C(6, 18)},
	}
	headLeft = headRight.Reverse()

	headDown = grid.Delta{
		Remove: []grid.Coord{
			grid.C(1, 15), grid.C(1, 19),
			grid.C(2, 14), grid.C(2, 16), grid.C(2, 18), grid.C(2, 20),
			grid.C(3, 17),
			grid.C(5, 17), grid.C(5, 19),
			grid.C(6, 13), grid.C(6, 18), grid.C(6, 21),
			grid.C(7, 14), grid.C(7, 15), grid.C(7, 16), grid.C(7, 19), grid.C(7, 20),
		},
		Add: []grid.Coord{
			grid.C(2, 15), grid.C(2, 19),
			grid.C(3, 16), grid.C(3, 18),
			grid.C(4, 17),
			grid.C(6, 14), grid.C(6, 17), grid.C(6, 19), grid.C(6, 20),
			grid.C(7, 13), grid.C(7, 18), grid.C(7, 21),
			grid.C(8, 14), grid.C(8, 15), grid.C(8, 16), grid.C(8, 18), grid.C(8, 20),
		},
	}
	// Not headDown.Reverse(): (7,18) is lit in both head poses, so it is
	// removed and re-added.
	headUp = grid.Delta{
		Remove: headDown.Add,
		Add:    append(append([]grid.Coord{}, headDown.Remove...), grid.C(7, 18)),
	}

	blinkHeadHigh = []grid.Delta{
		{Remove: []grid.Coord{grid.C(5, 16), grid.C(5, 18)}},
		{Add: []grid.Coord{grid.C(5, 16), grid.C(5, 18)}},
	}
	blinkHeadLow = []grid.Delta{
		{Remove: []grid.Coord{grid.C(6, 17), grid.C(6, 19)}},
		{Add: []grid.Coord{grid.C(6, 17), grid.C(6, 19)}},
	}
)

func chatTable() anim.Table {
	var t anim.Table
	t = append(t, blinkHeadHigh...)
	t = append(t,
		wait,
		tailRightToMid,
		headRight,
		wait,
		tailMidToLeft,
		wait,
		tailLeftToMid,
		wait,
		headDown,
		wait,
		tailMidToRight,
	)
	t = append(t, blinkHeadLow...)
	t = append(t,
		wait,
		tailRightToMid,
		wait,
		tailMidToLeft,
		wait,
		headUp,
		wait,
		tailLeftToMid,
		headLeft,
		wait,
		tailMidToRight,
	)
	return t
}
