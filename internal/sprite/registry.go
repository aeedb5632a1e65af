package sprite

import (
	"fmt"
	"sort"

	"github.com/san-kum/dotsprite/internal/anim"
	"github.com/san-kum/dotsprite/internal/grid"
)

// DefaultName is the sprite shown when none is configured.
const DefaultName = "chat"

var builders = map[string]func() (*Sprite, error){
	"chat": func() (*Sprite, error) {
		return New("chat", chatWidth, chatHeight, anim.DefaultPeriod, chatInitial, chatTable())
	},
	"blink": func() (*Sprite, error) {
		col := []grid.Coord{grid.C(0, 0), grid.C(1, 0), grid.C(2, 0), grid.C(3, 0)}
		return New("blink", 4, 4, 2*anim.DefaultPeriod, nil, anim.Table{
			{Add: col},
			{Remove: col},
		})
	},
	"orbit": func() (*Sprite, error) {
		// one dot circling the rim of a single braille cell
		path := []grid.Coord{
			grid.C(0, 0), grid.C(0, 1), grid.C(1, 1), grid.C(2, 1),
			grid.C(3, 1), grid.C(3, 0), grid.C(2, 0), grid.C(1, 0),
		}
		table := make(anim.Table, len(path))
		for i, c := range path {
			next := path[(i+1)%len(path)]
			table[i] = grid.Delta{Remove: []grid.Coord{c}, Add: []grid.Coord{next}}
		}
		return New("orbit", 2, 4, anim.DefaultPeriod/2, path[:1], table)
	},
}

// Get returns a fresh copy of a bundled sprite.
func Get(name string) (*Sprite, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownSprite, name, Names())
	}
	return build()
}

// Names lists bundled sprites in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
