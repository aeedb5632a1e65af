package sprite

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dotsprite/internal/anim"
	"github.com/san-kum/dotsprite/internal/grid"
)

// Asset is the YAML layout of a sprite file:
//
//	name: blink
//	width: 4
//	height: 4
//	period_ms: 320
//	initial:
//	  - "...."
//	  - "...."
//	  - "...."
//	  - "...."
//	transitions:
//	  - add: [[0, 0], [1, 0], [2, 0], [3, 0]]
//	  - remove: [[0, 0], [1, 0], [2, 0], [3, 0]]
type Asset struct {
	Name        string       `yaml:"name"`
	Width       int          `yaml:"width"`
	Height      int          `yaml:"height"`
	PeriodMS    int          `yaml:"period_ms,omitempty"`
	Initial     []string     `yaml:"initial"`
	Transitions []AssetDelta `yaml:"transitions"`
}

// AssetDelta lists [row, col] pairs.
type AssetDelta struct {
	Remove [][]int `yaml:"remove,omitempty,flow"`
	Add    [][]int `yaml:"add,omitempty,flow"`
}

// Decode parses and validates a YAML sprite.
func Decode(data []byte) (*Sprite, error) {
	var a Asset
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAsset, err)
	}
	return a.Sprite()
}

// Sprite converts the asset and validates the result.
func (a *Asset) Sprite() (*Sprite, error) {
	initial, err := ParseRows(a.Initial)
	if err != nil {
		return nil, fmt.Errorf("sprite %s: %w", a.Name, err)
	}
	table := make(anim.Table, len(a.Transitions))
	for i, t := range a.Transitions {
		rm, err := pairs(t.Remove)
		if err != nil {
			return nil, fmt.Errorf("sprite %s: transition %d remove: %w", a.Name, i, err)
		}
		add, err := pairs(t.Add)
		if err != nil {
			return nil, fmt.Errorf("sprite %s: transition %d add: %w", a.Name, i, err)
		}
		table[i] = grid.Delta{Remove: rm, Add: add}
	}
	return New(a.Name, a.Width, a.Height, time.Duration(a.PeriodMS)*time.Millisecond, initial, table)
}

func pairs(raw [][]int) ([]grid.Coord, error) {
	out := make([]grid.Coord, 0, len(raw))
	for _, p := range raw {
		if len(p) != 2 {
			return nil, fmt.Errorf("%w: coordinate %v is not a [row, col] pair", ErrMalformedAsset, p)
		}
		out = append(out, grid.C(p[0], p[1]))
	}
	return out, nil
}

// ToAsset converts s into its file layout.
func ToAsset(s *Sprite) *Asset {
	a := &Asset{
		Name:        s.Name,
		Width:       s.Width,
		Height:      s.Height,
		PeriodMS:    int(s.Period / time.Millisecond),
		Initial:     FormatRows(s.Initial, s.Width, s.Height),
		Transitions: make([]AssetDelta, len(s.Table)),
	}
	for i, d := range s.Table {
		a.Transitions[i] = AssetDelta{Remove: rawPairs(d.Remove), Add: rawPairs(d.Add)}
	}
	return a
}

func rawPairs(cs []grid.Coord) [][]int {
	if len(cs) == 0 {
		return nil
	}
	out := make([][]int, len(cs))
	for i, c := range cs {
		out[i] = []int{c.Row, c.Col}
	}
	return out
}

// Encode renders s as YAML.
func Encode(s *Sprite) ([]byte, error) {
	return yaml.Marshal(ToAsset(s))
}

// Load reads a sprite file.
func Load(path string) (*Sprite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path as YAML.
func Save(path string, s *Sprite) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
