// Package storage keeps installed sprite assets on disk, one directory per
// sprite holding the asset, its metadata and a per-pose population table.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/dotsprite/internal/sprite"
)

const (
	assetFile      = "sprite.yaml"
	metadataFile   = "metadata.json"
	populationFile = "population.csv"
)

var (
	ErrBadName      = errors.New("storage: invalid sprite name")
	ErrNotInstalled = errors.New("storage: sprite not installed")
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type SpriteMetadata struct {
	Name        string    `json:"name"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Transitions int       `json:"transitions"`
	PeriodMS    int64     `json:"period_ms"`
	Source      string    `json:"source,omitempty"`
	Installed   time.Time `json:"installed"`
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return nil
}

// Save installs sp under its name, replacing any earlier install.
func (s *Store) Save(sp *sprite.Sprite, source string) error {
	if err := checkName(sp.Name); err != nil {
		return err
	}
	dir := filepath.Join(s.baseDir, sp.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if err := sprite.Save(filepath.Join(dir, assetFile), sp); err != nil {
		return err
	}

	meta := SpriteMetadata{
		Name:        sp.Name,
		Width:       sp.Width,
		Height:      sp.Height,
		Transitions: len(sp.Table),
		PeriodMS:    sp.Period.Milliseconds(),
		Source:      source,
		Installed:   time.Now(),
	}
	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(dir, populationFile))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"pose", "lit"}); err != nil {
		return err
	}
	for i, n := range sp.Population() {
		if err := w.Write([]string{strconv.Itoa(i), strconv.Itoa(n)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the metadata of every installed sprite, sorted by name.
// Directories without readable metadata are skipped.
func (s *Store) List() ([]SpriteMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SpriteMetadata{}, nil
		}
		return nil, err
	}

	sprites := make([]SpriteMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		sprites = append(sprites, *meta)
	}
	sort.Slice(sprites, func(i, j int) bool { return sprites[i].Name < sprites[j].Name })
	return sprites, nil
}

func (s *Store) Load(name string) (*SpriteMetadata, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, name, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotInstalled, name)
		}
		return nil, err
	}

	var meta SpriteMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Sprite decodes and validates an installed sprite.
func (s *Store) Sprite(name string) (*sprite.Sprite, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	path := filepath.Join(s.baseDir, name, assetFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotInstalled, name)
	}
	return sprite.Load(path)
}

func (s *Store) LoadPopulation(name string) ([]int, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(s.baseDir, name, populationFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []int{}, nil
	}

	counts := make([]int, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		n, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("population %s: %w", name, err)
		}
		counts = append(counts, n)
	}
	return counts, nil
}

func (s *Store) Remove(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	dir := filepath.Join(s.baseDir, name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNotInstalled, name)
	}
	return os.RemoveAll(dir)
}
