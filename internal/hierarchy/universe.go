package hierarchy

import (
	_ "embed"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/litescript/ls-cosmos/internal/cosmos"
)

//go:embed universe.toml
var defaultUniverse []byte

// Project is a portfolio item rendered as an orbiting body.
type Project struct {
	ID        string  `toml:"id"`
	Name      string  `toml:"name"`
	Initials  string  `toml:"initials"`
	FocusArea string  `toml:"focus_area"`
	Mass      float64 `toml:"mass"`
	Speed     float64 `toml:"speed"` // optional orbit speed override
	Color     string  `toml:"color"`
}

// FocusArea maps a project focus area to the sun its projects orbit.
type FocusArea struct {
	ID    string `toml:"id"`
	SunID string `toml:"sun"`
}

// Universe is a loaded hierarchy document.
type Universe struct {
	Tree          *Tree
	Projects      []Project
	FocusAreas    map[string]string // focus area id -> sun id
	OrbitGalaxyID string
	Source        string // file path, or "embedded"
}

// SunForFocusArea returns the sun mapped to a focus area.
func (u *Universe) SunForFocusArea(area string) (string, bool) {
	id, ok := u.FocusAreas[area]
	return id, ok
}

// OrbitSuns returns the suns of the orbit galaxy, the suns projects orbit.
func (u *Universe) OrbitSuns() []cosmos.Object {
	if u.OrbitGalaxyID == "" {
		return nil
	}
	return u.Tree.ChildrenOf(u.OrbitGalaxyID)
}

// objectSpec is the TOML shape of a hierarchy object.
type objectSpec struct {
	ID          string       `toml:"id"`
	Name        string       `toml:"name"`
	Description string       `toml:"description"`
	Position    cosmos.Point `toml:"position"`
	Size        float64      `toml:"size"`
	Parent      string       `toml:"parent"`
	Color       string       `toml:"color"`
	Kind        string       `toml:"kind"`
}

// document is the TOML shape of a universe file.
type document struct {
	OrbitGalaxy string       `toml:"orbit_galaxy"`
	FocusAreas  []FocusArea  `toml:"focus_area"`
	Galaxies    []objectSpec `toml:"galaxy"`
	Suns        []objectSpec `toml:"sun"`
	Planets     []objectSpec `toml:"planet"`
	Specials    []objectSpec `toml:"special"`
	Projects    []Project    `toml:"project"`
}

// Default returns the embedded universe.
func Default() (*Universe, error) {
	u, err := Parse(defaultUniverse)
	if err != nil {
		return nil, fmt.Errorf("embedded universe: %w", err)
	}
	u.Source = "embedded"
	return u, nil
}

// Load reads and validates a universe file.
func Load(path string) (*Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading universe: %w", err)
	}
	u, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	u.Source = path
	return u, nil
}

// LoadOrDefault loads path, or the embedded universe when path is empty.
func LoadOrDefault(path string) (*Universe, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Parse decodes and validates a universe document.
func Parse(data []byte) (*Universe, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing universe: %w", err)
	}

	var objects []cosmos.Object
	add := func(level cosmos.Level, specs []objectSpec) {
		for _, s := range specs {
			objects = append(objects, cosmos.Object{
				ID:          s.ID,
				Name:        s.Name,
				Description: s.Description,
				Position:    s.Position,
				Size:        s.Size,
				Level:       level,
				ParentID:    s.Parent,
				Color:       s.Color,
				Kind:        s.Kind,
			})
		}
	}
	add(cosmos.LevelGalaxy, doc.Galaxies)
	add(cosmos.LevelSun, doc.Suns)
	add(cosmos.LevelPlanet, doc.Planets)
	add(cosmos.LevelSpecial, doc.Specials)

	tree, err := NewTree(objects)
	if err != nil {
		return nil, err
	}

	u := &Universe{
		Tree:          tree,
		Projects:      doc.Projects,
		FocusAreas:    make(map[string]string, len(doc.FocusAreas)),
		OrbitGalaxyID: doc.OrbitGalaxy,
	}

	if u.OrbitGalaxyID != "" {
		g, ok := tree.ObjectByID(u.OrbitGalaxyID)
		if !ok || g.Level != cosmos.LevelGalaxy {
			return nil, fmt.Errorf("%w: orbit_galaxy %q is not a galaxy", ErrUnknownParent, u.OrbitGalaxyID)
		}
	}

	for _, fa := range doc.FocusAreas {
		sun, ok := tree.ObjectByID(fa.SunID)
		if !ok || sun.Level != cosmos.LevelSun {
			return nil, fmt.Errorf("%w: focus area %q -> %q is not a sun", ErrUnknownParent, fa.ID, fa.SunID)
		}
		u.FocusAreas[fa.ID] = fa.SunID
	}

	seen := make(map[string]bool, len(u.Projects))
	for i, p := range u.Projects {
		if p.ID == "" {
			return nil, fmt.Errorf("project %d: %w", i, ErrEmptyID)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: project %s", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = true
		if p.Mass < 0 || p.Speed < 0 {
			return nil, fmt.Errorf("%w: project %s has negative mass or speed", ErrInvalidObject, p.ID)
		}
	}

	return u, nil
}
