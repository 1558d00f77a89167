// Package hierarchy holds the static cosmic hierarchy: galaxies, suns,
// planets and special objects, plus the portfolio projects that orbit the
// focus-area suns.
package hierarchy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/litescript/ls-cosmos/internal/cosmos"
)

// Validation errors returned by NewTree.
var (
	ErrEmptyID       = errors.New("empty object id")
	ErrDuplicateID   = errors.New("duplicate object id")
	ErrUnknownParent = errors.New("unknown parent")
	ErrLevelMismatch = errors.New("parent level mismatch")
	ErrCycle         = errors.New("parent cycle")
	ErrInvalidObject = errors.New("invalid object")
)

// Lookup is the read-only view of the hierarchy used by the core modules.
type Lookup interface {
	ObjectByID(id string) (cosmos.Object, bool)
	ChildrenOf(parentID string) []cosmos.Object
	ObjectsByLevel(level cosmos.Level) []cosmos.Object
}

// Tree is an immutable, validated hierarchy. It is safe for concurrent reads.
type Tree struct {
	objects  []cosmos.Object
	byID     map[string]int
	children map[string][]int
	byLevel  map[cosmos.Level][]int
}

var _ Lookup = (*Tree)(nil)

// NewTree validates objects and builds a Tree. Object order is preserved
// for ChildrenOf and ObjectsByLevel.
func NewTree(objects []cosmos.Object) (*Tree, error) {
	t := &Tree{
		objects:  make([]cosmos.Object, len(objects)),
		byID:     make(map[string]int, len(objects)),
		children: make(map[string][]int),
		byLevel:  make(map[cosmos.Level][]int),
	}
	copy(t.objects, objects)

	for i, o := range t.objects {
		if o.ID == "" {
			return nil, fmt.Errorf("object %d: %w", i, ErrEmptyID)
		}
		if _, dup := t.byID[o.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, o.ID)
		}
		if err := validateObject(o); err != nil {
			return nil, err
		}
		t.byID[o.ID] = i
		t.byLevel[o.Level] = append(t.byLevel[o.Level], i)
	}

	for i, o := range t.objects {
		if !o.HasParent() {
			if o.Level == cosmos.LevelSun || o.Level == cosmos.LevelPlanet {
				return nil, fmt.Errorf("%w: %s %s has no parent", ErrUnknownParent, o.Level, o.ID)
			}
			continue
		}
		pi, ok := t.byID[o.ParentID]
		if !ok {
			return nil, fmt.Errorf("%w: %s -> %s", ErrUnknownParent, o.ID, o.ParentID)
		}
		if want := expectedParentLevel(o.Level); t.objects[pi].Level != want {
			return nil, fmt.Errorf("%w: %s (%s) -> %s (%s), want %s",
				ErrLevelMismatch, o.ID, o.Level, o.ParentID, t.objects[pi].Level, want)
		}
		t.children[o.ParentID] = append(t.children[o.ParentID], i)
	}

	if err := t.checkCycles(); err != nil {
		return nil, err
	}
	return t, nil
}

func validateObject(o cosmos.Object) error {
	switch o.Level {
	case cosmos.LevelGalaxy, cosmos.LevelSun, cosmos.LevelPlanet, cosmos.LevelSpecial:
	default:
		return fmt.Errorf("%s: %w: %q", o.ID, cosmos.ErrUnknownLevel, o.Level)
	}
	if o.Level == cosmos.LevelGalaxy && o.HasParent() {
		return fmt.Errorf("%w: galaxy %s cannot have a parent", ErrLevelMismatch, o.ID)
	}
	if o.Size <= 0 {
		return fmt.Errorf("%w: %s size %v must be positive", ErrInvalidObject, o.ID, o.Size)
	}
	if o.Position.X < 0 || o.Position.X > 1 || o.Position.Y < 0 || o.Position.Y > 1 {
		return fmt.Errorf("%w: %s position (%v, %v) outside [0,1]", ErrInvalidObject, o.ID, o.Position.X, o.Position.Y)
	}
	return nil
}

// expectedParentLevel returns the only level a parent may have. Specials
// nest under other specials.
func expectedParentLevel(l cosmos.Level) cosmos.Level {
	if l == cosmos.LevelSpecial {
		return cosmos.LevelSpecial
	}
	return l.Parent()
}

// checkCycles walks parent links from every node. Only special -> special
// links can loop, the level rule rules out the rest.
func (t *Tree) checkCycles() error {
	for _, o := range t.objects {
		seen := map[string]bool{o.ID: true}
		cur := o
		for cur.HasParent() {
			if seen[cur.ParentID] {
				return fmt.Errorf("%w: through %s", ErrCycle, o.ID)
			}
			seen[cur.ParentID] = true
			cur = t.objects[t.byID[cur.ParentID]]
		}
	}
	return nil
}

// ObjectByID returns the object with the given id.
func (t *Tree) ObjectByID(id string) (cosmos.Object, bool) {
	i, ok := t.byID[id]
	if !ok {
		return cosmos.Object{}, false
	}
	return t.objects[i], true
}

// ChildrenOf returns the direct children of parentID.
func (t *Tree) ChildrenOf(parentID string) []cosmos.Object {
	return t.collect(t.children[parentID])
}

// ObjectsByLevel returns all objects at a level.
func (t *Tree) ObjectsByLevel(level cosmos.Level) []cosmos.Object {
	return t.collect(t.byLevel[level])
}

// Roots returns the objects without a parent (galaxies and root specials).
func (t *Tree) Roots() []cosmos.Object {
	var out []cosmos.Object
	for _, o := range t.objects {
		if !o.HasParent() {
			out = append(out, o)
		}
	}
	return out
}

// All returns a copy of every object in declaration order.
func (t *Tree) All() []cosmos.Object {
	out := make([]cosmos.Object, len(t.objects))
	copy(out, t.objects)
	return out
}

// Len returns the number of objects.
func (t *Tree) Len() int {
	return len(t.objects)
}

// Counts returns the number of objects per level, sorted by depth.
func (t *Tree) Counts() []LevelCount {
	out := make([]LevelCount, 0, len(t.byLevel))
	for l, idx := range t.byLevel {
		out = append(out, LevelCount{Level: l, Count: len(idx)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level.Depth() != out[j].Level.Depth() {
			return out[i].Level.Depth() < out[j].Level.Depth()
		}
		return out[i].Level < out[j].Level
	})
	return out
}

// LevelCount pairs a level with its object count.
type LevelCount struct {
	Level cosmos.Level
	Count int
}

func (t *Tree) collect(idx []int) []cosmos.Object {
	if len(idx) == 0 {
		return nil
	}
	out := make([]cosmos.Object, len(idx))
	for i, j := range idx {
		out[i] = t.objects[j]
	}
	return out
}
