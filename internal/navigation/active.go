package navigation

import (
	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/hierarchy"
)

// ActiveObjects returns the hierarchy objects drawn at nav: the galaxies at
// the universe level, otherwise the focused object followed by its children.
// A planet is drawn among its siblings around the parent sun.
func ActiveObjects(lookup hierarchy.Lookup, nav cosmos.NavState) []cosmos.Object {
	switch nav.Level {
	case cosmos.LevelUniverse:
		return lookup.ObjectsByLevel(cosmos.LevelGalaxy)
	case cosmos.LevelGalaxy:
		return withChildren(lookup, nav.GalaxyID)
	case cosmos.LevelSun:
		return withChildren(lookup, nav.SunID)
	case cosmos.LevelPlanet:
		return withChildren(lookup, nav.SunID)
	case cosmos.LevelSpecial:
		return withChildren(lookup, nav.SpecialID)
	}
	return nil
}

func withChildren(lookup hierarchy.Lookup, id string) []cosmos.Object {
	obj, ok := lookup.ObjectByID(id)
	if !ok {
		return nil
	}
	return append([]cosmos.Object{obj}, lookup.ChildrenOf(id)...)
}

// ActiveObjects returns the objects drawn at the current navigation state.
func (n *Navigator) ActiveObjects() []cosmos.Object {
	return ActiveObjects(n.lookup, n.nav)
}
