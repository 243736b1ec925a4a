// Package world supplies the read-only shop catalog the mission engine draws
// candidates from. In the full game this comes from the content service; the
// bundled city is enough for the demo clients and for exercising every clue
// template.
package world

import "github.com/pverbeek/shop-city/internal/engine"

var shops = []engine.Shop{
	{ID: "cafe-lumen", Category: "cafe", Pos: engine.Vec2{X: -14, Z: -9}, Meta: engine.DisplayMeta{Name: "Cafe Lumen", Color: "#d9a066"}},
	{ID: "cafe-arcade", Category: "cafe", Pos: engine.Vec2{X: 11, Z: 7}, Meta: engine.DisplayMeta{Name: "Arcade Cafe"}},
	{ID: "harbor-bakery", Category: "bakery", Pos: engine.Vec2{X: 6, Z: -16}, Meta: engine.DisplayMeta{Name: "Harbor Bakery", Color: "#e8c170"}},
	{ID: "maple-bakery", Category: "bakery", Pos: engine.Vec2{X: -7, Z: 13}},
	{ID: "ember-grill", Category: "grill", Pos: engine.Vec2{X: -18, Z: 4}, Meta: engine.DisplayMeta{Name: "Ember Grill", Color: "#c0392b"}},
	{ID: "dockside-bar", Category: "bar", Pos: engine.Vec2{X: 16, Z: -12}, Meta: engine.DisplayMeta{Name: "Dockside"}},
	{ID: "velvet-bar", Category: "bar", Pos: engine.Vec2{X: -11, Z: -17}},
	{ID: "leaf-tea-house", Category: "tea house", Pos: engine.Vec2{X: 3, Z: 18}, Meta: engine.DisplayMeta{Name: "Leaf & Steam"}},
	{ID: "press-juice", Category: "juice bar", Pos: engine.Vec2{X: 9, Z: 14}},
	{ID: "corner-pizza", Category: "pizzeria", Pos: engine.Vec2{X: -3, Z: -12}, Meta: engine.DisplayMeta{Name: "Corner Slice", Color: "#27ae60"}},
	{ID: "old-deli", Category: "deli", Pos: engine.Vec2{X: 13, Z: 2}},
	{ID: "sugar-candy", Category: "candy shop", Pos: engine.Vec2{X: -9, Z: 8}, Meta: engine.DisplayMeta{Name: "Sugar Rush", Color: "#e84393"}},
	{ID: "polar-ice-cream", Category: "ice cream parlor", Pos: engine.Vec2{X: 18, Z: 9}},
	{ID: "atelier-boutique", Category: "boutique", Pos: engine.Vec2{X: -16, Z: -2}, Meta: engine.DisplayMeta{Name: "Atelier Nine"}},
	{ID: "stitch-tailor", Category: "tailor", Pos: engine.Vec2{X: 2, Z: -5}},
	{ID: "stride-shoes", Category: "shoe store", Pos: engine.Vec2{X: -5, Z: 1}, Meta: engine.DisplayMeta{Color: "#2c3e50"}},
	{ID: "brim-hats", Category: "hat shop", Pos: engine.Vec2{X: 8, Z: -8}},
	{ID: "dusty-books", Category: "book shop", Pos: engine.Vec2{X: -12, Z: 16}, Meta: engine.DisplayMeta{Name: "Dusty Pages"}},
	{ID: "spindle-records", Category: "record store", Pos: engine.Vec2{X: 15, Z: -4}, Meta: engine.DisplayMeta{Name: "Spindle", Color: "#8e44ad"}},
	{ID: "attic-antiques", Category: "antique shop", Pos: engine.Vec2{X: -2, Z: 10}},
	{ID: "pip-toys", Category: "toy store", Pos: engine.Vec2{X: 5, Z: 4}, Meta: engine.DisplayMeta{Name: "Pip's Toys", Color: "#f1c40f"}},
	{ID: "fern-florist", Category: "florist", Pos: engine.Vec2{X: -8, Z: -4}},
	{ID: "volt-gadgets", Category: "gadget store", Pos: engine.Vec2{X: 12, Z: 17}, Meta: engine.DisplayMeta{Name: "Volt"}},
	{ID: "north-brew", Category: "brewpub", Pos: engine.Vec2{X: 0, Z: -19}},
}

// Shops returns a copy of the catalog; callers can hold it without aliasing
// the package state.
func Shops() []engine.Shop {
	return append([]engine.Shop(nil), shops...)
}

// SpawnPoint is where a fresh player stands, at the main crossing.
func SpawnPoint() engine.Vec2 { return engine.Vec2{X: 0, Z: 0} }
