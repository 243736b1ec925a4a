package engine

import (
	"math"
	"sort"
	"strings"
)

// Vec2 is a position on the city's ground plane.
type Vec2 struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Z + b.Z} }

func (a Vec2) Dist(b Vec2) float64 { return math.Hypot(a.X-b.X, a.Z-b.Z) }

// DisplayMeta is optional presentation data attached to a shop by the catalog.
type DisplayMeta struct {
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
}

// Shop is a candidate entity eligible to be a mission's hidden target. The
// engine never owns or mutates shops; the world catalog supplies them per
// mission and they stay immutable for its duration.
type Shop struct {
	ID       string      `json:"id"`
	Category string      `json:"category"`
	Pos      Vec2        `json:"pos"`
	Meta     DisplayMeta `json:"meta,omitempty"`
}

// Eligible reports whether a shop can participate in clue matching: it needs a
// non-empty category and a well-formed position.
func (s Shop) Eligible() bool {
	if strings.TrimSpace(s.Category) == "" {
		return false
	}
	if math.IsNaN(s.Pos.X) || math.IsNaN(s.Pos.Z) || math.IsInf(s.Pos.X, 0) || math.IsInf(s.Pos.Z, 0) {
		return false
	}
	return true
}

// EligibleShops filters a catalog down to clue-eligible candidates.
func EligibleShops(shops []Shop) []Shop {
	out := make([]Shop, 0, len(shops))
	for _, s := range shops {
		if s.Eligible() {
			out = append(out, s)
		}
	}
	return out
}

// medianX and medianZ anchor the spatial clue predicates. Median rather than
// mean keeps a single far-out shop from dragging the city's center line.
func medianX(shops []Shop) float64 { return medianOf(shops, func(s Shop) float64 { return s.Pos.X }) }

func medianZ(shops []Shop) float64 { return medianOf(shops, func(s Shop) float64 { return s.Pos.Z }) }

func medianOf(shops []Shop, val func(Shop) float64) float64 {
	if len(shops) == 0 {
		return 0
	}
	vs := make([]float64, len(shops))
	for i, s := range shops {
		vs[i] = val(s)
	}
	sort.Float64s(vs)
	mid := len(vs) / 2
	if len(vs)%2 == 1 {
		return vs[mid]
	}
	return (vs[mid-1] + vs[mid]) / 2
}

func categoryContains(category string, fragments []string) bool {
	c := strings.ToLower(category)
	for _, f := range fragments {
		if strings.Contains(c, f) {
			return true
		}
	}
	return false
}
