package engine

import (
	"fmt"
	"strings"
)

type ClueType string

const (
	ClueSymbolic     ClueType = "symbolic"
	ClueSpatial      ClueType = "spatial"
	ClueExclusionary ClueType = "exclusionary"
)

// MissionClue is a player-facing hint generated from a template. The matcher is
// kept alongside so the HUD and the solver tests can re-apply the clue as a
// filter; it never leaves the process (unexported, skipped by JSON).
type MissionClue struct {
	ID       string   `json:"id"`
	Type     ClueType `json:"type"`
	Text     string   `json:"text"`
	Revealed bool     `json:"revealed"`

	match func(Shop, []Shop) bool
}

// Matches applies the clue as a predicate over one shop in the context of the
// full candidate list. Clues without a matcher (e.g. decoded from the wire)
// filter nothing.
func (c MissionClue) Matches(s Shop, all []Shop) bool {
	if c.match == nil {
		return true
	}
	return c.match(s, all)
}

// NarrowCandidates intersects all clue predicates over the candidate list.
func NarrowCandidates(clues []MissionClue, shops []Shop) []Shop {
	surviving := shops
	for _, c := range clues {
		next := make([]Shop, 0, len(surviving))
		for _, s := range surviving {
			if c.Matches(s, shops) {
				next = append(next, s)
			}
		}
		surviving = next
	}
	return surviving
}

// clueTemplate pairs a hint line with a pure predicate over shop attributes and
// position. Predicates may read the full candidate list (for median lines) but
// never anything else.
type clueTemplate struct {
	id    string
	typ   ClueType
	text  string
	match func(s Shop, all []Shop) bool
}

var (
	foodFragments  = []string{"bakery", "cafe", "grill", "restaurant", "deli", "pizza"}
	drinkFragments = []string{"bar", "cafe", "tea", "juice", "brew"}
	sweetFragments = []string{"bakery", "candy", "ice cream", "chocolat"}
	wearFragments  = []string{"boutique", "tailor", "shoe", "clothes", "hat"}
	wareFragments  = []string{"book", "antique", "record", "toy", "florist", "gadget"}
)

var symbolicTemplates = []clueTemplate{
	{id: "sym_food", typ: ClueSymbolic, text: "They sell something you could eat on the spot.",
		match: func(s Shop, _ []Shop) bool { return categoryContains(s.Category, foodFragments) }},
	{id: "sym_drink", typ: ClueSymbolic, text: "You could order a drink there.",
		match: func(s Shop, _ []Shop) bool { return categoryContains(s.Category, drinkFragments) }},
	{id: "sym_sweet", typ: ClueSymbolic, text: "A sweet tooth would feel at home.",
		match: func(s Shop, _ []Shop) bool { return categoryContains(s.Category, sweetFragments) }},
	{id: "sym_wear", typ: ClueSymbolic, text: "What they sell, you could wear.",
		match: func(s Shop, _ []Shop) bool { return categoryContains(s.Category, wearFragments) }},
	{id: "sym_ware", typ: ClueSymbolic, text: "The shelves are for browsing, not tasting.",
		match: func(s Shop, _ []Shop) bool { return categoryContains(s.Category, wareFragments) }},
}

var spatialTemplates = []clueTemplate{
	{id: "spa_north", typ: ClueSpatial, text: "It stands north of the city's center line.",
		match: func(s Shop, all []Shop) bool { return s.Pos.Z < medianZ(all) }},
	{id: "spa_south", typ: ClueSpatial, text: "It stands south of the city's center line.",
		match: func(s Shop, all []Shop) bool { return s.Pos.Z >= medianZ(all) }},
	{id: "spa_east", typ: ClueSpatial, text: "Look east of the main crossing.",
		match: func(s Shop, all []Shop) bool { return s.Pos.X >= medianX(all) }},
	{id: "spa_west", typ: ClueSpatial, text: "Look west of the main crossing.",
		match: func(s Shop, all []Shop) bool { return s.Pos.X < medianX(all) }},
}

var exclusionaryTemplates = []clueTemplate{
	{id: "exc_no_drink", typ: ClueExclusionary, text: "It is not a place that pours drinks.",
		match: func(s Shop, _ []Shop) bool { return !categoryContains(s.Category, drinkFragments) }},
	{id: "exc_no_food", typ: ClueExclusionary, text: "Nobody goes there hungry.",
		match: func(s Shop, _ []Shop) bool { return !categoryContains(s.Category, foodFragments) }},
	{id: "exc_no_sweet", typ: ClueExclusionary, text: "No sugar to be found inside.",
		match: func(s Shop, _ []Shop) bool { return !categoryContains(s.Category, sweetFragments) }},
	{id: "exc_not_north", typ: ClueExclusionary, text: "Do not bother with the north half.",
		match: func(s Shop, all []Shop) bool { return s.Pos.Z >= medianZ(all) }},
	{id: "exc_not_east", typ: ClueExclusionary, text: "The east side is a dead end.",
		match: func(s Shop, all []Shop) bool { return s.Pos.X < medianX(all) }},
}

// Narrowing bounds: a valid clue combination must leave the target plus at most
// one other suspect.
const (
	clueRetryBudget  = 20
	clueMinSurvivors = 1
	clueMaxSurvivors = 2
)

func matchingTemplates(catalog []clueTemplate, target Shop, all []Shop) []clueTemplate {
	var out []clueTemplate
	for _, t := range catalog {
		if t.match(target, all) {
			out = append(out, t)
		}
	}
	return out
}

func instantiate(t clueTemplate) MissionClue {
	return MissionClue{ID: t.id, Type: t.typ, Text: t.text, match: t.match}
}

// GenerateClues searches random template combinations until one narrows the
// candidate set to 1-2 shops while keeping the target among the survivors. The
// search is pure sampling with a validity oracle: the template space is tiny
// and combinations are cheap to test, so no exhaustive walk is needed. When the
// retry budget runs out it falls back to a guaranteed pair, so the function is
// total and never returns an empty or unsolvable set.
func GenerateClues(target Shop, all []Shop, st *Stream) []MissionClue {
	symbolic := matchingTemplates(symbolicTemplates, target, all)
	spatial := matchingTemplates(spatialTemplates, target, all)
	exclusionary := matchingTemplates(exclusionaryTemplates, target, all)

	for attempt := 0; attempt < clueRetryBudget; attempt++ {
		// one independent draw per non-empty catalog, in priority order
		var chosen []clueTemplate
		if len(symbolic) > 0 {
			chosen = append(chosen, symbolic[st.Intn(len(symbolic))])
		}
		if len(spatial) > 0 {
			chosen = append(chosen, spatial[st.Intn(len(spatial))])
		}
		if len(exclusionary) > 0 {
			chosen = append(chosen, exclusionary[st.Intn(len(exclusionary))])
		}
		if len(chosen) == 0 {
			break
		}
		if !validCombination(chosen, target, all) {
			continue
		}
		clues := make([]MissionClue, len(chosen))
		for i, t := range chosen {
			clues[i] = instantiate(t)
		}
		clues[0].Revealed = true
		return ensureRevealed(clues)
	}
	return fallbackClues(target)
}

func validCombination(chosen []clueTemplate, target Shop, all []Shop) bool {
	surviving := all
	for _, t := range chosen {
		next := make([]Shop, 0, len(surviving))
		for _, s := range surviving {
			if t.match(s, all) {
				next = append(next, s)
			}
		}
		surviving = next
	}
	if len(surviving) < clueMinSurvivors || len(surviving) > clueMaxSurvivors {
		return false
	}
	for _, s := range surviving {
		if s.ID == target.ID {
			return true
		}
	}
	// a buggy predicate dropping the target must never be accepted: the
	// mission would be unsolvable
	return false
}

// ensureRevealed guarantees the invariant that at least one clue starts
// revealed. The ordering above already does this; the loop is a backstop.
func ensureRevealed(clues []MissionClue) []MissionClue {
	for _, c := range clues {
		if c.Revealed {
			return clues
		}
	}
	if len(clues) > 0 {
		clues[0].Revealed = true
	}
	return clues
}

// fallbackClues builds the always-valid pair: the target's raw category plus
// which lateral half of the city it occupies. x == 0 counts as the right half.
func fallbackClues(target Shop) []MissionClue {
	category := target.Category
	right := target.Pos.X >= 0
	side := "right"
	if !right {
		side = "left"
	}
	return []MissionClue{
		{
			ID:       "fallback_category",
			Type:     ClueSymbolic,
			Text:     fmt.Sprintf("The target is a %s.", strings.ToLower(category)),
			Revealed: true,
			match:    func(s Shop, _ []Shop) bool { return strings.EqualFold(s.Category, category) },
		},
		{
			ID:    "fallback_side",
			Type:  ClueSpatial,
			Text:  fmt.Sprintf("It sits on the %s half of the city.", side),
			match: func(s Shop, _ []Shop) bool { return (s.Pos.X >= 0) == right },
		},
	}
}
