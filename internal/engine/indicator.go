package engine

// IndicatorType is the shared visual shape of all markers in one mission. True
// marker and decoys look identical; only the tell gives a decoy away.
type IndicatorType string

const (
	IndicatorBeam    IndicatorType = "beam"
	IndicatorHalo    IndicatorType = "halo"
	IndicatorCompass IndicatorType = "compass"
)

var allIndicatorTypes = []IndicatorType{IndicatorBeam, IndicatorHalo, IndicatorCompass}

// DecoyTell is the subtle divergence attached to a decoy marker. The tags are a
// closed set; how each one renders is the presentation layer's business.
type DecoyTell string

const (
	TellGlitch   DecoyTell = "glitch"
	TellFade     DecoyTell = "fade"
	TellReversed DecoyTell = "reversed"
	TellCold     DecoyTell = "cold"
)

var allDecoyTells = []DecoyTell{TellGlitch, TellFade, TellReversed, TellCold}

// MissionIndicator is a positional marker placed in the world. Exactly one per
// mission is truthful; the rest are decoys drawn from non-target shops.
type MissionIndicator struct {
	ShopID  string        `json:"shopId"`
	Pos     Vec2          `json:"pos"`
	Type    IndicatorType `json:"type"`
	IsDecoy bool          `json:"isDecoy"`
	Tell    DecoyTell     `json:"tell,omitempty"`
}

// GenerateIndicators places the true marker at the target and a seeded handful
// of decoys elsewhere. Callers should hand in a stream decorrelated from the
// clue stream (a distinct child label) so the two rolls never entangle for the
// same session seed.
func GenerateIndicators(target Shop, all []Shop, st *Stream, minDecoys, maxDecoys int) []MissionIndicator {
	if minDecoys < 0 {
		minDecoys = 0
	}
	if maxDecoys < minDecoys {
		maxDecoys = minDecoys
	}

	visual := allIndicatorTypes[st.Intn(len(allIndicatorTypes))]
	out := []MissionIndicator{{
		ShopID: target.ID,
		Pos:    target.Pos,
		Type:   visual,
	}}

	others := make([]Shop, 0, len(all))
	for _, s := range all {
		if s.ID != target.ID {
			others = append(others, s)
		}
	}
	count := st.IntBetween(minDecoys, maxDecoys)
	if count > len(others) {
		count = len(others)
	}
	st.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })
	for _, s := range others[:count] {
		out = append(out, MissionIndicator{
			ShopID:  s.ID,
			Pos:     s.Pos,
			Type:    visual,
			IsDecoy: true,
			Tell:    allDecoyTells[st.Intn(len(allDecoyTells))],
		})
	}
	return out
}
