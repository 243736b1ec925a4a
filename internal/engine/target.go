package engine

// Target selection weights, in eighth units so the fractional multipliers
// stay integral. All bonuses are multiplicative: novelty triples the weight,
// a display name is worth another x1.5 and a distinguishing color x1.25.
const (
	targetBaseWeight    = 8
	targetNoveltyFactor = 3
)

func targetWeight(s Shop, visited map[string]bool) int {
	w := targetBaseWeight
	if !visited[s.ID] {
		w *= targetNoveltyFactor
	}
	if s.Meta.Name != "" {
		w = w * 3 / 2
	}
	if s.Meta.Color != "" {
		w = w * 5 / 4
	}
	return w
}

// SelectTargetShop picks the mission target with a single weighted draw,
// biased toward shops the player has not visited yet. The caller guarantees
// at least one candidate.
func SelectTargetShop(candidates []Shop, visited map[string]bool, st *Stream) Shop {
	if len(candidates) == 1 {
		return candidates[0]
	}
	total := 0
	for _, s := range candidates {
		total += targetWeight(s, visited)
	}
	r := st.Intn(total)
	for _, s := range candidates {
		r -= targetWeight(s, visited)
		if r < 0 {
			return s
		}
	}
	// unreachable for positive weights; last candidate is the safe default
	return candidates[len(candidates)-1]
}
