package engine

import "testing"

func TestGenerateIndicatorsInvariant(t *testing.T) {
	shops := fixtureShops()
	target := shops[1]
	for seed := int64(0); seed < 100; seed++ {
		indicators := GenerateIndicators(target, shops, SessionSeedFromInt(seed).Stream("indicators"), 0, 2)
		trueCount := 0
		seen := map[string]bool{}
		for _, ind := range indicators {
			if ind.Type != indicators[0].Type {
				t.Fatalf("seed %d: mixed visual types %s vs %s", seed, ind.Type, indicators[0].Type)
			}
			if !ind.IsDecoy {
				trueCount++
				if ind.ShopID != target.ID {
					t.Fatalf("seed %d: true indicator points at %s", seed, ind.ShopID)
				}
				if ind.Tell != "" {
					t.Fatalf("seed %d: true indicator carries a tell %q", seed, ind.Tell)
				}
				continue
			}
			if ind.ShopID == target.ID {
				t.Fatalf("seed %d: decoy placed on the target", seed)
			}
			if seen[ind.ShopID] {
				t.Fatalf("seed %d: duplicate decoy at %s", seed, ind.ShopID)
			}
			seen[ind.ShopID] = true
			if ind.Tell == "" {
				t.Fatalf("seed %d: decoy missing tell", seed)
			}
		}
		if trueCount != 1 {
			t.Fatalf("seed %d: %d true indicators", seed, trueCount)
		}
		decoys := len(indicators) - 1
		if decoys < 0 || decoys > 2 {
			t.Fatalf("seed %d: decoy count %d out of [0,2]", seed, decoys)
		}
	}
}

func TestGenerateIndicatorsDeterminism(t *testing.T) {
	shops := fixtureShops()
	target := shops[0]
	a := GenerateIndicators(target, shops, SessionSeedFromInt(42).Stream("indicators"), 1, 2)
	b := GenerateIndicators(target, shops, SessionSeedFromInt(42).Stream("indicators"), 1, 2)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("indicator %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateIndicatorsClampsToAvailableShops(t *testing.T) {
	shops := fixtureShops()[:2] // one possible decoy only
	indicators := GenerateIndicators(shops[0], shops, SessionSeedFromInt(3).Stream("indicators"), 2, 2)
	if len(indicators) > 2 {
		t.Fatalf("decoys exceed available non-target shops: %d markers", len(indicators))
	}
}

func TestIndicatorStreamDecorrelatedFromClues(t *testing.T) {
	seed := SessionSeedFromInt(42)
	a := seed.Stream("clues").Uint64()
	b := seed.Stream("indicators").Uint64()
	if a == b {
		t.Fatalf("clue and indicator streams must not coincide")
	}
}
