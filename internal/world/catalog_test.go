package world

import (
	"testing"

	"github.com/pverbeek/shop-city/internal/engine"
)

func TestCatalogAllEligible(t *testing.T) {
	shops := Shops()
	if len(engine.EligibleShops(shops)) != len(shops) {
		t.Fatalf("catalog contains ineligible shops")
	}
	seen := map[string]bool{}
	for _, s := range shops {
		if seen[s.ID] {
			t.Fatalf("duplicate shop id %q", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestCatalogSupportsMissionStart(t *testing.T) {
	m := engine.NewMission(engine.VariantMirrorWorld, engine.NewStepClock())
	if !m.Start(engine.SessionSeedFromInt(42), Shops(), SpawnPoint()) {
		t.Fatalf("bundled catalog cannot start a mission")
	}
}

func TestShopsReturnsCopy(t *testing.T) {
	a := Shops()
	a[0].ID = "mutated"
	if Shops()[0].ID == "mutated" {
		t.Fatalf("catalog aliased to callers")
	}
}
