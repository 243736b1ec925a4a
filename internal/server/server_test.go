package server

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/pverbeek/shop-city/internal/engine"
)

type memoryStore struct {
	completions map[string]bool
	visits      map[string]bool
	wallet      engine.Wallet
}

func newMemoryStore() *memoryStore {
	return &memoryStore{completions: map[string]bool{}, visits: map[string]bool{}}
}

func (m *memoryStore) RecordCompletion(_ context.Context, player uuid.UUID, variant engine.Variant, level int) (engine.RecordResult, error) {
	key := fmt.Sprintf("%s|%s|%d", player, variant, level)
	if m.completions[key] {
		return engine.RecordDuplicate, nil
	}
	m.completions[key] = true
	return engine.RecordInserted, nil
}

func (m *memoryStore) RecordVisit(_ context.Context, player uuid.UUID, shopID string) (engine.RecordResult, error) {
	key := player.String() + "|" + shopID
	if m.visits[key] {
		return engine.RecordDuplicate, nil
	}
	m.visits[key] = true
	return engine.RecordInserted, nil
}

func (m *memoryStore) ApplyReward(_ context.Context, _ uuid.UUID, coins, xp int) (engine.Wallet, error) {
	m.wallet.Coins += coins
	m.wallet.XP += xp
	return m.wallet, nil
}

func (m *memoryStore) VisitedShops(_ context.Context, player uuid.UUID) (map[string]bool, error) {
	out := make(map[string]bool)
	prefix := player.String() + "|"
	for key := range m.visits {
		if strings.HasPrefix(key, prefix) {
			out[strings.TrimPrefix(key, prefix)] = true
		}
	}
	return out, nil
}

func (m *memoryStore) UnlockedLevel(_ context.Context, player uuid.UUID, variant engine.Variant) (int, error) {
	highest := 0
	for level := 1; level <= engine.MaxLevel(variant); level++ {
		if m.completions[fmt.Sprintf("%s|%s|%d", player, variant, level)] {
			highest = level
		}
	}
	unlocked := highest + 1
	if max := engine.MaxLevel(variant); unlocked > max {
		unlocked = max
	}
	return unlocked, nil
}

// completeActiveMission drives the active mission through briefing and all
// objectives. The engine mission is read directly: the wire snapshot is
// redacted and tests must not depend on it for secrets.
func completeActiveMission(t *testing.T, sess *session, v engine.Variant) {
	t.Helper()
	ctx := context.Background()
	sess.apply(ctx, eventMsg{Type: "brief"})
	for _, o := range sess.missions[v].Snapshot().Objectives {
		sess.apply(ctx, eventMsg{Type: "collect", ID: o.ID})
	}
	if got := sess.missions[v].Phase(); got != engine.PhaseCompleted {
		t.Fatalf("phase after collecting all: %s", got)
	}
}

func TestSessionMissionFlowSettlesOnce(t *testing.T) {
	store := newMemoryStore()
	sess := newSession(uuid.New(), engine.SessionSeedFromInt(42), store)
	ctx := context.Background()

	sess.apply(ctx, eventMsg{Type: "start", Variant: string(engine.VariantGhostHunt)})
	if got := sess.state(false).Snapshot.Phase; got != engine.PhaseBriefing {
		t.Fatalf("phase after start: %s", got)
	}
	completeActiveMission(t, sess, engine.VariantGhostHunt)
	cfg := engine.LevelConfigFor(engine.VariantGhostHunt, 1)
	if store.wallet.Coins != cfg.BaseCoins || store.wallet.XP != cfg.BaseXP {
		t.Fatalf("first clear not settled: %+v", store.wallet)
	}
	// further events must not settle the same completion again
	sess.apply(ctx, eventMsg{Type: "reveal"})
	if store.wallet.Coins != cfg.BaseCoins {
		t.Fatalf("completion settled twice: %+v", store.wallet)
	}
}

func TestSessionSettlesUnderConfiguredPlayer(t *testing.T) {
	store := newMemoryStore()
	player := uuid.New()
	srv := New(store, player, engine.SessionSeedFromInt(42))
	sess := srv.newSession(srv.seed)
	ctx := context.Background()

	sess.apply(ctx, eventMsg{Type: "start", Variant: string(engine.VariantGhostHunt)})
	completeActiveMission(t, sess, engine.VariantGhostHunt)
	key := fmt.Sprintf("%s|%s|%d", player, engine.VariantGhostHunt, 1)
	if !store.completions[key] {
		t.Fatalf("completion not recorded under the configured player: %v", store.completions)
	}
}

func TestSessionCompletionSettledPerVariant(t *testing.T) {
	store := newMemoryStore()
	sess := newSession(uuid.New(), engine.SessionSeedFromInt(42), store)
	ctx := context.Background()

	sess.apply(ctx, eventMsg{Type: "start", Variant: string(engine.VariantGhostHunt)})
	completeActiveMission(t, sess, engine.VariantGhostHunt)
	settledWallet := store.wallet

	// starting another variant and switching back must not settle the
	// already-settled hunt again
	sess.apply(ctx, eventMsg{Type: "start", Variant: string(engine.VariantHeist)})
	sess.apply(ctx, eventMsg{Type: "reveal", Variant: string(engine.VariantGhostHunt)})
	if store.wallet != settledWallet {
		t.Fatalf("completed hunt settled again after variant switch: %+v vs %+v", store.wallet, settledWallet)
	}
}

func TestSessionVisitSettlement(t *testing.T) {
	store := newMemoryStore()
	sess := newSession(uuid.New(), engine.SessionSeedFromInt(7), store)
	ctx := context.Background()
	sess.apply(ctx, eventMsg{Type: "start", Variant: string(engine.VariantHeist)})
	sess.apply(ctx, eventMsg{Type: "brief"})
	// visit a shop that is not the target so only the visit reward settles
	var targetID string
	for _, ind := range sess.missions[engine.VariantHeist].Snapshot().Indicators {
		if !ind.IsDecoy {
			targetID = ind.ShopID
		}
	}
	shopID := "dusty-books"
	if shopID == targetID {
		shopID = "ember-grill"
	}
	sess.apply(ctx, eventMsg{Type: "visit", ID: shopID})
	sess.apply(ctx, eventMsg{Type: "visit", ID: shopID})
	if store.wallet.Coins != engine.VisitCoins || store.wallet.XP != engine.VisitXP {
		t.Fatalf("visit reward wrong after revisit: %+v", store.wallet)
	}
}

func TestRedactSnapshotStripsSecrets(t *testing.T) {
	snap := engine.Snapshot{
		Clues: []engine.MissionClue{
			{ID: "c1", Text: "it smells of fresh bread", Revealed: true},
			{ID: "c2", Text: "east of the plaza", Revealed: false},
		},
		Indicators: []engine.MissionIndicator{
			{ShopID: "true-shop", Type: engine.IndicatorBeam},
			{ShopID: "decoy-shop", Type: engine.IndicatorBeam, IsDecoy: true, Tell: engine.TellGlitch},
		},
	}
	out := redactSnapshot(snap)
	if out.Clues[0].Text != "it smells of fresh bread" {
		t.Fatalf("revealed clue lost its text: %+v", out.Clues[0])
	}
	if out.Clues[1].Text != "" {
		t.Fatalf("hidden clue text on the wire: %+v", out.Clues[1])
	}
	for _, ind := range out.Indicators {
		if ind.IsDecoy || ind.Tell != "" {
			t.Fatalf("decoy marking on the wire: %+v", ind)
		}
	}
}

func TestStateNeverLeaksDecoyMarking(t *testing.T) {
	sess := newSession(uuid.New(), engine.SessionSeedFromInt(42), nil)
	sess.apply(context.Background(), eventMsg{Type: "start", Variant: string(engine.VariantMirrorWorld)})

	snap := sess.state(false).Snapshot
	for _, c := range snap.Clues {
		if !c.Revealed && c.Text != "" {
			t.Fatalf("hidden clue text on the wire: %+v", c)
		}
	}
	for _, ind := range snap.Indicators {
		if ind.IsDecoy || ind.Tell != "" {
			t.Fatalf("decoy marking on the wire: %+v", ind)
		}
	}
	// the engine itself keeps the secrets for visit resolution
	trueMarkers := 0
	for _, ind := range sess.missions[engine.VariantMirrorWorld].Snapshot().Indicators {
		if !ind.IsDecoy {
			trueMarkers++
		}
	}
	if trueMarkers != 1 {
		t.Fatalf("engine snapshot lost the true marker: %d", trueMarkers)
	}
}

func TestSessionHydratesSavedProgress(t *testing.T) {
	store := newMemoryStore()
	player := uuid.New()
	ctx := context.Background()
	for level := 1; level <= 2; level++ {
		if _, err := store.RecordCompletion(ctx, player, engine.VariantGhostHunt, level); err != nil {
			t.Fatalf("seed completion: %v", err)
		}
	}

	sess := newSession(player, engine.SessionSeedFromInt(1), store)
	sess.hydrate(ctx)
	sess.apply(ctx, eventMsg{Type: "level", Level: 3, Variant: string(engine.VariantGhostHunt)})
	if got := sess.state(false).Snapshot.Level; got != 3 {
		t.Fatalf("restored frontier did not unlock level 3: %d", got)
	}
}

func TestSessionRejectsLockedLevel(t *testing.T) {
	sess := newSession(uuid.New(), engine.SessionSeedFromInt(1), nil)
	sess.apply(context.Background(), eventMsg{Type: "level", Level: 4, Variant: string(engine.VariantMirrorWorld)})
	if got := sess.state(false).Snapshot.Level; got != 1 {
		t.Fatalf("locked level applied: %d", got)
	}
}
