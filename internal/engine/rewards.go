package engine

import (
	"context"

	"github.com/google/uuid"
)

// RecordResult distinguishes the two expected outcomes of an insert under a
// uniqueness constraint. A duplicate is normal gameplay (a replay), not an
// error; anything actually wrong comes back on the error channel.
type RecordResult int

const (
	RecordInserted RecordResult = iota
	RecordDuplicate
)

// Wallet is the player's running coin and XP totals.
type Wallet struct {
	Coins int
	XP    int
}

// ProgressStore is the persistence port for reward settlement and progression
// recall. The Record methods must map their uniqueness violation onto
// RecordDuplicate and reserve the error return for genuine failures.
type ProgressStore interface {
	RecordCompletion(ctx context.Context, player uuid.UUID, variant Variant, level int) (RecordResult, error)
	RecordVisit(ctx context.Context, player uuid.UUID, shopID string) (RecordResult, error)
	ApplyReward(ctx context.Context, player uuid.UUID, coins, xp int) (Wallet, error)
	VisitedShops(ctx context.Context, player uuid.UUID) (map[string]bool, error)
	UnlockedLevel(ctx context.Context, player uuid.UUID, variant Variant) (int, error)
}

// Settlement is the resolved reward for one completion or visit.
type Settlement struct {
	Coins      int
	XP         int
	FirstClear bool
}

// ReplayXP is the fixed stipend for clearing an already-cleared level.
const ReplayXP = 10

// Visit rewards are flat and only paid on the first visit to a shop.
const (
	VisitCoins = 5
	VisitXP    = 15
)

// SettleCompletion resolves first-clear vs replay through the store's
// uniqueness constraint. First clear pays the full base rewards; a replay pays
// the XP stipend and no coins. Any unexpected store error denies all rewards
// (fail closed) and is returned for the caller to decide on a retry.
func SettleCompletion(ctx context.Context, store ProgressStore, player uuid.UUID, variant Variant, level, baseCoins, baseXP int) (Settlement, error) {
	res, err := store.RecordCompletion(ctx, player, variant, level)
	if err != nil {
		return Settlement{}, err
	}
	settlement := Settlement{Coins: baseCoins, XP: baseXP, FirstClear: true}
	if res == RecordDuplicate {
		settlement = Settlement{Coins: 0, XP: ReplayXP, FirstClear: false}
	}
	if _, err := store.ApplyReward(ctx, player, settlement.Coins, settlement.XP); err != nil {
		return Settlement{}, err
	}
	return settlement, nil
}

// LoadProgress primes each mission with the player's saved level frontier and
// visit log, so a process restart resumes where the last one stopped. A
// mission whose load fails keeps fresh progression; the first error is
// returned so callers can surface it.
func LoadProgress(ctx context.Context, store ProgressStore, player uuid.UUID, missions map[Variant]*Mission) error {
	visited, err := store.VisitedShops(ctx, player)
	var firstErr error
	if err != nil {
		visited = nil
		firstErr = err
	}
	for v, m := range missions {
		unlocked, err := store.UnlockedLevel(ctx, player, v)
		if err != nil {
			unlocked = 1
			if firstErr == nil {
				firstErr = err
			}
		}
		m.RestoreProgress(unlocked, visited)
	}
	return firstErr
}

// SettleVisit pays the flat first-visit reward. Revisits settle to zero with
// no error: the duplicate row is the expected signal, not a failure.
func SettleVisit(ctx context.Context, store ProgressStore, player uuid.UUID, shopID string) (Settlement, error) {
	res, err := store.RecordVisit(ctx, player, shopID)
	if err != nil {
		return Settlement{}, err
	}
	if res == RecordDuplicate {
		return Settlement{}, nil
	}
	if _, err := store.ApplyReward(ctx, player, VisitCoins, VisitXP); err != nil {
		return Settlement{}, err
	}
	return Settlement{Coins: VisitCoins, XP: VisitXP, FirstClear: true}, nil
}
