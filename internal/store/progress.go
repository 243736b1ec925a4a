package store

import (
	"context"
	errs "errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/pverbeek/shop-city/internal/engine"
)

// ProgressRepo implements engine.ProgressStore on Postgres. The uniqueness
// constraints on mission_completions and shop_visits are the source of truth
// for first-clear/first-visit: a 23505 is the expected replay signal and is
// reported as RecordDuplicate, never as an error.
type ProgressRepo struct{ db *DB }

func NewProgressRepo(db *DB) *ProgressRepo { return &ProgressRepo{db: db} }

var _ engine.ProgressStore = (*ProgressRepo)(nil)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errs.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *ProgressRepo) RecordCompletion(ctx context.Context, player uuid.UUID, variant engine.Variant, level int) (engine.RecordResult, error) {
	err := r.db.gorm.WithContext(ctx).Exec(
		`INSERT INTO mission_completions(id, player_id, mission_type, level) VALUES (?,?,?,?)`,
		uuid.New(), player, string(variant), level).Error
	if err != nil {
		if isUniqueViolation(err) {
			return engine.RecordDuplicate, nil
		}
		return 0, errors.Wrap(err, "record completion")
	}
	return engine.RecordInserted, nil
}

func (r *ProgressRepo) RecordVisit(ctx context.Context, player uuid.UUID, shopID string) (engine.RecordResult, error) {
	err := r.db.gorm.WithContext(ctx).Exec(
		`INSERT INTO shop_visits(player_id, shop_id) VALUES (?,?)`, player, shopID).Error
	if err != nil {
		if isUniqueViolation(err) {
			return engine.RecordDuplicate, nil
		}
		return 0, errors.Wrap(err, "record visit")
	}
	return engine.RecordInserted, nil
}

func (r *ProgressRepo) ApplyReward(ctx context.Context, player uuid.UUID, coins, xp int) (engine.Wallet, error) {
	row := r.db.gorm.WithContext(ctx).Raw(
		`INSERT INTO wallets(player_id, coins, xp) VALUES (?,?,?)
		ON CONFLICT (player_id) DO UPDATE SET coins = wallets.coins + EXCLUDED.coins, xp = wallets.xp + EXCLUDED.xp
		RETURNING coins, xp`, player, coins, xp).Row()
	var w engine.Wallet
	if err := row.Scan(&w.Coins, &w.XP); err != nil {
		return engine.Wallet{}, errors.Wrap(err, "apply reward")
	}
	return w, nil
}

// VisitedShops loads the player's visit log so target selection can bias
// toward shops they have not seen.
func (r *ProgressRepo) VisitedShops(ctx context.Context, player uuid.UUID) (map[string]bool, error) {
	rows, err := r.db.gorm.WithContext(ctx).Raw(
		`SELECT shop_id FROM shop_visits WHERE player_id = ?`, player).Rows()
	if err != nil {
		return nil, errors.Wrap(err, "load visits")
	}
	defer rows.Close()
	out := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "scan visit")
		}
		out[id] = true
	}
	return out, rows.Err()
}

// UnlockedLevel reads the saved frontier for one variant, defaulting to 1.
func (r *ProgressRepo) UnlockedLevel(ctx context.Context, player uuid.UUID, variant engine.Variant) (int, error) {
	row := r.db.gorm.WithContext(ctx).Raw(
		`SELECT COALESCE(MAX(level), 0) + 1 FROM mission_completions WHERE player_id = ? AND mission_type = ?`,
		player, string(variant)).Row()
	var level int
	if err := row.Scan(&level); err != nil {
		return 1, errors.Wrap(err, "load unlocked level")
	}
	if max := engine.MaxLevel(variant); level > max {
		level = max
	}
	return level, nil
}
