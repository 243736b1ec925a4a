package store

import (
	"context"
	"database/sql"
	errs "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pverbeek/shop-city/internal/util"
)

var ErrNoChange = errs.New("no change")

// DB wraps gorm.DB for repositories and exposes Close.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
}

func (d *DB) Close() error   { return d.sql.Close() }
func (d *DB) Gorm() *gorm.DB { return d.gorm }

// Open connects to DB per config.
func Open(ctx context.Context, cfg util.Config) (*DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("missing DSN")
	}
	// Postgres-only
	gdb, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sdb.SetConnMaxLifetime(30 * time.Minute)
	sdb.SetMaxOpenConns(10)
	sdb.SetMaxIdleConns(5)
	if err := sdb.PingContext(ctx); err != nil {
		return nil, err
	}
	return &DB{gorm: gdb, sql: sdb}, nil
}

// Player is the DB-layer account row.
type Player struct {
	ID   uuid.UUID
	Name string
}

// PlayerRepo basic operations.
type PlayerRepo struct{ db *DB }

func NewPlayerRepo(db *DB) *PlayerRepo { return &PlayerRepo{db: db} }

// Ensure returns the player with the given name, creating it on first sight.
func (r *PlayerRepo) Ensure(ctx context.Context, name string) (Player, error) {
	id := uuid.New()
	err := r.db.gorm.WithContext(ctx).Exec(
		`INSERT INTO players(id, name) VALUES (?, ?) ON CONFLICT (name) DO NOTHING`, id, name).Error
	if err != nil {
		return Player{}, errors.Wrap(err, "ensure player")
	}
	row := r.db.gorm.WithContext(ctx).Raw(`SELECT id, name FROM players WHERE name = ?`, name).Row()
	var p Player
	if err := row.Scan(&p.ID, &p.Name); err != nil {
		return Player{}, errors.Wrap(err, "load player")
	}
	return p, nil
}

// WithTx executes fn within a database transaction.
func (d *DB) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.gorm.WithContext(ctx).Transaction(fn)
}
