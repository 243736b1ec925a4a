package main

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/pverbeek/shop-city/internal/engine"
	"github.com/pverbeek/shop-city/internal/server"
	"github.com/pverbeek/shop-city/internal/store"
	"github.com/pverbeek/shop-city/internal/ui"
	"github.com/pverbeek/shop-city/internal/util"
)

var (
	version      = "0.1.0"
	seedAlphabet = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	seedFlag := flag.String("seed", "", "Session seed string (optional; random if omitted)")
	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "PostgreSQL DSN (empty runs without persistence)")
	player := flag.String("player", "drifter", "Player name")
	serve := flag.String("serve", "", "Listen address for the websocket bridge (empty runs the TUI)")
	theme := flag.String("theme", "neon", "TUI theme: neon|noir|arcade")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "shopcity [--seed seedstring] [--dsn DSN] [--player name] [--serve addr] [--theme name] | migrate up|down | version\n")
	}
	flag.Parse()

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Println("shopcity", version)
			return
		case "migrate":
			if len(args) < 2 {
				log.Fatal("migrate requires 'up' or 'down'")
			}
			if *dsn == "" {
				log.Fatal("migrate requires a DSN")
			}
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			migrator, err := store.NewMigrator(*dsn)
			if err != nil {
				log.Fatal(err)
			}
			switch args[1] {
			case "up":
				if err := migrator.Up(ctx); err != nil && err != store.ErrNoChange {
					log.Fatal(err)
				}
				fmt.Println("Migrations applied")
			case "down":
				if err := migrator.Down(ctx); err != nil && err != store.ErrNoChange {
					log.Fatal(err)
				}
				fmt.Println("Migrations rolled back")
			default:
				log.Fatal("unknown migrate action; use up|down")
			}
			return
		}
	}

	seedText := strings.TrimSpace(*seedFlag)
	if seedText == "" {
		generated, err := generateSeed()
		if err != nil {
			log.Fatalf("failed to generate seed: %v", err)
		}
		seedText = generated
		fmt.Printf("New session seed: %s\n", seedText)
	}

	cfg := util.Config{
		SeedText:   seedText,
		DSN:        *dsn,
		PlayerName: *player,
		ListenAddr: *serve,
		Theme:      *theme,
	}

	ctx := context.Background()

	var progress engine.ProgressStore
	playerID := uuid.New()
	if cfg.DSN != "" {
		mig, err := store.NewMigrator(cfg.DSN)
		if err != nil {
			log.Fatalf("migrations init failed: %v", err)
		}
		migCtx, cancelMig := context.WithTimeout(ctx, 30*time.Second)
		if err := mig.Up(migCtx); err != nil && err != store.ErrNoChange {
			cancelMig()
			log.Fatalf("migrations failed: %v", err)
		}
		cancelMig()

		db, err := store.Open(ctx, cfg)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()
		p, err := store.NewPlayerRepo(db).Ensure(ctx, cfg.PlayerName)
		if err != nil {
			log.Fatalf("failed to ensure player: %v", err)
		}
		playerID = p.ID
		progress = store.NewProgressRepo(db)
	}

	if cfg.ListenAddr != "" {
		if progress == nil {
			log.Fatal("the websocket bridge requires a DSN")
		}
		seed, err := engine.NewSessionSeed(cfg.SeedText)
		if err != nil {
			log.Fatalf("bad seed: %v", err)
		}
		if err := server.New(progress, playerID, seed).Run(ctx, cfg.ListenAddr); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := ui.Run(ctx, progress, playerID, cfg); err != nil {
		log.Fatal(err)
	}
}

func generateSeed() (string, error) {
	buf := make([]byte, 15) // 24 characters base32
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToLower(seedAlphabet.EncodeToString(buf)), nil
}
