package engine

import "testing"

func TestLevelConfigDefensiveFallback(t *testing.T) {
	for _, v := range AllVariants {
		if got := LevelConfigFor(v, 0); got.Level != 1 {
			t.Fatalf("%s level 0 should fall back to 1, got %d", v, got.Level)
		}
		if got := LevelConfigFor(v, 99); got.Level != 1 {
			t.Fatalf("%s level 99 should fall back to 1, got %d", v, got.Level)
		}
		if got := LevelConfigFor(v, -3); got.Level != 1 {
			t.Fatalf("%s negative level should fall back to 1, got %d", v, got.Level)
		}
	}
}

func TestLevelTablesSane(t *testing.T) {
	for _, v := range AllVariants {
		max := MaxLevel(v)
		if max < 3 {
			t.Fatalf("%s: too few levels (%d)", v, max)
		}
		for level := 1; level <= max; level++ {
			cfg := LevelConfigFor(v, level)
			if cfg.Level != level {
				t.Fatalf("%s table misnumbered at %d: %d", v, level, cfg.Level)
			}
			if cfg.TimeLimit <= 0 || cfg.Lives <= 0 || cfg.ObjectiveCount <= 0 || cfg.PursuerCount <= 0 {
				t.Fatalf("%s level %d has a non-positive parameter: %+v", v, level, cfg)
			}
			if cfg.MinDecoys < 0 || cfg.MaxDecoys < cfg.MinDecoys {
				t.Fatalf("%s level %d decoy bounds invalid: [%d,%d]", v, level, cfg.MinDecoys, cfg.MaxDecoys)
			}
			if cfg.BaseCoins <= 0 || cfg.BaseXP <= 0 {
				t.Fatalf("%s level %d rewards missing", v, level)
			}
		}
	}
}

func TestDifficultyRampsUp(t *testing.T) {
	for _, v := range AllVariants {
		for level := 2; level <= MaxLevel(v); level++ {
			prev, cur := LevelConfigFor(v, level-1), LevelConfigFor(v, level)
			if cur.TimeLimit > prev.TimeLimit {
				t.Fatalf("%s: time limit grows at level %d", v, level)
			}
			if cur.PursuerSpeed < prev.PursuerSpeed {
				t.Fatalf("%s: pursuers slow down at level %d", v, level)
			}
		}
	}
}
