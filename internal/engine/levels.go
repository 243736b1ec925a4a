package engine

// Variant names the embedded minigames that share the mission machine.
type Variant string

const (
	VariantMirrorWorld Variant = "mirror_world"
	VariantHeist       Variant = "heist"
	VariantGhostHunt   Variant = "ghost_hunt"
)

var AllVariants = []Variant{VariantMirrorWorld, VariantHeist, VariantGhostHunt}

// LevelConfig is the static parameter set for one difficulty level of one
// variant. Times are in seconds; speeds in world units per second.
type LevelConfig struct {
	Level          int
	TimeLimit      float64
	Lives          int
	ObjectiveCount int
	PursuerCount   int
	PursuerSpeed   float64
	MinDecoys      int
	MaxDecoys      int
	TimeBonus      float64
	HasEscape      bool
	BaseCoins      int
	BaseXP         int
}

var mirrorWorldLevels = []LevelConfig{
	{Level: 1, TimeLimit: 120, Lives: 3, ObjectiveCount: 3, PursuerCount: 1, PursuerSpeed: 2.2, MinDecoys: 0, MaxDecoys: 1, TimeBonus: 10, HasEscape: true, BaseCoins: 100, BaseXP: 200},
	{Level: 2, TimeLimit: 110, Lives: 3, ObjectiveCount: 4, PursuerCount: 2, PursuerSpeed: 2.6, MinDecoys: 0, MaxDecoys: 2, TimeBonus: 9, HasEscape: true, BaseCoins: 150, BaseXP: 280},
	{Level: 3, TimeLimit: 100, Lives: 2, ObjectiveCount: 4, PursuerCount: 2, PursuerSpeed: 3.0, MinDecoys: 1, MaxDecoys: 2, TimeBonus: 8, HasEscape: true, BaseCoins: 210, BaseXP: 380},
	{Level: 4, TimeLimit: 95, Lives: 2, ObjectiveCount: 5, PursuerCount: 3, PursuerSpeed: 3.4, MinDecoys: 1, MaxDecoys: 2, TimeBonus: 7, HasEscape: true, BaseCoins: 280, BaseXP: 500},
	{Level: 5, TimeLimit: 90, Lives: 2, ObjectiveCount: 6, PursuerCount: 4, PursuerSpeed: 3.8, MinDecoys: 2, MaxDecoys: 2, TimeBonus: 6, HasEscape: true, BaseCoins: 360, BaseXP: 650},
}

var heistLevels = []LevelConfig{
	{Level: 1, TimeLimit: 150, Lives: 2, ObjectiveCount: 2, PursuerCount: 2, PursuerSpeed: 1.8, MinDecoys: 0, MaxDecoys: 1, TimeBonus: 12, BaseCoins: 120, BaseXP: 220},
	{Level: 2, TimeLimit: 135, Lives: 2, ObjectiveCount: 3, PursuerCount: 3, PursuerSpeed: 2.1, MinDecoys: 0, MaxDecoys: 2, TimeBonus: 10, BaseCoins: 180, BaseXP: 320},
	{Level: 3, TimeLimit: 120, Lives: 1, ObjectiveCount: 3, PursuerCount: 4, PursuerSpeed: 2.4, MinDecoys: 1, MaxDecoys: 2, TimeBonus: 9, BaseCoins: 250, BaseXP: 440},
	{Level: 4, TimeLimit: 110, Lives: 1, ObjectiveCount: 4, PursuerCount: 5, PursuerSpeed: 2.8, MinDecoys: 1, MaxDecoys: 2, TimeBonus: 8, BaseCoins: 330, BaseXP: 580},
}

var ghostHuntLevels = []LevelConfig{
	{Level: 1, TimeLimit: 90, Lives: 3, ObjectiveCount: 3, PursuerCount: 3, PursuerSpeed: 1.5, MinDecoys: 0, MaxDecoys: 2, TimeBonus: 8, BaseCoins: 90, BaseXP: 180},
	{Level: 2, TimeLimit: 80, Lives: 3, ObjectiveCount: 4, PursuerCount: 4, PursuerSpeed: 1.9, MinDecoys: 1, MaxDecoys: 2, TimeBonus: 7, BaseCoins: 140, BaseXP: 260},
	{Level: 3, TimeLimit: 75, Lives: 2, ObjectiveCount: 5, PursuerCount: 5, PursuerSpeed: 2.3, MinDecoys: 1, MaxDecoys: 2, TimeBonus: 6, BaseCoins: 200, BaseXP: 360},
}

func variantLevels(v Variant) []LevelConfig {
	switch v {
	case VariantHeist:
		return heistLevels
	case VariantGhostHunt:
		return ghostHuntLevels
	default:
		return mirrorWorldLevels
	}
}

// LevelConfigFor looks up the static config for a variant level. Out-of-range
// levels fall back to level 1 rather than failing; a bad saved progression
// must never crash a mission start.
func LevelConfigFor(v Variant, level int) LevelConfig {
	levels := variantLevels(v)
	if level < 1 || level > len(levels) {
		return levels[0]
	}
	return levels[level-1]
}

// MaxLevel is the highest configured level for a variant.
func MaxLevel(v Variant) int { return len(variantLevels(v)) }
