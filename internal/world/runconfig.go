package world

import (
	"github.com/nightfall/cryptcore/internal/config"
	"github.com/nightfall/cryptcore/internal/data"
)

// Bonuses are the meta-progression perks folded into a run at start.
type Bonuses struct {
	DamageMult      float64 // 1 = none
	MaxHealth       float64 // flat addition
	PickupMult      float64 // 1 = none
	ExtraWeapon     bool    // start with a second random base weapon at level 2
	HardModeAllowed bool
}

// NoBonuses is the neutral bonus set.
func NoBonuses() Bonuses {
	return Bonuses{DamageMult: 1, PickupMult: 1}
}

// RunConfig is the immutable per-run configuration built at session start and
// shared by reference with every component that needs it.
type RunConfig struct {
	Config  *config.Config
	Catalog *data.Catalog
	Seed    int64
	Bonuses Bonuses

	// HardMode is on only when requested in config and unlocked by meta progression.
	HardMode bool
}

// HardModeMult returns the enemy hp and damage multiplier for this run.
func (rc *RunConfig) HardModeMult() float64 {
	if rc.HardMode {
		return 1.5
	}
	return 1
}
