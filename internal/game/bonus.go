package game

import (
	"time"

	"github.com/nightfall/cryptcore/internal/data"
	"github.com/nightfall/cryptcore/internal/persist"
	"github.com/nightfall/cryptcore/internal/world"
)

// Unlock thresholds for meta-progression bonuses.
const (
	firstBloodKills  = 100
	survivorTime     = 10 * time.Minute
	cryptMasterTime  = 30 * time.Minute
	firstBloodDamage = 1.05
	survivorHealth   = 10
	collectorPickup  = 1.15
)

// UnlockedBonuses folds the meta-progression record into the perks of the
// next run.
func UnlockedBonuses(meta persist.Meta, cat *data.Catalog) world.Bonuses {
	b := world.NoBonuses()
	if meta.TotalKills >= firstBloodKills {
		b.DamageMult = firstBloodDamage
	}
	if meta.BestTime >= survivorTime {
		b.MaxHealth = survivorHealth
	}
	collector := true
	for _, id := range cat.BaseWeaponIDs() {
		if !meta.HasWeapon(id) {
			collector = false
			break
		}
	}
	if collector {
		b.PickupMult = collectorPickup
	}
	b.ExtraWeapon = len(meta.EvolutionsDiscovered) > 0
	b.HardModeAllowed = meta.BestTime >= cryptMasterTime
	return b
}
