package system

import (
	coresys "github.com/nightfall/cryptcore/internal/core/system"
	"github.com/nightfall/cryptcore/internal/weapon"
	"github.com/nightfall/cryptcore/internal/world"
)

// WeaponSystem re-indexes enemies, then fires and advances every weapon the
// player holds. Phase 5 (Weapons).
type WeaponSystem struct {
	world   *world.State
	arsenal *weapon.Arsenal
}

func NewWeaponSystem(ws *world.State, arsenal *weapon.Arsenal) *WeaponSystem {
	return &WeaponSystem{world: ws, arsenal: arsenal}
}

func (s *WeaponSystem) Phase() coresys.Phase { return coresys.PhaseWeapons }

func (s *WeaponSystem) Update(clk coresys.Clock) {
	if s.world.Player.Dead {
		return
	}
	s.world.RebuildGrid()
	s.arsenal.Update(s.world, clk)
}
