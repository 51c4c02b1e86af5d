package system

import (
	"github.com/nightfall/cryptcore/internal/core/ecs"
	coresys "github.com/nightfall/cryptcore/internal/core/system"
	"github.com/nightfall/cryptcore/internal/world"
)

// MovementSystem integrates every velocity and applies contact damage from
// regular enemies overlapping the player. Phase 6 (Movement).
type MovementSystem struct {
	world *world.State
}

func NewMovementSystem(ws *world.State) *MovementSystem {
	return &MovementSystem{world: ws}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseMovement }

func (s *MovementSystem) Update(clk coresys.Clock) {
	ws := s.world
	p := &ws.Player
	p.Integrate(clk.Delta)

	ws.Enemies.Each(func(_ ecs.EntityID, e *world.Enemy) bool {
		if e.Dying {
			return true
		}
		e.Integrate(clk.Delta)
		reach := e.Radius + p.Radius
		if e.Pos.DistSq(p.Pos) <= reach*reach {
			// HurtPlayer enforces the invulnerability window
			ws.HurtPlayer(e.Damage, e.Def.Key, clk.Now)
		}
		return true
	})

	if b := ws.ActiveBoss(); b != nil && !b.Defeated {
		b.Pos = b.Pos.Add(b.Vel.Scale(clk.Delta.Seconds()))
	}
}
