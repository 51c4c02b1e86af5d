package system

import (
	"github.com/nightfall/cryptcore/internal/core/ecs"
	coresys "github.com/nightfall/cryptcore/internal/core/system"
	"github.com/nightfall/cryptcore/internal/world"
)

// EnemyAISystem points every live enemy at the player. Phase 4 (EnemyAI).
type EnemyAISystem struct {
	world *world.State
}

func NewEnemyAISystem(ws *world.State) *EnemyAISystem {
	return &EnemyAISystem{world: ws}
}

func (s *EnemyAISystem) Phase() coresys.Phase { return coresys.PhaseEnemyAI }

func (s *EnemyAISystem) Update(clk coresys.Clock) {
	ws := s.world
	target := ws.Player.Pos
	ws.Enemies.Each(func(_ ecs.EntityID, e *world.Enemy) bool {
		e.Chase(target, clk.Now, ws.Rng)
		return true
	})
}
