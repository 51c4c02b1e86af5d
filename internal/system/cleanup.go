package system

import (
	"github.com/nightfall/cryptcore/internal/core/ecs"
	coresys "github.com/nightfall/cryptcore/internal/core/system"
	"github.com/nightfall/cryptcore/internal/world"
)

// CleanupSystem flushes the deferred release queue and retires expired
// chests at tick end. Phase 8 (Cleanup).
type CleanupSystem struct {
	world *world.State
}

func NewCleanupSystem(ws *world.State) *CleanupSystem {
	return &CleanupSystem{world: ws}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(clk coresys.Clock) {
	ws := s.world
	ws.Releases.Flush(clk.Now)
	ws.Chests.Each(func(id ecs.EntityID, c *world.Chest) bool {
		if clk.Now >= c.Expires {
			ws.Chests.Release(id)
		}
		return true
	})
}
