package system

import (
	coresys "github.com/nightfall/cryptcore/internal/core/system"
	"github.com/nightfall/cryptcore/internal/world"
)

// InputSystem applies the merged movement vector to the player and ticks
// regeneration. Phase 0 (Input).
type InputSystem struct {
	world *world.State
}

func NewInputSystem(ws *world.State) *InputSystem {
	return &InputSystem{world: ws}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(clk coresys.Clock) {
	p := &s.world.Player
	p.Steer(s.world.Input, clk.Delta)
	p.Regenerate(clk.Delta)
}
