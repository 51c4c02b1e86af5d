package weapon

import (
	"time"

	"github.com/nightfall/cryptcore/internal/core/system"
	"github.com/nightfall/cryptcore/internal/world"
)

// boomerangSpread is the angle between simultaneous boomerangs, radians.
const boomerangSpread = 0.35

// returnGrace bounds a boomerang that cannot catch a fleeing owner.
const returnGrace = 3 * time.Second

func (w *Weapon) fireReturning(ws *world.State, now time.Duration) {
	owner := &ws.Player
	speed := w.def.Base.Speed
	dir := aim(ws, owner.Pos, owner.Facing)
	outbound := time.Duration(w.def.Params.OutboundDistance / speed * float64(time.Second))
	for i := 0; i < w.ProjectileCount; i++ {
		p := w.spawn(KindBoomerang, owner.Pos)
		p.Radius = w.Area
		p.Vel = spread(dir, i, w.ProjectileCount, boomerangSpread).Scale(speed)
		p.Return = returnState{Speed: speed}
		p.Expires = now + 2*outbound + returnGrace
	}
}

// updateBoomerang runs the outbound/return state machine. The hit-set resets
// on the turn so the return trip can strike the same targets again.
func (w *Weapon) updateBoomerang(ws *world.State, p *Projectile, clk system.Clock) bool {
	if clk.Now >= p.Expires {
		return true
	}
	r := &p.Return
	step := r.Speed * clk.Delta.Seconds()
	if !r.Returning {
		p.Pos = p.Pos.Add(p.Vel.Norm().Scale(step))
		r.Traveled += step
		if r.Traveled >= w.def.Params.OutboundDistance {
			r.Returning = true
			p.Hits.Reset()
		}
	} else {
		to := ws.Player.Pos.Sub(p.Pos)
		if to.Len() <= w.def.Params.ReturnRadius {
			return true
		}
		p.Vel = to.Norm().Scale(r.Speed)
		if step >= to.Len() {
			p.Pos = ws.Player.Pos
		} else {
			p.Pos = p.Pos.Add(p.Vel.Scale(clk.Delta.Seconds()))
		}
	}
	_, exhausted := ws.Resolve(p.strike(world.Circle(p.Pos, p.Radius), p.Damage, 0), clk.Now)
	return exhausted
}
