package weapon

import (
	"time"

	"github.com/nightfall/cryptcore/internal/core/system"
	"github.com/nightfall/cryptcore/internal/world"
)

// fireOrb launches slow orbs toward the nearest target; after launch they fly
// straight.
func (w *Weapon) fireOrb(ws *world.State, now time.Duration) {
	owner := &ws.Player
	dir := aim(ws, owner.Pos, owner.Facing)
	for i := 0; i < w.ProjectileCount; i++ {
		p := w.spawn(KindOrb, owner.Pos)
		p.setPierce(0)
		p.Radius = w.Area
		p.Vel = spread(dir, i, w.ProjectileCount, 0.5).Scale(w.def.Base.Speed)
		p.Expires = now + w.def.Base.Duration
	}
}

// updateOrb re-damages any overlapping target whose per-orb cooldown elapsed.
func (w *Weapon) updateOrb(ws *world.State, p *Projectile, clk system.Clock) bool {
	if clk.Now >= p.Expires {
		return true
	}
	p.Pos = p.Pos.Add(p.Vel.Scale(clk.Delta.Seconds()))
	ws.Resolve(p.strike(world.Circle(p.Pos, p.Radius), p.Damage, w.def.Params.TickInterval), clk.Now)
	return false
}
