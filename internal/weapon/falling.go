package weapon

import (
	"time"

	"github.com/nightfall/cryptcore/internal/core/system"
	"github.com/nightfall/cryptcore/internal/vmath"
	"github.com/nightfall/cryptcore/internal/world"
)

// fireFalling drops projectiles from above onto random points around the owner.
func (w *Weapon) fireFalling(ws *world.State, now time.Duration) {
	prm := &w.def.Params
	speed := w.def.Base.Speed
	fall := time.Duration(prm.FallHeight / speed * float64(time.Second))
	for i := 0; i < w.ProjectileCount; i++ {
		target := ws.RandomInCircle(ws.Player.Pos, prm.ZoneRadius)
		p := w.spawn(KindDagger, target.Sub(vmath.V(0, prm.FallHeight)))
		p.Radius = w.Area
		p.Vel = vmath.V(0, speed)
		p.Fall = fallState{Target: target, Height: prm.FallHeight, Speed: speed}
		p.Expires = now + fall + time.Second
	}
}

// updateDagger falls and strikes everything around the impact point once.
func (w *Weapon) updateDagger(ws *world.State, p *Projectile, clk system.Clock) bool {
	if clk.Now >= p.Expires {
		return true
	}
	f := &p.Fall
	f.Height -= f.Speed * clk.Delta.Seconds()
	if f.Height > 0 {
		p.Pos = f.Target.Sub(vmath.V(0, f.Height))
		return false
	}
	p.Pos = f.Target
	ws.Resolve(p.strike(world.Circle(f.Target, p.Radius), p.Damage, 0), clk.Now)
	return true
}
