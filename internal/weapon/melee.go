package weapon

import (
	"time"

	"github.com/nightfall/cryptcore/internal/core/system"
	"github.com/nightfall/cryptcore/internal/vmath"
	"github.com/nightfall/cryptcore/internal/world"
)

// fireMelee places a swing hitbox on the side the owner last faced. Extra
// projectiles alternate to the opposite side, then stack in rows above.
func (w *Weapon) fireMelee(ws *world.State, now time.Duration) {
	owner := &ws.Player
	prm := &w.def.Params
	side := 1.0
	if owner.Facing.X < 0 {
		side = -1
	}
	length := prm.Length * (w.Area / w.def.Base.Area)
	for i := 0; i < w.ProjectileCount; i++ {
		s := side
		if i%2 == 1 {
			s = -side
		}
		offset := vmath.V(s*(length/2+owner.Radius), -float64(i/2)*w.Area)
		p := w.spawn(KindSwing, owner.Pos.Add(offset))
		p.Expires = now + w.def.Base.Duration
		p.Swing = swingState{Offset: offset, W: length, H: w.Area}

		if prm.TrailSegments > 0 {
			w.dropTrail(owner.Pos.Add(offset), s, length, now)
		}
	}
}

// dropTrail lays a row of short-lived ground-fire zones along a swing.
func (w *Weapon) dropTrail(center vmath.Vec2, side, length float64, now time.Duration) {
	prm := &w.def.Params
	n := prm.TrailSegments
	seg := length / float64(n)
	start := center.X - side*length/2
	for i := 0; i < n; i++ {
		pos := vmath.V(start+side*seg*(float64(i)+0.5), center.Y)
		p := w.spawn(KindTrail, pos)
		p.Damage = prm.TrailDamage * w.mods.Damage
		p.setPierce(0)
		p.Expires = now + prm.TrailDuration
		p.Zone = zoneState{
			Shape:    world.ShapeRect,
			W:        seg,
			H:        w.Area / 2,
			Start:    now,
			Interval: prm.TrailTick,
			NextTick: now,
		}
	}
}

// updateSwing keeps the hitbox attached to the owner and strikes each target
// once for the swing's lifetime.
func (w *Weapon) updateSwing(ws *world.State, p *Projectile, clk system.Clock) bool {
	if clk.Now >= p.Expires {
		return true
	}
	p.Pos = ws.Player.Pos.Add(p.Swing.Offset)
	_, exhausted := ws.Resolve(p.strike(world.Rect(p.Pos, p.Swing.W, p.Swing.H), p.Damage, 0), clk.Now)
	return exhausted
}
