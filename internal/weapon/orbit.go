package weapon

import (
	"math"
	"time"

	"github.com/nightfall/cryptcore/internal/core/ecs"
	"github.com/nightfall/cryptcore/internal/core/system"
	"github.com/nightfall/cryptcore/internal/vmath"
	"github.com/nightfall/cryptcore/internal/world"
)

// boltRadius is the collision radius of orbiter bolts.
const boltRadius = 6

// pulseRate is how fast skull orbits breathe between min and max radius,
// radians per second.
const pulseRate = 1.5

// fireOrbit keeps exactly ProjectileCount orbiters alive. When the count
// changed (level up) the ring is rebuilt so spacing stays even.
func (w *Weapon) fireOrbit(ws *world.State, now time.Duration) {
	live := 0
	w.pool.Each(func(_ ecs.EntityID, p *Projectile) bool {
		if p.Kind == KindOrbiter {
			live++
		}
		return true
	})
	if live == w.ProjectileCount {
		return
	}
	w.pool.Each(func(id ecs.EntityID, p *Projectile) bool {
		if p.Kind == KindOrbiter {
			w.pool.Release(id)
		}
		return true
	})
	prm := &w.def.Params
	for i := 0; i < w.ProjectileCount; i++ {
		p := w.spawn(KindOrbiter, ws.Player.Pos)
		p.setPierce(0)
		p.Radius = prm.Size
		p.Orbit = orbitState{
			Index:    i,
			Count:    w.ProjectileCount,
			Period:   prm.RotationPeriod,
			NextBolt: now + prm.BoltCooldown*time.Duration(i+1)/time.Duration(w.ProjectileCount),
		}
	}
}

// orbitRadius is the current distance of orbiters from the owner.
func (w *Weapon) orbitRadius(now time.Duration) float64 {
	prm := &w.def.Params
	if prm.MaxRadius <= 0 {
		return w.Area
	}
	t := 0.5 + 0.5*math.Sin(now.Seconds()*pulseRate)
	return prm.MinRadius + (prm.MaxRadius-prm.MinRadius)*t
}

// updateOrbiter places the orbiter at angle now*angularSpeed + offset and
// strikes what it touches, each target at most once per hit cooldown.
func (w *Weapon) updateOrbiter(ws *world.State, p *Projectile, clk system.Clock) bool {
	o := &p.Orbit
	prm := &w.def.Params
	angular := 2 * math.Pi / o.Period.Seconds()
	offset := 2 * math.Pi * float64(o.Index) / float64(o.Count)
	theta := clk.Now.Seconds()*angular + offset
	p.Pos = ws.Player.Pos.Add(vmath.FromAngle(theta, w.orbitRadius(clk.Now)))
	p.Damage = w.EffectiveDamage()

	ws.Resolve(p.strike(world.Circle(p.Pos, p.Radius), p.Damage, prm.HitCooldown), clk.Now)

	if prm.BoltDamage > 0 && clk.Now >= o.NextBolt {
		o.NextBolt = clk.Now + prm.BoltCooldown
		w.fireBolt(ws, p.Pos, clk.Now)
	}
	return false
}

// fireBolt shoots a single-pierce bolt from an orbiter at the nearest target.
func (w *Weapon) fireBolt(ws *world.State, from vmath.Vec2, now time.Duration) {
	_, target, ok := ws.NearestTarget(from, reach(ws))
	if !ok {
		return
	}
	prm := &w.def.Params
	dir := target.Sub(from).Norm()
	if dir.IsZero() {
		return
	}
	b := w.spawn(KindBolt, from)
	b.Damage = prm.BoltDamage * w.mods.Damage
	b.setPierce(1)
	b.Radius = boltRadius
	b.Vel = dir.Scale(prm.BoltSpeed)
	b.Expires = now + prm.BoltLifetime
}

// updateBolt flies straight until it strikes its pierce budget or expires.
func (w *Weapon) updateBolt(ws *world.State, p *Projectile, clk system.Clock) bool {
	if clk.Now >= p.Expires {
		return true
	}
	p.Pos = p.Pos.Add(p.Vel.Scale(clk.Delta.Seconds()))
	_, exhausted := ws.Resolve(p.strike(world.Circle(p.Pos, p.Radius), p.Damage, 0), clk.Now)
	return exhausted
}
