// Package weapon implements the player's weapons: the level curve, cooldown
// gating, one update routine per behavior family and the evolution rules.
package weapon

import (
	"math"
	"time"

	"github.com/nightfall/cryptcore/internal/core/ecs"
	"github.com/nightfall/cryptcore/internal/core/system"
	"github.com/nightfall/cryptcore/internal/data"
	"github.com/nightfall/cryptcore/internal/vmath"
	"github.com/nightfall/cryptcore/internal/world"
)

const (
	MinLevel = 1
	MaxLevel = 8

	damageGrowth   = 1.15
	cooldownGrowth = 0.92
	areaGrowth     = 1.1
)

// Modifiers are the passive-upgrade multipliers shared by every weapon in an
// arsenal.
type Modifiers struct {
	Damage   float64
	Cooldown float64
}

// Weapon is one acquired weapon with its private projectile pool.
type Weapon struct {
	def   *data.WeaponDef
	mods  *Modifiers
	level int

	Damage          float64
	Cooldown        time.Duration
	Area            float64
	ProjectileCount int

	lastFire time.Duration
	fired    bool

	pool *ecs.Pool[Projectile]

	waveDir float64
}

// New creates a level 1 weapon. mods may be nil.
func New(def *data.WeaponDef, mods *Modifiers) *Weapon {
	if mods == nil {
		mods = &Modifiers{Damage: 1, Cooldown: 1}
	}
	w := &Weapon{
		def:     def,
		mods:    mods,
		pool:    ecs.NewPool(16, newProjectile, resetProjectile),
		waveDir: -1,
	}
	w.SetLevel(MinLevel)
	return w
}

func (w *Weapon) ID() string                  { return w.def.ID }
func (w *Weapon) Def() *data.WeaponDef        { return w.def }
func (w *Weapon) Level() int                  { return w.level }
func (w *Weapon) Evolved() bool               { return w.def.Evolved }
func (w *Weapon) Pool() *ecs.Pool[Projectile] { return w.pool }

// SetLevel clamps n to [1,8] and recomputes the derived stats from base.
func (w *Weapon) SetLevel(n int) {
	n = max(MinLevel, min(MaxLevel, n))
	w.level = n
	b := w.def.Base
	k := float64(n - 1)
	w.Damage = b.Damage * math.Pow(damageGrowth, k)
	w.Cooldown = max(b.CooldownFloor, time.Duration(float64(b.Cooldown)*math.Pow(cooldownGrowth, k)))
	w.Area = b.Area * math.Pow(areaGrowth, k)
	w.ProjectileCount = b.ProjectileCount
	if n >= 3 {
		w.ProjectileCount++
	}
	if n >= 6 {
		w.ProjectileCount++
	}
}

// EffectiveDamage is Damage with passive modifiers applied.
func (w *Weapon) EffectiveDamage() float64 { return w.Damage * w.mods.Damage }

// EffectiveCooldown is Cooldown with passive modifiers, never below the floor.
func (w *Weapon) EffectiveCooldown() time.Duration {
	return max(w.def.Base.CooldownFloor, time.Duration(float64(w.Cooldown)*w.mods.Cooldown))
}

// TryFire fires when the cooldown has elapsed since the last shot (the first
// call always fires) and reports whether it did.
func (w *Weapon) TryFire(ws *world.State, now time.Duration) bool {
	if w.fired && now-w.lastFire < w.EffectiveCooldown() {
		return false
	}
	w.fire(ws, now)
	w.lastFire = now
	w.fired = true
	return true
}

func (w *Weapon) fire(ws *world.State, now time.Duration) {
	switch w.def.Behavior {
	case data.BehaviorMelee:
		w.fireMelee(ws, now)
	case data.BehaviorZone:
		w.fireZone(ws, now)
	case data.BehaviorOrbit:
		w.fireOrbit(ws, now)
	case data.BehaviorReturning:
		w.fireReturning(ws, now)
	case data.BehaviorHoming:
		w.fireOrb(ws, now)
	case data.BehaviorAura:
		w.fireAura(ws, now)
	case data.BehaviorFalling:
		w.fireFalling(ws, now)
	case data.BehaviorSweep:
		w.fireSweep(ws, now)
	}
}

// Update advances every live projectile. Each re-checks liveness per slot, so
// projectiles released mid-iteration (expiry, pierce, weapon removal) are
// skipped.
func (w *Weapon) Update(ws *world.State, clk system.Clock) {
	w.pool.Each(func(id ecs.EntityID, p *Projectile) bool {
		var done bool
		switch p.Kind {
		case KindSwing:
			done = w.updateSwing(ws, p, clk)
		case KindTrail, KindZone:
			done = w.updateZone(ws, p, clk)
		case KindFlask:
			done = w.updateFlask(p, clk)
		case KindOrbiter:
			done = w.updateOrbiter(ws, p, clk)
		case KindBolt:
			done = w.updateBolt(ws, p, clk)
		case KindBoomerang:
			done = w.updateBoomerang(ws, p, clk)
		case KindOrb:
			done = w.updateOrb(ws, p, clk)
		case KindDagger:
			done = w.updateDagger(ws, p, clk)
		case KindWave:
			done = w.updateWave(ws, p, clk)
		default:
			done = true
		}
		if done {
			w.pool.Release(id)
		}
		return true
	})
}

// ReleaseAll returns every projectile to the pool.
func (w *Weapon) ReleaseAll() { w.pool.ReleaseAll() }

// ActiveProjectiles returns the number of live projectiles.
func (w *Weapon) ActiveProjectiles() int { return w.pool.ActiveCount() }

func (w *Weapon) spawn(kind Kind, pos vmath.Vec2) *Projectile {
	_, p := w.pool.Acquire()
	p.Kind = kind
	p.Pos = pos
	p.Damage = w.EffectiveDamage()
	p.setPierce(w.def.Base.Pierce)
	return p
}

// reach is the targeting range: half the view diagonal.
func reach(ws *world.State) float64 {
	s := ws.Run.Config.Spawn
	return math.Hypot(s.ViewWidth, s.ViewHeight) / 2
}

// aim returns the unit direction from `from` toward the nearest target in
// reach, or fallback when nothing is in range.
func aim(ws *world.State, from, fallback vmath.Vec2) vmath.Vec2 {
	if _, pos, ok := ws.NearestTarget(from, reach(ws)); ok {
		if d := pos.Sub(from); !d.IsZero() {
			return d.Norm()
		}
	}
	return fallback
}

// rotate turns v by theta radians.
func rotate(v vmath.Vec2, theta float64) vmath.Vec2 {
	s, c := math.Sincos(theta)
	return vmath.V(v.X*c-v.Y*s, v.X*s+v.Y*c)
}

// spread fans n shots around dir, step radians apart.
func spread(dir vmath.Vec2, i, n int, step float64) vmath.Vec2 {
	return rotate(dir, (float64(i)-float64(n-1)/2)*step)
}
