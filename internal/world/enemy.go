package world

import (
	"math"
	"math/rand"
	"time"

	"github.com/nightfall/cryptcore/internal/data"
	"github.com/nightfall/cryptcore/internal/vmath"
)

// wobbleRate is the angular rate of the erratic lateral wobble, radians per second.
const wobbleRate = 12.0

// knockbackDecay is how fast knockback velocity bleeds off, per second.
const knockbackDecay = 8.0

// EnemyStats is everything Configure needs to turn a dormant pool slot into a
// live enemy. Scaling and elite promotion are already folded in.
type EnemyStats struct {
	Def    *data.EnemyDef
	HP     float64
	Speed  float64
	Damage float64
	XP     int
	Elite  bool
	Minion bool
}

// Enemy is a pooled regular combat actor.
type Enemy struct {
	Def    *data.EnemyDef
	Pos    vmath.Vec2
	Vel    vmath.Vec2
	Knock  vmath.Vec2
	Radius float64
	Color  uint32

	HP              float64
	MaxHP           float64
	Speed           float64
	Damage          float64
	XP              int
	KnockbackResist float64
	DamageTaken     float64

	ErraticAmplitude float64
	TeleportCooldown time.Duration
	TeleportRange    data.Range
	nextTeleport     time.Duration
	phaseSeed        float64

	// SpeedBoost is an aura multiplier bonus written by the boss director each
	// tick and consumed (and zeroed) by Chase.
	SpeedBoost float64

	Elite  bool
	Minion bool
	Dying  bool
}

// Configure resets every combat field for a fresh spawn. Slots are reused, so
// nothing from the previous occupant may survive.
func (e *Enemy) Configure(s EnemyStats, pos vmath.Vec2, now time.Duration, seed float64) {
	d := s.Def
	*e = Enemy{
		Def:              d,
		Pos:              pos,
		Radius:           d.Radius,
		Color:            d.Color,
		HP:               s.HP,
		MaxHP:            s.HP,
		Speed:            s.Speed,
		Damage:           s.Damage,
		XP:               s.XP,
		KnockbackResist:  d.KnockbackResist,
		DamageTaken:      d.DamageTaken,
		ErraticAmplitude: d.ErraticAmplitude,
		TeleportCooldown: d.TeleportCooldown,
		TeleportRange:    d.TeleportRange,
		phaseSeed:        seed,
		Elite:            s.Elite,
		Minion:           s.Minion,
	}
	if e.Radius <= 0 {
		e.Radius = 10
	}
	if e.DamageTaken <= 0 {
		e.DamageTaken = 1
	}
	if e.TeleportCooldown > 0 {
		e.nextTeleport = now + e.TeleportCooldown
	}
}

// resetEnemy returns a released slot to its dormant state.
func resetEnemy(e *Enemy) {
	*e = Enemy{Pos: vmath.V(math.Inf(1), math.Inf(1))}
}

// Chase steers the enemy toward target. A due teleport repositions the enemy
// on a random point of the teleport annulus around target first.
func (e *Enemy) Chase(target vmath.Vec2, now time.Duration, rng *rand.Rand) {
	boost := e.SpeedBoost
	e.SpeedBoost = 0
	if e.Dying {
		return
	}
	if e.TeleportCooldown > 0 && now >= e.nextTeleport {
		e.nextTeleport = now + e.TeleportCooldown
		r := e.TeleportRange
		dist := r.Min + rng.Float64()*(r.Max-r.Min)
		e.Pos = target.Add(vmath.FromAngle(rng.Float64()*2*math.Pi, dist))
	}
	dir := target.Sub(e.Pos).Norm()
	if e.ErraticAmplitude > 0 {
		w := e.ErraticAmplitude * math.Sin(now.Seconds()*wobbleRate+e.phaseSeed)
		dir = dir.Add(dir.Perp().Scale(w)).Norm()
	}
	e.Vel = dir.Scale(e.Speed * (1 + boost))
}

// TakeDamage applies incoming damage. It is a no-op while dying. died is true
// only for the call that moved the enemy into the dying state.
func (e *Enemy) TakeDamage(amount float64) (landed, died bool) {
	if e.Dying || amount <= 0 {
		return false, false
	}
	e.HP -= amount * e.DamageTaken
	if e.HP <= 0 {
		e.HP = 0
		e.Dying = true
		e.Vel = vmath.Vec2{}
		e.Knock = vmath.Vec2{}
		return true, true
	}
	return true, false
}

// ApplyKnockback pushes the enemy by impulse, reduced by its resistance.
func (e *Enemy) ApplyKnockback(impulse vmath.Vec2) {
	if e.Dying {
		return
	}
	e.Knock = e.Knock.Add(impulse.Scale(1 - e.KnockbackResist))
}

// Integrate advances position by velocity and decaying knockback.
func (e *Enemy) Integrate(dt time.Duration) {
	if e.Dying {
		return
	}
	s := dt.Seconds()
	e.Pos = e.Pos.Add(e.Vel.Add(e.Knock).Scale(s))
	if !e.Knock.IsZero() {
		e.Knock = e.Knock.Scale(math.Max(0, 1-knockbackDecay*s))
		if e.Knock.LenSq() < 1 {
			e.Knock = vmath.Vec2{}
		}
	}
}

// dismiss moves a live enemy to dying without damage (mercy clear).
func (e *Enemy) dismiss() bool {
	if e.Dying {
		return false
	}
	e.Dying = true
	e.Vel = vmath.Vec2{}
	e.Knock = vmath.Vec2{}
	return true
}
