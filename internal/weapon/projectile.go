package weapon

import (
	"math"
	"time"

	"github.com/nightfall/cryptcore/internal/vmath"
	"github.com/nightfall/cryptcore/internal/world"
)

// Kind tags what a pooled projectile slot currently is.
type Kind uint8

const (
	KindSwing     Kind = iota + 1 // melee hitbox riding on the owner
	KindTrail                     // ground fire left behind a swing
	KindFlask                     // thrown container in flight, becomes a zone on landing
	KindZone                      // damage-over-time area
	KindOrbiter                   // circles the owner until the weapon is dropped
	KindBolt                      // straight shot fired by an orbiter
	KindBoomerang                 // outbound then back to the owner
	KindOrb                       // slow ballistic orb that re-hits on a timer
	KindDagger                    // drops from above onto a point
	KindWave                      // crosses the whole view
)

// Projectile is one pooled instance of any weapon's projectile, zone or
// orbiter. The variant structs hold the per-kind state; only the one that
// matches Kind is meaningful.
type Projectile struct {
	Kind    Kind
	Pos     vmath.Vec2
	Vel     vmath.Vec2
	Radius  float64
	Damage  float64
	Hits    world.HitSet
	Expires time.Duration // zero for orbiters, which live as long as their weapon

	pierce  int
	limited bool // pierce is tracked

	Swing  swingState
	Zone   zoneState
	Flask  flaskState
	Orbit  orbitState
	Return returnState
	Fall   fallState
	Wave   waveState
}

type swingState struct {
	Offset vmath.Vec2 // hitbox center relative to the owner
	W, H   float64
}

type zoneState struct {
	Shape     world.ShapeKind
	W, H      float64 // rect extent
	RingWidth float64
	Start     time.Duration
	Span      time.Duration // ring growth time
	Follow    bool
	Interval  time.Duration // 0 = strike each target once (rings)
	NextTick  time.Duration
	Knockback float64
}

type flaskState struct {
	From, To vmath.Vec2
	Launched time.Duration
	Lands    time.Duration
}

type orbitState struct {
	Index    int
	Count    int
	Period   time.Duration
	NextBolt time.Duration
}

type returnState struct {
	Traveled  float64
	Speed     float64
	Returning bool
}

type fallState struct {
	Target vmath.Vec2
	Height float64
	Speed  float64
}

type waveState struct {
	X0, X1 float64
	Start  time.Duration
	Span   time.Duration
	W, H   float64
}

func newProjectile() *Projectile {
	return &Projectile{Hits: world.HitSet{}}
}

// resetProjectile returns a slot to dormant. The hit-set map is kept and
// cleared so reuse does not allocate.
func resetProjectile(p *Projectile) {
	hits := p.Hits
	hits.Reset()
	*p = Projectile{Hits: hits, Pos: vmath.V(math.Inf(1), math.Inf(1))}
}

// setPierce engages pierce tracking for k > 0; k <= 0 leaves it unlimited.
func (p *Projectile) setPierce(k int) {
	p.pierce = k
	p.limited = k > 0
}

// PierceLeft returns the remaining pierce budget and whether it is tracked.
func (p *Projectile) PierceLeft() (int, bool) { return p.pierce, p.limited }

func (p *Projectile) strike(shape world.Shape, damage float64, interval time.Duration) world.Strike {
	s := world.Strike{
		Shape:    shape,
		Damage:   damage,
		Hits:     p.Hits,
		Interval: interval,
	}
	if p.limited {
		s.Pierce = &p.pierce
	}
	return s
}
