package world

import (
	"math"
	"time"

	"github.com/nightfall/cryptcore/internal/core/ecs"
	"github.com/nightfall/cryptcore/internal/core/event"
	"github.com/nightfall/cryptcore/internal/vmath"
)

// TargetRef names something a weapon can strike. Enemy and boss references
// never collide.
type TargetRef struct {
	Boss bool
	ID   ecs.EntityID
}

// HitSet remembers when each target was last struck by one projectile. The
// map is cleared, not reallocated, when its projectile slot is reused.
type HitSet map[TargetRef]time.Duration

// Admit reports whether ref may be struck at now. With interval 0 a target is
// struck at most once per hit-set.
func (h HitSet) Admit(ref TargetRef, now, interval time.Duration) bool {
	last, ok := h[ref]
	if !ok {
		return true
	}
	if interval <= 0 {
		return false
	}
	return now-last >= interval
}

func (h HitSet) Mark(ref TargetRef, now time.Duration) { h[ref] = now }

func (h HitSet) Reset() { clear(h) }

type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
	ShapeRing
)

// Shape is a damage area in world space.
type Shape struct {
	Kind   ShapeKind
	Center vmath.Vec2
	Radius float64 // circle radius, ring outer radius
	Inner  float64 // ring inner radius
	HalfW  float64 // rect
	HalfH  float64 // rect
}

func Circle(c vmath.Vec2, r float64) Shape { return Shape{Kind: ShapeCircle, Center: c, Radius: r} }

func Rect(c vmath.Vec2, w, h float64) Shape {
	return Shape{Kind: ShapeRect, Center: c, HalfW: w / 2, HalfH: h / 2}
}

func Ring(c vmath.Vec2, inner, outer float64) Shape {
	return Shape{Kind: ShapeRing, Center: c, Inner: math.Max(0, inner), Radius: outer}
}

// Overlaps reports whether a circle body at p with radius r touches the shape.
func (s Shape) Overlaps(p vmath.Vec2, r float64) bool {
	switch s.Kind {
	case ShapeRect:
		return vmath.CircleRect(p, r, s.Center, s.HalfW, s.HalfH)
	case ShapeRing:
		d := p.Dist(s.Center)
		return d <= s.Radius+r && d >= s.Inner-r
	default:
		return vmath.InCircle(p, s.Center, s.Radius+r)
	}
}

func (s Shape) extent() float64 {
	if s.Kind == ShapeRect {
		return math.Max(s.HalfW, s.HalfH)
	}
	return s.Radius
}

// Strike is one damage application against everything inside Shape.
type Strike struct {
	Shape     Shape
	Damage    float64
	Knockback float64 // impulse away from the shape center

	// Hits gates repeat strikes; nil strikes every overlapping target.
	Hits     HitSet
	Interval time.Duration

	// Pierce counts remaining distinct strikes; nil is unlimited. The strike
	// stops as soon as it reaches zero.
	Pierce *int
}

// Resolve applies s to every overlapping live enemy and the boss, honoring the
// hit-set and pierce budget. It returns how many targets were struck and
// whether the pierce budget is exhausted.
func (w *State) Resolve(s Strike, now time.Duration) (struck int, exhausted bool) {
	if s.Pierce != nil && *s.Pierce <= 0 {
		return 0, true
	}
	hit := func(ref TargetRef, pos vmath.Vec2, r float64) bool {
		if !s.Shape.Overlaps(pos, r) {
			return true
		}
		if s.Hits != nil && !s.Hits.Admit(ref, now, s.Interval) {
			return true
		}
		var knock vmath.Vec2
		if s.Knockback > 0 {
			knock = pos.Sub(s.Shape.Center).Norm().Scale(s.Knockback)
		}
		if !w.damage(ref, s.Damage, knock, now) {
			return true
		}
		struck++
		if s.Hits != nil {
			s.Hits.Mark(ref, now)
		}
		if s.Pierce != nil {
			*s.Pierce--
			if *s.Pierce <= 0 {
				exhausted = true
				return false
			}
		}
		return true
	}

	more := true
	w.grid.Query(s.Shape.Center, s.Shape.extent()+w.maxEnemyRadius, func(id ecs.EntityID) bool {
		e, ok := w.Enemies.Get(id)
		if !ok || e.Dying {
			return true
		}
		more = hit(TargetRef{ID: id}, e.Pos, e.Radius)
		return more
	})
	if more {
		if b := w.ActiveBoss(); b != nil {
			hit(TargetRef{Boss: true, ID: b.Ref}, b.Pos, b.Def.Radius)
		}
	}
	return struck, exhausted
}

// Damage applies amount to one target directly (bolts, single-target hits).
func (w *State) Damage(ref TargetRef, amount float64, knock vmath.Vec2, now time.Duration) bool {
	return w.damage(ref, amount, knock, now)
}

func (w *State) damage(ref TargetRef, amount float64, knock vmath.Vec2, now time.Duration) bool {
	if ref.Boss {
		b := w.ActiveBoss()
		if b == nil || b.Ref != ref.ID || !b.takeDamage(amount) {
			return false
		}
		if !knock.IsZero() && !b.Def.KnockbackImmune {
			b.Pos = b.Pos.Add(knock.Scale(0.05))
		}
		event.Emit(w.Bus, event.EnemyDamaged{ID: ref.ID, Pos: b.Pos, Amount: amount, Boss: true})
		return true
	}
	e, ok := w.Enemies.Get(ref.ID)
	if !ok {
		return false
	}
	landed, died := e.TakeDamage(amount)
	if !landed {
		return false
	}
	event.Emit(w.Bus, event.EnemyDamaged{ID: ref.ID, Pos: e.Pos, Amount: amount})
	if !knock.IsZero() {
		e.ApplyKnockback(knock)
	}
	if died {
		w.killEnemy(ref.ID, e, now)
	}
	return true
}
