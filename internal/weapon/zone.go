package weapon

import (
	"math"
	"time"

	"github.com/nightfall/cryptcore/internal/core/system"
	"github.com/nightfall/cryptcore/internal/data"
	"github.com/nightfall/cryptcore/internal/vmath"
	"github.com/nightfall/cryptcore/internal/world"
)

// minFlight is the shortest time a thrown container spends in the air.
const minFlight = 250 * time.Millisecond

// fireZone creates one zone per projectile. Thrown zones travel as a flask
// first and open where it lands.
func (w *Weapon) fireZone(ws *world.State, now time.Duration) {
	prm := &w.def.Params
	owner := &ws.Player
	for i := 0; i < w.ProjectileCount; i++ {
		target := w.zoneTarget(ws, i)
		if prm.Thrown {
			p := w.spawn(KindFlask, owner.Pos)
			flight := time.Duration(owner.Pos.Dist(target) / w.def.Base.Speed * float64(time.Second))
			flight = max(minFlight, flight)
			p.Flask = flaskState{From: owner.Pos, To: target, Launched: now, Lands: now + flight}
			p.Expires = p.Flask.Lands + w.def.Base.Duration
			continue
		}
		p := w.spawn(KindZone, target)
		w.openZone(p, now)
	}
}

// zoneTarget picks where zone i opens.
func (w *Weapon) zoneTarget(ws *world.State, i int) vmath.Vec2 {
	prm := &w.def.Params
	owner := ws.Player.Pos
	switch {
	case prm.FollowOwner:
		return owner
	case prm.TargetNearest && i == 0:
		if _, pos, ok := ws.NearestTarget(owner, reach(ws)); ok {
			return pos
		}
	}
	r := prm.ThrowRadius
	if r <= 0 {
		r = reach(ws) / 2
	}
	return ws.RandomInCircle(owner, r)
}

// openZone turns p into an active zone starting at now.
func (w *Weapon) openZone(p *Projectile, now time.Duration) {
	prm := &w.def.Params
	p.Kind = KindZone
	p.Expires = now + w.def.Base.Duration
	p.Zone = zoneState{
		Start:     now,
		Span:      w.def.Base.Duration,
		Follow:    prm.FollowOwner,
		Interval:  prm.TickInterval,
		NextTick:  now,
		Knockback: prm.Knockback,
	}
	switch prm.Shape {
	case data.ZoneRect:
		p.Zone.Shape = world.ShapeRect
		p.Zone.W, p.Zone.H = w.Area, prm.Height*(w.Area/w.def.Base.Area)
	case data.ZoneRing:
		p.Zone.Shape = world.ShapeRing
		p.Zone.RingWidth = prm.RingWidth
		p.Zone.Interval = 0
	default:
		p.Zone.Shape = world.ShapeCircle
	}
	p.Radius = w.Area
}

// updateFlask moves a thrown container along its arc and opens the zone on
// landing.
func (w *Weapon) updateFlask(p *Projectile, clk system.Clock) bool {
	f := &p.Flask
	if clk.Now >= f.Lands {
		p.Pos = f.To
		w.openZone(p, f.Lands)
		return false
	}
	t := float64(clk.Now-f.Launched) / float64(f.Lands-f.Launched)
	p.Pos = f.From.Lerp(f.To, t)
	return false
}

// updateZone damages everything inside the zone on its tick interval until
// expiry. Rings grow to full size over their lifetime and strike each target
// once.
func (w *Weapon) updateZone(ws *world.State, p *Projectile, clk system.Clock) bool {
	if clk.Now >= p.Expires {
		return true
	}
	z := &p.Zone
	if z.Follow {
		p.Pos = ws.Player.Pos
	}
	var shape world.Shape
	switch z.Shape {
	case world.ShapeRect:
		shape = world.Rect(p.Pos, z.W, z.H)
	case world.ShapeRing:
		progress := 1.0
		if z.Span > 0 {
			progress = math.Min(1, float64(clk.Now-z.Start)/float64(z.Span))
		}
		outer := p.Radius * progress
		shape = world.Ring(p.Pos, outer-z.RingWidth, outer)
	default:
		shape = world.Circle(p.Pos, p.Radius)
	}

	if z.Interval <= 0 {
		s := p.strike(shape, p.Damage, 0)
		s.Knockback = z.Knockback
		_, exhausted := ws.Resolve(s, clk.Now)
		return exhausted
	}
	if clk.Now < z.NextTick {
		return false
	}
	z.NextTick += z.Interval
	if z.NextTick <= clk.Now {
		z.NextTick = clk.Now + z.Interval
	}
	ws.Resolve(world.Strike{Shape: shape, Damage: p.Damage, Knockback: z.Knockback}, clk.Now)
	return false
}
