package weapon

import (
	"time"

	"github.com/nightfall/cryptcore/internal/core/system"
	"github.com/nightfall/cryptcore/internal/vmath"
	"github.com/nightfall/cryptcore/internal/world"
)

// fireSweep launches a wave across the whole view, alternating direction
// every cast.
func (w *Weapon) fireSweep(ws *world.State, now time.Duration) {
	view := ws.Run.Config.Spawn
	w.waveDir = -w.waveDir
	x := ws.Player.Pos.X
	for i := 0; i < w.ProjectileCount; i++ {
		p := w.spawn(KindWave, ws.Player.Pos)
		p.Wave = waveState{
			X0:    x - w.waveDir*view.ViewWidth/2,
			X1:    x + w.waveDir*view.ViewWidth/2,
			Start: now + time.Duration(i)*w.def.Base.Duration/4,
			Span:  w.def.Base.Duration,
			W:     w.Area,
			H:     view.ViewHeight,
		}
		p.Expires = p.Wave.Start + p.Wave.Span
	}
}

// updateWave moves the wave across the view, striking each target once.
func (w *Weapon) updateWave(ws *world.State, p *Projectile, clk system.Clock) bool {
	if clk.Now >= p.Expires {
		return true
	}
	v := &p.Wave
	if clk.Now < v.Start {
		return false
	}
	t := float64(clk.Now-v.Start) / float64(v.Span)
	p.Pos = vmath.V(v.X0+(v.X1-v.X0)*t, ws.Player.Pos.Y)
	_, exhausted := ws.Resolve(p.strike(world.Rect(p.Pos, v.W, v.H), p.Damage, 0), clk.Now)
	return exhausted
}
