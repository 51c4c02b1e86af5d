package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nightfall/cryptcore/internal/core/ecs"
	"github.com/nightfall/cryptcore/internal/game"
	"github.com/nightfall/cryptcore/internal/vmath"
	"github.com/nightfall/cryptcore/internal/world"
)

// threatRadius is how close an enemy must be before the autopilot flees it.
const threatRadius = 220

// autopilot plays a headless run: it kites away from the swarm and takes the
// first offered upgrade, preferring evolutions.
type autopilot struct {
	s     *game.Session
	orbit float64
}

func newAutopilot(s *game.Session) *autopilot {
	return &autopilot{s: s}
}

// steer returns the movement vector for the next tick.
func (a *autopilot) steer() vmath.Vec2 {
	ws := a.s.World()
	me := ws.Player.Pos
	var away vmath.Vec2
	ws.Enemies.Each(func(_ ecs.EntityID, e *world.Enemy) bool {
		d := me.Sub(e.Pos)
		dist := d.Len()
		if e.Dying || dist > threatRadius || dist == 0 {
			return true
		}
		away = away.Add(d.Scale((threatRadius - dist) / (threatRadius * dist)))
		return true
	})
	if !away.IsZero() {
		return away.Norm()
	}
	// Nothing close: drift in a slow circle so weapons sweep new ground.
	a.orbit = vmath.WrapAngle(a.orbit + 0.01)
	return vmath.FromAngle(a.orbit, 1)
}

// choose resolves every pending level-up.
func (a *autopilot) choose() error {
	for a.s.Paused() {
		choices := a.s.AvailableChoices(3)
		if len(choices) == 0 {
			if err := a.s.SkipChoice(); err != nil {
				return err
			}
			continue
		}
		if err := a.s.ApplyChoice(pick(choices)); err != nil {
			return err
		}
	}
	return nil
}

// logEffects reports the notable effect notifications to the log; per-hit
// effects are dropped in a headless run.
type logEffects struct {
	log *zap.Logger
}

func (logEffects) OnHit(vmath.Vec2)           {}
func (logEffects) OnDeath(vmath.Vec2, uint32) {}

func (l logEffects) OnLevelUp(level int) {
	l.log.Debug("effect: level up", zap.Int("level", level))
}

func (l logEffects) OnEvolution(colorA, colorB uint32) {
	l.log.Info("effect: evolution flash",
		zap.String("a", fmt.Sprintf("#%06x", colorA)),
		zap.String("b", fmt.Sprintf("#%06x", colorB)))
}

func (l logEffects) OnBossWarning(name string) {
	l.log.Warn("boss approaching", zap.String("boss", name))
}

// pick takes a ready evolution, else the owned weapon closest to its cap, else
// the first offer.
func pick(choices []game.Choice) game.Choice {
	best := choices[0]
	for _, c := range choices {
		switch {
		case c.Kind == game.ChoiceEvolution:
			return c
		case c.Kind == game.ChoiceWeapon && c.CurrentLevel > best.CurrentLevel:
			best = c
		}
	}
	return best
}
