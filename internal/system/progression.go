package system

import (
	"math"

	"github.com/nightfall/cryptcore/internal/core/ecs"
	"github.com/nightfall/cryptcore/internal/core/event"
	coresys "github.com/nightfall/cryptcore/internal/core/system"
	"github.com/nightfall/cryptcore/internal/scripting"
	"github.com/nightfall/cryptcore/internal/vmath"
	"github.com/nightfall/cryptcore/internal/world"
)

// chestHeal is the fraction of max health a treasure chest restores.
const chestHeal = 0.25

// XPTracker accumulates experience and raises one LevelUp event per threshold
// crossed. Level only increases; the threshold is recomputed on each level.
type XPTracker struct {
	formulas  *scripting.Formulas
	bus       *event.Bus
	maxLevel  int
	level     int
	xp        int
	threshold int
}

func NewXPTracker(formulas *scripting.Formulas, maxLevel int, bus *event.Bus) *XPTracker {
	return &XPTracker{
		formulas:  formulas,
		bus:       bus,
		maxLevel:  maxLevel,
		level:     1,
		threshold: formulas.XPThreshold(1),
	}
}

// AddXP adds amount and returns how many levels were gained.
func (t *XPTracker) AddXP(amount int) int {
	if amount <= 0 {
		return 0
	}
	t.xp += amount
	gained := 0
	for t.xp >= t.threshold && (t.maxLevel <= 0 || t.level < t.maxLevel) {
		t.xp -= t.threshold
		t.level++
		t.threshold = t.formulas.XPThreshold(t.level)
		gained++
		event.Emit(t.bus, event.LevelUp{Level: t.level})
	}
	return gained
}

func (t *XPTracker) Level() int     { return t.level }
func (t *XPTracker) XP() int        { return t.xp }
func (t *XPTracker) Threshold() int { return t.threshold }

// Remaining returns the experience still missing for the next level.
func (t *XPTracker) Remaining() int { return t.threshold - t.xp }

// ProgressionSystem drops gems where enemies die, pulls gems within the pickup
// radius toward the player and feeds collected value into the tracker. It also
// opens boss treasure chests. Phase 3 (Progression).
type ProgressionSystem struct {
	world *world.State
	xp    *XPTracker
}

func NewProgressionSystem(ws *world.State, xp *XPTracker) *ProgressionSystem {
	s := &ProgressionSystem{world: ws, xp: xp}
	event.Subscribe(ws.Bus, func(ev event.EnemyKilled) {
		ws.SpawnGem(ev.Pos, ev.XP)
	})
	return s
}

func (s *ProgressionSystem) Phase() coresys.Phase { return coresys.PhaseProgression }

func (s *ProgressionSystem) Update(clk coresys.Clock) {
	ws := s.world
	if ws.Player.Dead {
		return
	}
	cfg := &ws.Run.Config.XP
	p := &ws.Player
	dt := clk.Delta.Seconds()

	ws.Gems.Each(func(id ecs.EntityID, g *world.Gem) bool {
		to := p.Pos.Sub(g.Pos)
		dist := to.Len()
		if dist <= p.Radius+cfg.GemRadius {
			value := g.Value
			ws.Gems.Release(id)
			s.xp.AddXP(value)
			return true
		}
		if dist <= p.PickupRadius {
			g.Magnetic = true
			speed := math.Min(cfg.GemSpeed, g.Vel.Len()+cfg.GemAccel*dt)
			g.Vel = to.Norm().Scale(speed)
		} else {
			g.Magnetic = false
			speed := g.Vel.Len() - cfg.GemDecel*dt
			if speed <= 0 {
				g.Vel = vmath.Vec2{}
			} else {
				g.Vel = g.Vel.Norm().Scale(speed)
			}
		}
		g.Pos = g.Pos.Add(g.Vel.Scale(dt))
		return true
	})

	reach := p.Radius + ws.Run.Config.Bosses.ChestRadius
	ws.Chests.Each(func(id ecs.EntityID, c *world.Chest) bool {
		if c.Pos.DistSq(p.Pos) > reach*reach {
			return true
		}
		pos := c.Pos
		ws.Chests.Release(id)
		p.Heal(p.MaxHealth * chestHeal)
		s.xp.AddXP(s.xp.Remaining())
		event.Emit(ws.Bus, event.TreasureCollected{Pos: pos})
		return true
	})
}
