package world

import (
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/nightfall/cryptcore/internal/core/ecs"
	"github.com/nightfall/cryptcore/internal/core/event"
	"github.com/nightfall/cryptcore/internal/data"
	"github.com/nightfall/cryptcore/internal/vmath"
)

// maxGems bounds the gem pool; past it new drops fold their value into an
// existing gem instead of allocating.
const maxGems = 300

// gridCellSize is the spatial hash cell edge in world units.
const gridCellSize = 64

// State is the whole simulation state of one run. Accessed only from the
// game loop goroutine, so no locks are needed.
type State struct {
	Run      *RunConfig
	Log      *zap.Logger
	Bus      *event.Bus
	Rng      *rand.Rand
	Pools    *ecs.Registry
	Releases *ecs.ReleaseQueue

	Player  Player
	Input   vmath.Vec2 // normalized movement vector for the next tick
	Enemies *ecs.Pool[Enemy]
	Gems    *ecs.Pool[Gem]
	Chests  *ecs.Pool[Chest]

	boss       Boss
	bossActive bool
	bossSerial uint32

	grid           *Grid
	maxEnemyRadius float64

	Kills          int
	BossesDefeated int
	WeaponsEvolved int
}

func NewState(rc *RunConfig, log *zap.Logger) *State {
	cfg := rc.Config
	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w := &State{
		Run:      rc,
		Log:      log,
		Bus:      event.NewBus(),
		Rng:      rand.New(rand.NewSource(seed)),
		Pools:    ecs.NewRegistry(),
		Releases: ecs.NewReleaseQueue(),
		Player:   newPlayer(cfg.Player, rc.Bonuses),
		Enemies:  ecs.NewPool[Enemy](cfg.Spawn.MaxAlive, nil, resetEnemy),
		Gems:     ecs.NewPool[Gem](64, nil, resetGem),
		Chests:   ecs.NewPool[Chest](2, nil, resetChest),
		grid:     NewGrid(gridCellSize),
	}
	w.Pools.Register(w.Enemies)
	w.Pools.Register(w.Gems)
	w.Pools.Register(w.Chests)
	for _, k := range rc.Catalog.EnemyKeys() {
		if def, err := rc.Catalog.Enemy(k); err == nil {
			w.maxEnemyRadius = math.Max(w.maxEnemyRadius, def.Radius)
		}
	}
	if w.maxEnemyRadius == 0 {
		w.maxEnemyRadius = 10
	}
	return w
}

// SpawnEnemy draws an enemy from the pool and configures it.
func (w *State) SpawnEnemy(s EnemyStats, pos vmath.Vec2, now time.Duration) (ecs.EntityID, *Enemy) {
	id, e := w.Enemies.Acquire()
	e.Configure(s, pos, now, w.Rng.Float64()*2*math.Pi)
	return id, e
}

// killEnemy runs the death transition bookkeeping: one kill event now, the
// pool release after the cosmetic death window.
func (w *State) killEnemy(id ecs.EntityID, e *Enemy, now time.Duration) {
	w.Kills++
	event.Emit(w.Bus, event.EnemyKilled{
		ID:    id,
		Type:  e.Def.Key,
		Pos:   e.Pos,
		XP:    e.XP,
		Color: e.Color,
		Elite: e.Elite,
	})
	w.Releases.Schedule(w.Enemies, id, now+w.Run.Config.Spawn.DeathWindow.Duration)
}

// ClearEnemies dismisses every live regular enemy without rewards and
// returns how many were cleared.
func (w *State) ClearEnemies(now time.Duration) int {
	n := 0
	due := now + w.Run.Config.Spawn.DeathWindow.Duration
	w.Enemies.Each(func(id ecs.EntityID, e *Enemy) bool {
		if e.dismiss() {
			w.Releases.Schedule(w.Enemies, id, due)
			n++
		}
		return true
	})
	return n
}

// RebuildGrid re-indexes live enemies for overlap queries.
func (w *State) RebuildGrid() {
	w.grid.Reset()
	w.Enemies.Each(func(id ecs.EntityID, e *Enemy) bool {
		if !e.Dying {
			w.grid.Insert(id, e.Pos)
		}
		return true
	})
}

// NearestTarget returns the closest live enemy or boss within maxDist of pos.
func (w *State) NearestTarget(pos vmath.Vec2, maxDist float64) (TargetRef, vmath.Vec2, bool) {
	var (
		best    TargetRef
		bestPos vmath.Vec2
		found   bool
	)
	bestD := maxDist * maxDist
	w.Enemies.Each(func(id ecs.EntityID, e *Enemy) bool {
		if e.Dying {
			return true
		}
		if d := e.Pos.DistSq(pos); d <= bestD {
			best, bestPos, bestD, found = TargetRef{ID: id}, e.Pos, d, true
		}
		return true
	})
	if b := w.ActiveBoss(); b != nil {
		if d := b.Pos.DistSq(pos); d <= bestD {
			best, bestPos, found = TargetRef{Boss: true, ID: b.Ref}, b.Pos, true
		}
	}
	return best, bestPos, found
}

// TargetPos returns the current position of a live target.
func (w *State) TargetPos(ref TargetRef) (vmath.Vec2, bool) {
	if ref.Boss {
		if b := w.ActiveBoss(); b != nil && b.Ref == ref.ID {
			return b.Pos, true
		}
		return vmath.Vec2{}, false
	}
	e, ok := w.Enemies.Get(ref.ID)
	if !ok || e.Dying {
		return vmath.Vec2{}, false
	}
	return e.Pos, true
}

// SpawnGem drops an experience gem at pos.
func (w *State) SpawnGem(pos vmath.Vec2, value int) {
	if value <= 0 {
		return
	}
	if w.Gems.ActiveCount() >= maxGems {
		w.Gems.Each(func(_ ecs.EntityID, g *Gem) bool {
			g.Value += value
			return false
		})
		return
	}
	_, g := w.Gems.Acquire()
	g.Pos = pos
	g.Value = value
}

// SpawnChest drops a boss treasure chest at pos.
func (w *State) SpawnChest(pos vmath.Vec2, now time.Duration) {
	_, c := w.Chests.Acquire()
	c.Pos = pos
	c.Expires = now + w.Run.Config.Bosses.ChestLifetime.Duration
}

// HurtPlayer is the only way to lower player health. It honors the
// invulnerability window and raises the defeat event once.
func (w *State) HurtPlayer(amount float64, source string, now time.Duration) bool {
	if !w.Player.takeDamage(amount, now) {
		return false
	}
	event.Emit(w.Bus, event.PlayerDamaged{Amount: amount, Health: w.Player.Health, Source: source})
	if w.Player.Dead {
		event.Emit(w.Bus, event.PlayerDefeated{})
	}
	return true
}

// ActiveBoss returns the boss slot or nil when no boss is active.
func (w *State) ActiveBoss() *Boss {
	if !w.bossActive {
		return nil
	}
	return &w.boss
}

// SpawnBoss fills the boss slot. The caller must have checked it is free.
func (w *State) SpawnBoss(def *data.BossDef, appearance int, final bool, pos vmath.Vec2, now time.Duration) *Boss {
	w.bossSerial++
	hp := def.HPFor(appearance) * w.Run.HardModeMult()
	w.boss = Boss{
		Def:        def,
		Ref:        ecs.NewEntityID(0, w.bossSerial),
		Appearance: appearance,
		Final:      final,
		Pos:        pos,
		Facing:     vmath.V(1, 0),
		HP:         hp,
		MaxHP:      hp,
		BaseSpeed:  def.Speed,
		Speed:      def.Speed,
		SpawnedAt:  now,
	}
	w.bossActive = true
	return &w.boss
}

// ClearBoss frees the boss slot.
func (w *State) ClearBoss() {
	w.boss = Boss{}
	w.bossActive = false
}

// RandomOnRing returns a uniformly random point at radius r around center.
func (w *State) RandomOnRing(center vmath.Vec2, r float64) vmath.Vec2 {
	return center.Add(vmath.FromAngle(w.Rng.Float64()*2*math.Pi, r))
}

// RandomInCircle returns a uniformly distributed point within r of center.
func (w *State) RandomInCircle(center vmath.Vec2, r float64) vmath.Vec2 {
	return center.Add(vmath.FromAngle(w.Rng.Float64()*2*math.Pi, r*math.Sqrt(w.Rng.Float64())))
}
