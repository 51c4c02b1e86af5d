package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nightfall/cryptcore/internal/config"
	"github.com/nightfall/cryptcore/internal/core/event"
	coresys "github.com/nightfall/cryptcore/internal/core/system"
	"github.com/nightfall/cryptcore/internal/data"
	"github.com/nightfall/cryptcore/internal/persist"
	"github.com/nightfall/cryptcore/internal/scripting"
	"github.com/nightfall/cryptcore/internal/system"
	"github.com/nightfall/cryptcore/internal/vmath"
	"github.com/nightfall/cryptcore/internal/weapon"
	"github.com/nightfall/cryptcore/internal/world"
)

// maxStep bounds one simulation step so a stalled frame clock cannot tunnel
// projectiles through the swarm.
const maxStep = 250 * time.Millisecond

var (
	ErrNoPendingChoice   = errors.New("no level-up choice pending")
	ErrChoiceUnavailable = errors.New("choice not available")
	ErrRunOver           = errors.New("run is over")
)

// Summary is the outward view of a finished (or running) run.
type Summary struct {
	Time           time.Duration
	Kills          int
	BossesDefeated int
	WeaponsEvolved int
	Level          int
}

// BossStatus is what the boss health bar shows.
type BossStatus struct {
	Name   string
	Ratio  float64
	Active bool
}

// Options wires a session. Effects, Recorder and Hooks are optional.
type Options struct {
	Config   *config.Config
	Catalog  *data.Catalog
	Formulas *scripting.Formulas
	Meta     persist.Meta
	Seed     int64
	Effects  Effects
	Recorder MetaRecorder
	Hooks    Hooks
	Log      *zap.Logger
}

// Session is one run: the world, its systems and the level-up choice flow.
// Not safe for concurrent use; drive it from one goroutine.
type Session struct {
	id      uuid.UUID
	world   *world.State
	runner  *coresys.Runner
	arsenal *weapon.Arsenal
	xp      *system.XPTracker
	bosses  *system.BossDirector
	spawner *system.SpawnDirector

	passives map[string]int
	effects  Effects
	recorder MetaRecorder
	hooks    Hooks
	log      *zap.Logger

	elapsed time.Duration
	pending int // level-ups waiting for a choice
	over    bool
	victory bool
	outcome Outcome
	choices []Choice
	ready   []data.EvolutionRule
}

// NewSession builds the run configuration from opts (folding in the meta
// bonuses), creates the world and registers every system in phase order.
func NewSession(opts Options) (*Session, error) {
	if opts.Config == nil || opts.Catalog == nil {
		return nil, errors.New("new session: config and catalog are required")
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	formulas := opts.Formulas
	if formulas == nil {
		formulas = scripting.NewFormulas(nil, opts.Config.XP.BaseThreshold, opts.Config.XP.GrowthFactor, opts.Catalog.Scaling())
	}
	seed := opts.Seed
	if seed == 0 {
		seed = opts.Config.Simulation.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	bonuses := UnlockedBonuses(opts.Meta, opts.Catalog)
	rc := &world.RunConfig{
		Config:   opts.Config,
		Catalog:  opts.Catalog,
		Seed:     seed,
		Bonuses:  bonuses,
		HardMode: opts.Config.Simulation.HardMode && bonuses.HardModeAllowed,
	}

	s := &Session{
		id:       uuid.New(),
		passives: make(map[string]int),
		effects:  opts.Effects,
		recorder: opts.Recorder,
		hooks:    opts.Hooks,
		log:      log,
	}
	if s.effects == nil {
		s.effects = nopEffects{}
	}
	if s.recorder == nil {
		s.recorder = nopRecorder{}
	}
	s.log = log.With(zap.String("run", s.id.String()))
	s.world = world.NewState(rc, s.log)

	maxWeapons := opts.Config.Simulation.MaxWeapons
	if maxWeapons <= 0 {
		maxWeapons = 6
	}
	s.arsenal = weapon.NewArsenal(opts.Catalog, s.world.Pools, maxWeapons, s.log)
	s.arsenal.Modifiers().Damage = bonuses.DamageMult
	s.xp = system.NewXPTracker(formulas, opts.Config.XP.MaxLevel, s.world.Bus)

	var err error
	if s.spawner, err = system.NewSpawnDirector(s.world, formulas, s.log); err != nil {
		return nil, err
	}
	if s.bosses, err = system.NewBossDirector(s.world, s.log); err != nil {
		return nil, err
	}

	s.runner = coresys.NewRunner()
	s.runner.Register(system.NewInputSystem(s.world))
	s.runner.Register(s.spawner)
	s.runner.Register(s.bosses)
	s.runner.Register(system.NewProgressionSystem(s.world, s.xp))
	s.runner.Register(system.NewEnemyAISystem(s.world))
	s.runner.Register(system.NewWeaponSystem(s.world, s.arsenal))
	s.runner.Register(system.NewMovementSystem(s.world))
	s.runner.Register(system.NewEventSystem(s.world.Bus))
	s.runner.Register(system.NewCleanupSystem(s.world))
	s.subscribe()

	if err := s.grant(opts.Config.Player.StartWeapon, 1); err != nil {
		return nil, fmt.Errorf("start weapon: %w", err)
	}
	if bonuses.ExtraWeapon {
		if id := s.extraWeapon(opts.Config.Player.StartWeapon); id != "" {
			if err := s.grant(id, 2); err != nil {
				return nil, fmt.Errorf("bonus weapon: %w", err)
			}
		}
	}

	s.log.Info("run started",
		zap.Int64("seed", seed),
		zap.Bool("hard_mode", rc.HardMode),
		zap.Float64("damage_mult", bonuses.DamageMult),
		zap.Float64("bonus_health", bonuses.MaxHealth),
		zap.Int("systems", s.runner.Len()))
	return s, nil
}

func (s *Session) subscribe() {
	bus := s.world.Bus
	event.Subscribe(bus, func(ev event.EnemyDamaged) { s.effects.OnHit(ev.Pos) })
	event.Subscribe(bus, func(ev event.EnemyKilled) { s.effects.OnDeath(ev.Pos, ev.Color) })
	event.Subscribe(bus, func(ev event.LevelUp) {
		s.pending++
		s.effects.OnLevelUp(ev.Level)
		s.log.Info("level up", zap.Int("level", ev.Level))
	})
	event.Subscribe(bus, func(ev event.BossWarned) { s.effects.OnBossWarning(ev.Name) })
	event.Subscribe(bus, func(ev event.BossDefeated) {
		if ev.Final {
			s.finish(OutcomeVictory)
		}
	})
	event.Subscribe(bus, func(event.PlayerDefeated) { s.finish(OutcomeDefeated) })
	event.Subscribe(bus, func(ev event.WeaponAcquired) {
		if !ev.Evolved {
			s.recorder.RecordWeaponDiscovered(ev.WeaponID)
		}
	})
	event.Subscribe(bus, func(ev event.WeaponEvolved) {
		s.effects.OnEvolution(ev.ColorA, ev.ColorB)
		s.recorder.RecordEvolutionDiscovered(ev.EvolvedID)
	})
}

// Update advances the simulation by delta. It is a no-op while a level-up
// choice is pending or once the run is over, so sim time only counts
// unpaused frames.
func (s *Session) Update(delta time.Duration) {
	if s.over || s.pending > 0 || delta <= 0 {
		return
	}
	if delta > maxStep {
		delta = maxStep
	}
	s.elapsed += delta
	s.runner.Tick(coresys.Clock{Now: s.elapsed, Delta: delta})
}

// SetInput sets the normalized movement vector for the next ticks.
func (s *Session) SetInput(v vmath.Vec2) {
	if v.LenSq() > 1 {
		v = v.Norm()
	}
	s.world.Input = v
}

// Paused reports whether a level-up choice is waiting.
func (s *Session) Paused() bool { return s.pending > 0 }

// PendingChoices returns how many level-ups still wait for a choice.
func (s *Session) PendingChoices() int { return s.pending }

// Over reports whether the run ended; Victory whether it ended in a win.
func (s *Session) Over() bool    { return s.over }
func (s *Session) Victory() bool { return s.victory }

func (s *Session) ID() uuid.UUID            { return s.id }
func (s *Session) Elapsed() time.Duration   { return s.elapsed }
func (s *Session) World() *world.State      { return s.world }
func (s *Session) Arsenal() *weapon.Arsenal { return s.arsenal }
func (s *Session) XP() *system.XPTracker    { return s.xp }

// Summary reports the run so far.
func (s *Session) Summary() Summary {
	return Summary{
		Time:           s.elapsed,
		Kills:          s.world.Kills,
		BossesDefeated: s.world.BossesDefeated,
		WeaponsEvolved: s.world.WeaponsEvolved,
		Level:          s.xp.Level(),
	}
}

// BossStatus reports the active boss for the health bar.
func (s *Session) BossStatus() BossStatus {
	name, ratio, ok := s.bosses.Status()
	return BossStatus{Name: name, Ratio: ratio, Active: ok}
}

// Encounters exposes the boss schedule.
func (s *Session) Encounters() []system.Encounter { return s.bosses.Schedule() }

// Outcome is how a run ended.
type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeDefeated
	OutcomeVictory
	OutcomeAbandoned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDefeated:
		return "defeated"
	case OutcomeVictory:
		return "victory"
	case OutcomeAbandoned:
		return "abandoned"
	}
	return "running"
}

// Outcome reports how the run ended, OutcomeRunning while it lasts.
func (s *Session) Outcome() Outcome { return s.outcome }

// Abandon ends the run early (shutdown, time limit) and records the result.
// It fires OnAbandoned, never the defeat hook.
func (s *Session) Abandon() {
	s.finish(OutcomeAbandoned)
}

// finish ends the run once: it releases every pooled instance, records the
// result and fires the exit hook for outcome.
func (s *Session) finish(outcome Outcome) {
	if s.over {
		return
	}
	victory := outcome == OutcomeVictory
	s.over = true
	s.victory = victory
	s.outcome = outcome
	s.pending = 0
	sum := s.Summary()
	s.world.Pools.ReleaseAll()

	s.recorder.RecordRunResult(persist.RunResult{
		ID:             s.id,
		TimeSurvived:   sum.Time,
		Kills:          sum.Kills,
		BossesDefeated: sum.BossesDefeated,
		WeaponsEvolved: sum.WeaponsEvolved,
		Level:          sum.Level,
		Victory:        victory,
		HardMode:       s.world.Run.HardMode,
		EndedAt:        time.Now(),
	})
	s.log.Info("run over",
		zap.Stringer("outcome", outcome),
		zap.Duration("time", sum.Time),
		zap.Int("kills", sum.Kills),
		zap.Int("bosses", sum.BossesDefeated),
		zap.Int("evolved", sum.WeaponsEvolved),
		zap.Int("level", sum.Level))

	var hook func(Summary)
	switch outcome {
	case OutcomeVictory:
		hook = s.hooks.OnVictory
	case OutcomeDefeated:
		hook = s.hooks.OnPlayerDefeated
	case OutcomeAbandoned:
		hook = s.hooks.OnAbandoned
	}
	if hook != nil {
		hook(sum)
	}
}
