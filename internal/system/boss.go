package system

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/nightfall/cryptcore/internal/core/ecs"
	"github.com/nightfall/cryptcore/internal/core/event"
	coresys "github.com/nightfall/cryptcore/internal/core/system"
	"github.com/nightfall/cryptcore/internal/data"
	"github.com/nightfall/cryptcore/internal/vmath"
	"github.com/nightfall/cryptcore/internal/world"
)

// minionSpread is how far from the boss summoned minions appear.
const minionSpread = 40.0

// EncounterState is the lifecycle of one scheduled boss.
type EncounterState uint8

const (
	EncounterScheduled EncounterState = iota
	EncounterWarned
	EncounterActive
	EncounterDefeated
)

func (s EncounterState) String() string {
	switch s {
	case EncounterScheduled:
		return "scheduled"
	case EncounterWarned:
		return "warned"
	case EncounterActive:
		return "active"
	case EncounterDefeated:
		return "defeated"
	}
	return fmt.Sprintf("EncounterState(%d)", uint8(s))
}

// Encounter is one entry of the boss schedule.
type Encounter struct {
	At    time.Duration
	Def   *data.BossDef
	Final bool
	State EncounterState
}

// BossDirector walks the boss schedule and runs the state machine of the
// active boss. It is the only writer of boss hp besides the damage resolver.
// Phase 2 (Boss).
type BossDirector struct {
	world       *world.State
	log         *zap.Logger
	schedule    []Encounter
	appearances map[string]int
	current     int // schedule index of the active boss, -1 when none
}

func NewBossDirector(ws *world.State, log *zap.Logger) (*BossDirector, error) {
	cfg := ws.Run.Config.Bosses
	d := &BossDirector{
		world:       ws,
		log:         log,
		schedule:    make([]Encounter, 0, len(cfg.Schedule)),
		appearances: make(map[string]int),
		current:     -1,
	}
	for i, e := range cfg.Schedule {
		def, err := ws.Run.Catalog.Boss(e.Type)
		if err != nil {
			return nil, fmt.Errorf("boss schedule entry %d: %w", i, err)
		}
		d.schedule = append(d.schedule, Encounter{At: e.At.Duration, Def: def, Final: e.Final})
	}
	return d, nil
}

func (d *BossDirector) Phase() coresys.Phase { return coresys.PhaseBoss }

// Schedule exposes the encounters in schedule order. Callers must not modify it.
func (d *BossDirector) Schedule() []Encounter { return d.schedule }

// Status reports the active boss name and health ratio for the health bar.
func (d *BossDirector) Status() (name string, ratio float64, ok bool) {
	b := d.world.ActiveBoss()
	if b == nil {
		return "", 0, false
	}
	return b.Def.Name, b.HealthRatio(), true
}

func (d *BossDirector) Update(clk coresys.Clock) {
	now := clk.Now
	warning := d.world.Run.Config.Bosses.Warning.Duration
	for i := range d.schedule {
		e := &d.schedule[i]
		if e.State == EncounterScheduled && now >= e.At-warning {
			e.State = EncounterWarned
			event.Emit(d.world.Bus, event.BossWarned{Type: e.Def.Type, Name: e.Def.Name})
			d.log.Info("boss approaching", zap.String("boss", e.Def.Name), zap.Duration("at", e.At))
		}
		// a busy slot leaves the entry warned; it is retried next tick
		if e.State == EncounterWarned && now >= e.At && d.world.ActiveBoss() == nil {
			d.spawn(i, now)
		}
	}

	b := d.world.ActiveBoss()
	if b == nil {
		return
	}
	if b.Defeated {
		d.defeat(b, now)
		return
	}
	switch b.Def.Behavior {
	case data.BossAreaDenial:
		d.areaDenial(b, now)
	case data.BossBurstLifesteal:
		d.burstLifesteal(b, now)
	case data.BossEscalatingAura:
		d.escalatingAura(b, now)
	}
}

func (d *BossDirector) spawn(i int, now time.Duration) {
	e := &d.schedule[i]
	def := e.Def
	appearance := d.appearances[def.Type]
	d.appearances[def.Type] = appearance + 1

	p := &d.world.Player
	cfg := d.world.Run.Config
	dist := math.Hypot(cfg.Spawn.ViewWidth, cfg.Spawn.ViewHeight)/2 + cfg.Bosses.SpawnPadding
	pos := p.Pos.Add(p.Facing.Scale(dist))

	b := d.world.SpawnBoss(def, appearance, e.Final, pos, now)
	b.NextBreath = now + def.BreathCooldown
	b.NextSweep = now + def.SweepCooldown
	b.NextSummon = now
	b.NextLifesteal = now + def.LifestealCooldown
	b.NextContact = now
	b.Dashing = true
	b.PhaseEnds = now + def.DashDuration

	e.State = EncounterActive
	d.current = i
	event.Emit(d.world.Bus, event.BossSpawned{Type: def.Type, Name: def.Name, Appearance: appearance})
	d.log.Info("boss spawned",
		zap.String("boss", def.Name),
		zap.Int("appearance", appearance),
		zap.Float64("hp", b.MaxHP),
		zap.Duration("elapsed", now))
}

// defeat runs the completion bookkeeping: mercy clear, treasure and the
// defeated notification.
func (d *BossDirector) defeat(b *world.Boss, now time.Duration) {
	cleared := d.world.ClearEnemies(now)
	d.world.SpawnChest(b.Pos, now)
	d.world.BossesDefeated++
	event.Emit(d.world.Bus, event.BossDefeated{Type: b.Def.Type, Name: b.Def.Name, Pos: b.Pos, Final: b.Final})
	d.log.Info("boss defeated",
		zap.String("boss", b.Def.Name),
		zap.Int("cleared", cleared),
		zap.Bool("final", b.Final),
		zap.Duration("elapsed", now))
	if d.current >= 0 {
		d.schedule[d.current].State = EncounterDefeated
		d.current = -1
	}
	d.world.ClearBoss()
}

// pursue points the boss at the player at speed.
func (d *BossDirector) pursue(b *world.Boss, speed float64) {
	to := d.world.Player.Pos.Sub(b.Pos)
	if to.IsZero() {
		b.Vel = vmath.Vec2{}
		return
	}
	dir := to.Norm()
	b.Facing = dir
	b.Vel = dir.Scale(speed)
}

func (d *BossDirector) hurt(b *world.Boss, amount float64, source string, now time.Duration) bool {
	return d.world.HurtPlayer(amount*d.world.Run.HardModeMult(), b.Def.Type+":"+source, now)
}

// areaDenial pursues, breathes a cone along its facing and sweeps its tail
// around itself.
func (d *BossDirector) areaDenial(b *world.Boss, now time.Duration) {
	def := b.Def
	d.pursue(b, b.BaseSpeed)
	p := &d.world.Player

	if now >= b.NextBreath {
		b.NextBreath = now + def.BreathCooldown
		to := p.Pos.Sub(b.Pos)
		off := math.Abs(vmath.WrapAngle(b.Facing.Angle() - to.Angle()))
		if to.Len() < def.BreathRange && off <= def.BreathAngle {
			d.hurt(b, def.BreathDamage, "breath", now)
		}
	}
	if now >= b.NextSweep {
		b.NextSweep = now + def.SweepCooldown
		if p.Pos.Dist(b.Pos) <= def.SweepRadius {
			d.hurt(b, def.SweepDamage, "sweep", now)
		}
	}
}

// burstLifesteal alternates dash and pause, summons minions and periodically
// blinks next to the player for a draining strike.
func (d *BossDirector) burstLifesteal(b *world.Boss, now time.Duration) {
	def := b.Def
	p := &d.world.Player

	if now >= b.NextSummon {
		b.NextSummon = now + def.SummonCooldown
		d.summon(b, now)
	}
	if now >= b.NextLifesteal {
		b.NextLifesteal = now + def.LifestealCooldown
		b.Pos = d.world.RandomOnRing(p.Pos, def.LifestealDistance)
		if d.hurt(b, def.LifestealDamage, "lifesteal", now) {
			b.Heal(def.LifestealHeal)
		}
	}
	if now >= b.PhaseEnds {
		b.Dashing = !b.Dashing
		if b.Dashing {
			b.PhaseEnds = now + def.DashDuration
		} else {
			b.PhaseEnds = now + def.PauseDuration
		}
	}
	if b.Dashing {
		d.pursue(b, def.DashSpeed)
	} else {
		b.Vel = vmath.Vec2{}
	}
}

func (d *BossDirector) summon(b *world.Boss, now time.Duration) {
	def := b.Def
	if def.SummonCount <= 0 {
		return
	}
	minion, err := d.world.Run.Catalog.Enemy(def.Minion)
	if err != nil {
		d.log.Error("boss minion missing", zap.String("boss", def.Type), zap.Error(err))
		return
	}
	hard := d.world.Run.HardModeMult()
	st := world.EnemyStats{
		Def:    minion,
		HP:     minion.HP * def.MinionHPMult * hard,
		Speed:  minion.Speed * def.MinionSpeedMult,
		Damage: minion.Damage * hard,
		XP:     def.MinionXP,
		Minion: true,
	}
	maxAlive := d.world.Run.Config.Spawn.MaxAlive
	for i := 0; i < def.SummonCount; i++ {
		if d.world.Enemies.ActiveCount() >= maxAlive {
			return
		}
		d.world.SpawnEnemy(st, d.world.RandomOnRing(b.Pos, minionSpread), now)
	}
}

// escalatingAura speeds up with run time, burns the player on contact and
// hastens every regular enemy inside its aura for this tick only.
func (d *BossDirector) escalatingAura(b *world.Boss, now time.Duration) {
	def := b.Def
	b.Speed = b.BaseSpeed * (1 + now.Seconds()*def.SpeedRampPerSecond)
	d.pursue(b, b.Speed)

	tick := d.world.Run.Config.Bosses.ContactTick.Duration
	if now >= b.NextContact {
		b.NextContact = now + tick
		if d.world.Player.Pos.Dist(b.Pos) <= def.ContactRange {
			d.hurt(b, def.ContactDamagePerSecond*tick.Seconds(), "contact", now)
		}
	}

	r2 := def.AuraRadius * def.AuraRadius
	d.world.Enemies.Each(func(_ ecs.EntityID, e *world.Enemy) bool {
		if !e.Dying && e.Pos.DistSq(b.Pos) <= r2 {
			e.SpeedBoost = def.AuraSpeedBoost
		}
		return true
	})
}
