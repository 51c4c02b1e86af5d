package world

import (
	"time"

	"github.com/nightfall/cryptcore/internal/core/ecs"
	"github.com/nightfall/cryptcore/internal/data"
	"github.com/nightfall/cryptcore/internal/vmath"
)

// Boss is the single active boss slot. Ability timers are absolute simulation
// times; the boss director owns the state machine that reads them.
type Boss struct {
	Def        *data.BossDef
	Ref        ecs.EntityID // unique per appearance, for hit-sets
	Appearance int
	Final      bool

	Pos    vmath.Vec2
	Vel    vmath.Vec2
	Facing vmath.Vec2

	HP        float64
	MaxHP     float64
	BaseSpeed float64
	Speed     float64
	SpawnedAt time.Duration
	Defeated  bool

	NextBreath    time.Duration
	NextSweep     time.Duration
	NextSummon    time.Duration
	NextLifesteal time.Duration
	NextContact   time.Duration

	Dashing   bool
	PhaseEnds time.Duration
}

// HealthRatio projects hp into [0,1] for the health bar.
func (b *Boss) HealthRatio() float64 {
	if b.MaxHP <= 0 {
		return 0
	}
	r := b.HP / b.MaxHP
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}

// Heal restores hp up to the maximum.
func (b *Boss) Heal(amount float64) {
	if b.Defeated {
		return
	}
	b.HP += amount
	if b.HP > b.MaxHP {
		b.HP = b.MaxHP
	}
}

func (b *Boss) takeDamage(amount float64) bool {
	if b.Defeated || amount <= 0 {
		return false
	}
	b.HP -= amount
	if b.HP <= 0 {
		b.HP = 0
		b.Defeated = true
		b.Vel = vmath.Vec2{}
	}
	return true
}
