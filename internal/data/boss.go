package data

import (
	"fmt"
	"time"
)

// BossBehavior selects the boss state machine.
type BossBehavior string

const (
	BossAreaDenial     BossBehavior = "area_denial"     // pursuit, breath cone, tail sweep
	BossBurstLifesteal BossBehavior = "burst_lifesteal" // dash/pause, summons, lifesteal strike
	BossEscalatingAura BossBehavior = "escalating_aura" // speed ramp, contact tick, speed aura
)

// BossDef is the static definition of a boss type.
type BossDef struct {
	Type            string       `yaml:"type"`
	Name            string       `yaml:"name"`
	Behavior        BossBehavior `yaml:"behavior"`
	BaseHP          float64      `yaml:"base_hp"`
	HPPerAppearance float64      `yaml:"hp_per_appearance"`
	Speed           float64      `yaml:"speed"`
	Radius          float64      `yaml:"radius"`
	Color           uint32       `yaml:"color"`
	KnockbackImmune bool         `yaml:"knockback_immune"`

	// area_denial
	BreathCooldown time.Duration `yaml:"breath_cooldown"`
	BreathDamage   float64       `yaml:"breath_damage"`
	BreathRange    float64       `yaml:"breath_range"`
	BreathAngle    float64       `yaml:"breath_angle"` // radians, half-cone
	SweepCooldown  time.Duration `yaml:"sweep_cooldown"`
	SweepRadius    float64       `yaml:"sweep_radius"`
	SweepDamage    float64       `yaml:"sweep_damage"`

	// burst_lifesteal
	DashSpeed         float64       `yaml:"dash_speed"`
	DashDuration      time.Duration `yaml:"dash_duration"`
	PauseDuration     time.Duration `yaml:"pause_duration"`
	SummonCooldown    time.Duration `yaml:"summon_cooldown"`
	SummonCount       int           `yaml:"summon_count"`
	Minion            string        `yaml:"minion"`
	MinionHPMult      float64       `yaml:"minion_hp_mult"`
	MinionSpeedMult   float64       `yaml:"minion_speed_mult"`
	MinionXP          int           `yaml:"minion_xp"`
	LifestealCooldown time.Duration `yaml:"lifesteal_cooldown"`
	LifestealDamage   float64       `yaml:"lifesteal_damage"`
	LifestealHeal     float64       `yaml:"lifesteal_heal"`
	LifestealDistance float64       `yaml:"lifesteal_distance"`

	// escalating_aura
	SpeedRampPerSecond     float64 `yaml:"speed_ramp_per_second"`
	ContactDamagePerSecond float64 `yaml:"contact_damage_per_second"`
	ContactRange           float64 `yaml:"contact_range"`
	AuraRadius             float64 `yaml:"aura_radius"`
	AuraSpeedBoost         float64 `yaml:"aura_speed_boost"`
}

type bossListFile struct {
	Bosses []BossDef `yaml:"bosses"`
}

// HPFor returns the boss hp for the given zero-based appearance index.
func (b *BossDef) HPFor(appearance int) float64 {
	return b.BaseHP + b.HPPerAppearance*float64(appearance)
}

func validateBoss(b *BossDef) error {
	if b.Type == "" {
		return fmt.Errorf("boss without type")
	}
	if b.BaseHP <= 0 {
		return fmt.Errorf("boss %s: base_hp must be positive", b.Type)
	}
	switch b.Behavior {
	case BossAreaDenial:
		if b.BreathCooldown <= 0 || b.SweepCooldown <= 0 || b.BreathRange <= 0 || b.BreathAngle <= 0 {
			return fmt.Errorf("boss %s: breath and sweep timings required", b.Type)
		}
	case BossBurstLifesteal:
		if b.DashDuration <= 0 || b.PauseDuration <= 0 || b.SummonCooldown <= 0 || b.LifestealCooldown <= 0 {
			return fmt.Errorf("boss %s: dash, pause, summon and lifesteal timings required", b.Type)
		}
		if b.SummonCount > 0 && b.Minion == "" {
			return fmt.Errorf("boss %s: summon_count without minion", b.Type)
		}
	case BossEscalatingAura:
		if b.ContactRange <= 0 || b.AuraRadius <= 0 {
			return fmt.Errorf("boss %s: contact_range and aura_radius required", b.Type)
		}
	default:
		return fmt.Errorf("boss %s: unknown behavior %q", b.Type, b.Behavior)
	}
	return nil
}
