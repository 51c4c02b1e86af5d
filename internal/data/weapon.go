package data

import (
	"errors"
	"fmt"
	"time"
)

// Behavior is the closed set of weapon behavior families.
type Behavior string

const (
	BehaviorMelee     Behavior = "melee"     // short-lived swing hitbox, single hit-set
	BehaviorZone      Behavior = "zone"      // damage-over-time area until expiry
	BehaviorOrbit     Behavior = "orbit"     // instances circling the owner
	BehaviorReturning Behavior = "returning" // outbound then return to owner
	BehaviorHoming    Behavior = "homing"    // ballistic orb with per-enemy re-hit timer
	BehaviorAura      Behavior = "aura"      // instant AoE around the owner each cooldown
	BehaviorFalling   Behavior = "falling"   // projectiles dropping onto random points
	BehaviorSweep     Behavior = "sweep"     // screen-wide wave crossing the view
)

// ZoneShape selects how a zone weapon tests containment.
type ZoneShape string

const (
	ZoneCircle ZoneShape = "circle"
	ZoneRect   ZoneShape = "rect"
	ZoneRing   ZoneShape = "ring"
)

// WeaponStats are the level-1 numbers the growth curve scales from.
type WeaponStats struct {
	Damage          float64       `yaml:"damage"`
	Cooldown        time.Duration `yaml:"cooldown"`
	CooldownFloor   time.Duration `yaml:"cooldown_floor"`
	Area            float64       `yaml:"area"`
	ProjectileCount int           `yaml:"projectile_count"`
	Speed           float64       `yaml:"speed"`
	Duration        time.Duration `yaml:"duration"`
	Pierce          int           `yaml:"pierce"` // 0 = unlimited within the hit-set
}

// WeaponParams are the behavior-specific knobs. Which fields are required
// depends on the behavior; see validateWeapon.
type WeaponParams struct {
	Length           float64       `yaml:"length"`
	Height           float64       `yaml:"height"`
	TickInterval     time.Duration `yaml:"tick_interval"`
	Shape            ZoneShape     `yaml:"shape"`
	Thrown           bool          `yaml:"thrown"`
	ThrowRadius      float64       `yaml:"throw_radius"`
	TargetNearest    bool          `yaml:"target_nearest"`
	FollowOwner      bool          `yaml:"follow_owner"`
	RingWidth        float64       `yaml:"ring_width"`
	Knockback        float64       `yaml:"knockback"`
	OutboundDistance float64       `yaml:"outbound_distance"`
	ReturnRadius     float64       `yaml:"return_radius"`
	RotationPeriod   time.Duration `yaml:"rotation_period"`
	HitCooldown      time.Duration `yaml:"hit_cooldown"`
	Size             float64       `yaml:"size"`
	MinRadius        float64       `yaml:"min_radius"`
	MaxRadius        float64       `yaml:"max_radius"`
	BoltDamage       float64       `yaml:"bolt_damage"`
	BoltCooldown     time.Duration `yaml:"bolt_cooldown"`
	BoltLifetime     time.Duration `yaml:"bolt_lifetime"`
	BoltSpeed        float64       `yaml:"bolt_speed"`
	TrailSegments    int           `yaml:"trail_segments"`
	TrailDamage      float64       `yaml:"trail_damage"`
	TrailTick        time.Duration `yaml:"trail_tick"`
	TrailDuration    time.Duration `yaml:"trail_duration"`
	ZoneRadius       float64       `yaml:"zone_radius"`
	FallHeight       float64       `yaml:"fall_height"`
}

// WeaponDef is the static definition of one weapon.
type WeaponDef struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Behavior    Behavior     `yaml:"behavior"`
	Color       uint32       `yaml:"color"`
	Evolved     bool         `yaml:"evolved"`
	Base        WeaponStats  `yaml:"base"`
	Params      WeaponParams `yaml:"params"`
}

// EvolutionRule fuses two max-level weapons into one evolved weapon.
type EvolutionRule struct {
	Requires [2]string `yaml:"requires"`
	Evolved  string    `yaml:"evolved"`
}

// PassiveEffect is the stat a passive upgrade modifies.
type PassiveEffect string

const (
	PassiveDamage       PassiveEffect = "damage"
	PassiveCooldown     PassiveEffect = "cooldown"
	PassivePickupRadius PassiveEffect = "pickup_radius"
	PassiveMaxHealth    PassiveEffect = "max_health"
	PassiveMoveSpeed    PassiveEffect = "move_speed"
)

// PassiveDef is a non-weapon level-up choice.
type PassiveDef struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Effect      PassiveEffect `yaml:"effect"`
	PerLevel    float64       `yaml:"per_level"`
	MaxLevel    int           `yaml:"max_level"`
}

type weaponListFile struct {
	Weapons    []WeaponDef     `yaml:"weapons"`
	Evolutions []EvolutionRule `yaml:"evolutions"`
	Passives   []PassiveDef    `yaml:"passives"`
}

func validateWeapon(w *WeaponDef) error {
	var errs []error
	if w.ID == "" {
		return errors.New("weapon without id")
	}
	if w.Base.Damage <= 0 && w.Behavior != BehaviorOrbit {
		errs = append(errs, fmt.Errorf("weapon %s: base.damage must be positive", w.ID))
	}
	if w.Base.Cooldown <= 0 {
		errs = append(errs, fmt.Errorf("weapon %s: base.cooldown must be positive", w.ID))
	}
	if w.Base.Area <= 0 {
		errs = append(errs, fmt.Errorf("weapon %s: base.area must be positive", w.ID))
	}
	if w.Base.ProjectileCount < 1 {
		errs = append(errs, fmt.Errorf("weapon %s: base.projectile_count must be at least 1", w.ID))
	}
	p := &w.Params
	need := func(ok bool, what string) {
		if !ok {
			errs = append(errs, fmt.Errorf("weapon %s (%s): %s", w.ID, w.Behavior, what))
		}
	}
	switch w.Behavior {
	case BehaviorMelee:
		need(p.Length > 0, "params.length required")
		need(w.Base.Duration > 0, "base.duration required")
		if p.TrailSegments > 0 {
			need(p.TrailTick > 0 && p.TrailDuration > 0, "trail_tick and trail_duration required with trail_segments")
		}
	case BehaviorZone:
		need(w.Base.Duration > 0, "base.duration required")
		switch p.Shape {
		case ZoneCircle:
			need(p.TickInterval > 0, "params.tick_interval required")
		case ZoneRect:
			need(p.TickInterval > 0 && p.Height > 0, "params.tick_interval and params.height required")
		case ZoneRing:
			need(p.RingWidth > 0, "params.ring_width required")
		default:
			errs = append(errs, fmt.Errorf("weapon %s: unknown zone shape %q", w.ID, p.Shape))
		}
		if p.Thrown {
			need(p.ThrowRadius > 0 && w.Base.Speed > 0, "thrown zones need throw_radius and base.speed")
		}
	case BehaviorOrbit:
		need(p.RotationPeriod > 0, "params.rotation_period required")
		need(p.HitCooldown > 0, "params.hit_cooldown required")
		need(p.Size > 0, "params.size required")
		if p.BoltDamage > 0 {
			need(p.BoltCooldown > 0 && p.BoltLifetime > 0 && p.BoltSpeed > 0, "bolts need bolt_cooldown, bolt_lifetime and bolt_speed")
			need(p.MaxRadius >= p.MinRadius && p.MinRadius > 0, "bolt skulls need min_radius <= max_radius")
		}
	case BehaviorReturning:
		need(p.OutboundDistance > 0, "params.outbound_distance required")
		need(w.Base.Speed > 0, "base.speed required")
	case BehaviorHoming:
		need(p.TickInterval > 0, "params.tick_interval required")
		need(w.Base.Duration > 0 && w.Base.Speed > 0, "base.duration and base.speed required")
	case BehaviorAura:
	case BehaviorFalling:
		need(p.ZoneRadius > 0 && p.FallHeight > 0, "params.zone_radius and params.fall_height required")
		need(w.Base.Speed > 0, "base.speed required")
	case BehaviorSweep:
		need(w.Base.Duration > 0, "base.duration required")
	default:
		errs = append(errs, fmt.Errorf("weapon %s: unknown behavior %q", w.ID, w.Behavior))
	}
	return errors.Join(errs...)
}
