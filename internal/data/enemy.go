package data

import (
	"fmt"
	"sort"
	"time"
)

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// EnemyDef holds the static stats for one regular enemy type.
type EnemyDef struct {
	Key              string        `yaml:"key"`
	Name             string        `yaml:"name"`
	HP               float64       `yaml:"hp"`
	Speed            float64       `yaml:"speed"`
	Damage           float64       `yaml:"damage"`
	XP               int           `yaml:"xp"`
	KnockbackResist  float64       `yaml:"knockback_resist"` // 0..1
	DamageTaken      float64       `yaml:"damage_taken"`     // incoming damage multiplier, 0 = 1
	Radius           float64       `yaml:"radius"`
	Color            uint32        `yaml:"color"`
	ErraticAmplitude float64       `yaml:"erratic_amplitude"`
	TeleportCooldown time.Duration `yaml:"teleport_cooldown"`
	TeleportRange    Range         `yaml:"teleport_range"`
}

// SpawnBreakpoint maps enemy keys to relative weights at a point in the run.
type SpawnBreakpoint struct {
	At      time.Duration      `yaml:"at"`
	Weights map[string]float64 `yaml:"weights"`
}

// Scaling is the per-minute growth applied to spawned enemies. The scripting
// engine may override it; these values are the fallback.
type Scaling struct {
	HPPerMinute     float64 `yaml:"hp_per_minute"`
	SpeedPerMinute  float64 `yaml:"speed_per_minute"`
	DamagePerMinute float64 `yaml:"damage_per_minute"`
	MaxSpeedMult    float64 `yaml:"max_speed_mult"`
}

type enemyListFile struct {
	Enemies    []EnemyDef        `yaml:"enemies"`
	SpawnTable []SpawnBreakpoint `yaml:"spawn_table"`
	Scaling    Scaling           `yaml:"scaling"`
}

// SpawnTable is a time-indexed weighted table of enemy types.
type SpawnTable struct {
	rows []SpawnBreakpoint
	keys []string // sorted union of keys, for deterministic iteration
}

func newSpawnTable(rows []SpawnBreakpoint) *SpawnTable {
	sorted := make([]SpawnBreakpoint, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	seen := map[string]struct{}{}
	var keys []string
	for _, r := range sorted {
		for k := range r.Weights {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return &SpawnTable{rows: sorted, keys: keys}
}

// Keys returns every enemy key that appears in the table, sorted.
func (t *SpawnTable) Keys() []string { return t.keys }

// Len returns the number of breakpoints.
func (t *SpawnTable) Len() int { return len(t.rows) }

// WeightsAt writes the weight of each key (in Keys order) at elapsed into dst.
// Before horizon the first breakpoint is used as-is; past it weights
// interpolate linearly between the bracketing breakpoints and hold at the last.
func (t *SpawnTable) WeightsAt(elapsed, horizon time.Duration, dst []float64) []float64 {
	dst = dst[:0]
	if len(t.rows) == 0 {
		return dst
	}
	lo, hi, frac := 0, 0, 0.0
	if elapsed >= horizon {
		last := len(t.rows) - 1
		switch {
		case elapsed >= t.rows[last].At:
			lo, hi = last, last
		default:
			for i := 0; i < last; i++ {
				if elapsed >= t.rows[i].At && elapsed < t.rows[i+1].At {
					lo, hi = i, i+1
					span := t.rows[hi].At - t.rows[lo].At
					if span > 0 {
						frac = float64(elapsed-t.rows[lo].At) / float64(span)
					}
					break
				}
			}
		}
	}
	for _, k := range t.keys {
		a := t.rows[lo].Weights[k]
		b := t.rows[hi].Weights[k]
		dst = append(dst, a+(b-a)*frac)
	}
	return dst
}

func validateEnemy(e *EnemyDef) error {
	if e.Key == "" {
		return fmt.Errorf("enemy without key")
	}
	if e.HP <= 0 || e.Speed < 0 || e.Damage < 0 {
		return fmt.Errorf("enemy %s: hp must be positive, speed and damage non-negative", e.Key)
	}
	if e.TeleportCooldown > 0 && (e.TeleportRange.Max < e.TeleportRange.Min || e.TeleportRange.Max <= 0) {
		return fmt.Errorf("enemy %s: teleport_range invalid", e.Key)
	}
	if e.KnockbackResist < 0 || e.KnockbackResist > 1 {
		return fmt.Errorf("enemy %s: knockback_resist outside [0,1]", e.Key)
	}
	return nil
}
