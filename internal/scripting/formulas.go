package scripting

import (
	"math"

	"github.com/nightfall/cryptcore/internal/data"
)

// Formulas answers the tunable curves the simulation needs. It prefers the
// Lua engine and falls back to the built-in Go formulas when no engine is
// attached or a script call fails, so a script error never stalls a tick.
type Formulas struct {
	eng      *Engine
	xpBase   int
	xpGrowth float64
	scaling  data.Scaling

	// minute scaling is asked for on every spawn; cache the current minute
	lastMinute int
	lastMult   Multipliers
}

// NewFormulas builds the curve source. eng may be nil.
func NewFormulas(eng *Engine, xpBase int, xpGrowth float64, scaling data.Scaling) *Formulas {
	return &Formulas{
		eng:        eng,
		xpBase:     xpBase,
		xpGrowth:   xpGrowth,
		scaling:    scaling,
		lastMinute: -1,
	}
}

// XPThreshold returns the experience needed to leave level.
func (f *Formulas) XPThreshold(level int) int {
	if f.eng != nil {
		if v, ok := f.eng.XPThreshold(level); ok {
			return v
		}
	}
	return FallbackXPThreshold(level, f.xpBase, f.xpGrowth)
}

// MinuteScaling returns the spawn multipliers for whole minutes survived.
func (f *Formulas) MinuteScaling(minute int) Multipliers {
	if minute == f.lastMinute {
		return f.lastMult
	}
	m, ok := Multipliers{}, false
	if f.eng != nil {
		m, ok = f.eng.MinuteScaling(minute)
	}
	if !ok {
		m = FallbackMinuteScaling(minute, f.scaling)
	}
	f.lastMinute, f.lastMult = minute, m
	return m
}

// FallbackXPThreshold compounds growth from base, rounding up at every level.
func FallbackXPThreshold(level, base int, growth float64) int {
	t := base
	for l := 1; l < level; l++ {
		t = int(math.Ceil(float64(t) * growth))
	}
	return t
}

// FallbackMinuteScaling applies the content table's linear per-minute growth.
func FallbackMinuteScaling(minute int, s data.Scaling) Multipliers {
	m := float64(minute)
	speed := 1 + s.SpeedPerMinute*m
	if s.MaxSpeedMult > 0 && speed > s.MaxSpeedMult {
		speed = s.MaxSpeedMult
	}
	return Multipliers{
		HP:     1 + s.HPPerMinute*m,
		Speed:  speed,
		Damage: 1 + s.DamagePerMinute*m,
	}
}
