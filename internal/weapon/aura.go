package weapon

import (
	"time"

	"github.com/nightfall/cryptcore/internal/data"
	"github.com/nightfall/cryptcore/internal/vmath"
	"github.com/nightfall/cryptcore/internal/world"
)

// fireAura damages and knocks back everything within Area of the owner.
func (w *Weapon) fireAura(ws *world.State, now time.Duration) {
	ws.Resolve(world.Strike{
		Shape:     world.Circle(ws.Player.Pos, w.Area),
		Damage:    w.EffectiveDamage(),
		Knockback: w.def.Params.Knockback,
	}, now)
}

// AuraVisual returns the cosmetic ring an aura weapon shows around its owner.
// It carries no damage logic; ok is false for other behaviors.
func (w *Weapon) AuraVisual(owner vmath.Vec2) (center vmath.Vec2, radius float64, ok bool) {
	if w.def.Behavior != data.BehaviorAura {
		return vmath.Vec2{}, 0, false
	}
	return owner, w.Area, true
}
