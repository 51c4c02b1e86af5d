package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nightfall/cryptcore/internal/data"
)

// levelPassive raises passive id by one level and reapplies its effect.
func (s *Session) levelPassive(id string) error {
	p, ok := s.world.Run.Catalog.Passive(id)
	if !ok {
		return fmt.Errorf("%w: unknown passive %s", ErrChoiceUnavailable, id)
	}
	lvl := s.passives[id]
	if lvl >= p.MaxLevel {
		return fmt.Errorf("%w: %s is at its final level", ErrChoiceUnavailable, id)
	}
	lvl++
	s.passives[id] = lvl

	cfg := s.world.Run.Config.Player
	bonus := s.world.Run.Bonuses
	player := &s.world.Player
	mods := s.arsenal.Modifiers()
	k := p.PerLevel * float64(lvl)
	switch p.Effect {
	case data.PassiveDamage:
		mods.Damage = bonus.DamageMult * (1 + k)
	case data.PassiveCooldown:
		mods.Cooldown = max(0.1, 1-k)
	case data.PassivePickupRadius:
		player.PickupRadius = cfg.PickupRadius * bonus.PickupMult * (1 + k)
	case data.PassiveMaxHealth:
		player.RaiseMaxHealth(p.PerLevel)
	case data.PassiveMoveSpeed:
		player.Speed = cfg.Speed * (1 + k)
	}
	s.log.Info("passive leveled", zap.String("passive", id), zap.Int("level", lvl))
	return nil
}

// PassiveLevel returns the level of passive id, 0 when not taken.
func (s *Session) PassiveLevel(id string) int { return s.passives[id] }
