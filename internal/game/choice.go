package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nightfall/cryptcore/internal/core/event"
	"github.com/nightfall/cryptcore/internal/data"
	"github.com/nightfall/cryptcore/internal/weapon"
)

// ChoiceKind tells the picker what a choice upgrades.
type ChoiceKind string

const (
	ChoiceWeapon    ChoiceKind = "weapon"
	ChoicePassive   ChoiceKind = "passive"
	ChoiceEvolution ChoiceKind = "evolution"
)

// Choice is one level-up option. CurrentLevel is 0 for things not yet owned.
type Choice struct {
	ID           string
	Kind         ChoiceKind
	CurrentLevel int
}

// AvailableChoices returns up to count options for the pending level-up.
// Ready evolutions come first; the remaining slots are a random draw over
// upgradable weapons, new weapons (while the arsenal has room) and passives.
func (s *Session) AvailableChoices(count int) []Choice {
	out := make([]Choice, 0, count)
	s.ready = s.arsenal.ReadyEvolutions(s.ready[:0])
	for _, r := range s.ready {
		if len(out) == count {
			return out
		}
		out = append(out, Choice{ID: r.Evolved, Kind: ChoiceEvolution})
	}

	pool := s.candidates()
	rng := s.world.Rng
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	for _, c := range pool {
		if len(out) == count {
			break
		}
		out = append(out, c)
	}
	return out
}

// candidates lists every non-evolution choice currently valid.
func (s *Session) candidates() []Choice {
	cat := s.world.Run.Catalog
	s.choices = s.choices[:0]
	for _, w := range s.arsenal.Weapons() {
		if !w.Evolved() && w.Level() < weapon.MaxLevel {
			s.choices = append(s.choices, Choice{ID: w.ID(), Kind: ChoiceWeapon, CurrentLevel: w.Level()})
		}
	}
	if !s.arsenal.Full() {
		for _, id := range cat.BaseWeaponIDs() {
			if !s.arsenal.Has(id) && !s.consumed(id) {
				s.choices = append(s.choices, Choice{ID: id, Kind: ChoiceWeapon})
			}
		}
	}
	for _, id := range cat.PassiveIDs() {
		p, _ := cat.Passive(id)
		if lvl := s.passives[id]; lvl < p.MaxLevel {
			s.choices = append(s.choices, Choice{ID: id, Kind: ChoicePassive, CurrentLevel: lvl})
		}
	}
	return s.choices
}

// consumed reports whether base weapon id already went into an owned
// evolution, so it is not offered again.
func (s *Session) consumed(id string) bool {
	for _, r := range s.world.Run.Catalog.Evolutions() {
		if s.arsenal.Has(r.Evolved) && (r.Requires[0] == id || r.Requires[1] == id) {
			return true
		}
	}
	return false
}

// ApplyChoice resolves one pending level-up with c. The choice must be valid
// now, whether or not it was among the last offered.
func (s *Session) ApplyChoice(c Choice) error {
	if s.over {
		return ErrRunOver
	}
	if s.pending == 0 {
		return ErrNoPendingChoice
	}
	if err := s.apply(c); err != nil {
		return err
	}
	s.pending--
	return nil
}

// SkipChoice resolves one pending level-up without an upgrade, for when
// nothing is left to offer.
func (s *Session) SkipChoice() error {
	if s.pending == 0 {
		return ErrNoPendingChoice
	}
	s.pending--
	return nil
}

func (s *Session) apply(c Choice) error {
	switch c.Kind {
	case ChoiceEvolution:
		return s.evolve(c.ID)
	case ChoiceWeapon:
		if s.arsenal.Has(c.ID) {
			w, _ := s.arsenal.Get(c.ID)
			if w.Evolved() || w.Level() >= weapon.MaxLevel {
				return fmt.Errorf("%w: %s is at its final level", ErrChoiceUnavailable, c.ID)
			}
			lvl, err := s.arsenal.LevelUp(c.ID)
			if err != nil {
				return err
			}
			s.log.Info("weapon leveled", zap.String("weapon", c.ID), zap.Int("level", lvl))
			return nil
		}
		def, err := s.world.Run.Catalog.Weapon(c.ID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrChoiceUnavailable, err)
		}
		if def.Evolved || s.consumed(c.ID) {
			return fmt.Errorf("%w: %s cannot be picked directly", ErrChoiceUnavailable, c.ID)
		}
		return s.grant(c.ID, 1)
	case ChoicePassive:
		return s.levelPassive(c.ID)
	}
	return fmt.Errorf("%w: unknown kind %q", ErrChoiceUnavailable, c.Kind)
}

// grant adds a weapon to the arsenal and announces the discovery.
func (s *Session) grant(id string, level int) error {
	w, err := s.arsenal.Add(id, level)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrChoiceUnavailable, err)
	}
	event.Emit(s.world.Bus, event.WeaponAcquired{WeaponID: w.ID(), Evolved: w.Evolved()})
	return nil
}

func (s *Session) evolve(evolvedID string) error {
	var rule data.EvolutionRule
	found := false
	for _, r := range s.arsenal.ReadyEvolutions(s.ready[:0]) {
		if r.Evolved == evolvedID {
			rule, found = r, true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: evolution %s not ready", ErrChoiceUnavailable, evolvedID)
	}
	a, _ := s.arsenal.Get(rule.Requires[0])
	b, _ := s.arsenal.Get(rule.Requires[1])
	colorA, colorB := a.Def().Color, b.Def().Color

	w, err := s.arsenal.Evolve(rule)
	if err != nil {
		return err
	}
	s.world.WeaponsEvolved++
	event.Emit(s.world.Bus, event.WeaponAcquired{WeaponID: w.ID(), Evolved: true})
	event.Emit(s.world.Bus, event.WeaponEvolved{EvolvedID: w.ID(), From: rule.Requires, ColorA: colorA, ColorB: colorB})
	return nil
}

// extraWeapon picks a random base weapon other than exclude.
func (s *Session) extraWeapon(exclude string) string {
	ids := s.world.Run.Catalog.BaseWeaponIDs()
	opts := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != exclude {
			opts = append(opts, id)
		}
	}
	if len(opts) == 0 {
		return ""
	}
	return opts[s.world.Rng.Intn(len(opts))]
}
