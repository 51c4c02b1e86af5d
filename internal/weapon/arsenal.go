package weapon

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nightfall/cryptcore/internal/core/ecs"
	"github.com/nightfall/cryptcore/internal/core/system"
	"github.com/nightfall/cryptcore/internal/data"
	"github.com/nightfall/cryptcore/internal/world"
)

var (
	ErrAlreadyOwned = errors.New("weapon already owned")
	ErrNotOwned     = errors.New("weapon not owned")
	ErrArsenalFull  = errors.New("arsenal full")
	ErrNotReady     = errors.New("evolution not ready")
)

// Arsenal is the ordered set of weapons the player holds.
type Arsenal struct {
	cat   *data.Catalog
	pools *ecs.Registry
	log   *zap.Logger
	max   int
	mods  Modifiers

	weapons []*Weapon
	levels  map[string]int
}

func NewArsenal(cat *data.Catalog, pools *ecs.Registry, maxWeapons int, log *zap.Logger) *Arsenal {
	return &Arsenal{
		cat:     cat,
		pools:   pools,
		log:     log,
		max:     maxWeapons,
		mods:    Modifiers{Damage: 1, Cooldown: 1},
		weapons: make([]*Weapon, 0, maxWeapons),
		levels:  make(map[string]int, maxWeapons),
	}
}

// Modifiers returns the shared passive multipliers; changes apply to every
// weapon immediately.
func (a *Arsenal) Modifiers() *Modifiers { return &a.mods }

// Add acquires weapon id at level. Evolved weapons are always added at level 1.
func (a *Arsenal) Add(id string, level int) (*Weapon, error) {
	def, err := a.cat.Weapon(id)
	if err != nil {
		return nil, err
	}
	if _, ok := a.levels[id]; ok {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyOwned, id)
	}
	if a.Full() {
		return nil, fmt.Errorf("%w: %s", ErrArsenalFull, id)
	}
	w := New(def, &a.mods)
	if !def.Evolved {
		w.SetLevel(level)
	}
	a.weapons = append(a.weapons, w)
	a.levels[id] = w.Level()
	a.pools.Register(w.pool)
	a.log.Info("weapon acquired", zap.String("weapon", id), zap.Int("level", w.Level()))
	return w, nil
}

// Remove drops weapon id and releases all of its projectiles.
func (a *Arsenal) Remove(id string) bool {
	for i, w := range a.weapons {
		if w.ID() != id {
			continue
		}
		w.ReleaseAll()
		a.pools.Unregister(w.pool)
		a.weapons = append(a.weapons[:i], a.weapons[i+1:]...)
		delete(a.levels, id)
		return true
	}
	return false
}

// LevelUp raises weapon id by one level. Evolved and max-level weapons ignore
// the increment.
func (a *Arsenal) LevelUp(id string) (int, error) {
	w, ok := a.Get(id)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotOwned, id)
	}
	if w.Evolved() || w.Level() >= MaxLevel {
		return w.Level(), nil
	}
	w.SetLevel(w.Level() + 1)
	a.levels[id] = w.Level()
	return w.Level(), nil
}

// Evolve applies a ready rule: both sources are removed (their projectiles
// released) and the evolved weapon is added at level 1.
func (a *Arsenal) Evolve(rule data.EvolutionRule) (*Weapon, error) {
	if !IsReady(a.levels, rule) {
		return nil, fmt.Errorf("%w: %s", ErrNotReady, rule.Evolved)
	}
	if _, err := a.cat.Weapon(rule.Evolved); err != nil {
		return nil, err
	}
	a.Remove(rule.Requires[0])
	a.Remove(rule.Requires[1])
	w, err := a.Add(rule.Evolved, 1)
	if err != nil {
		return nil, fmt.Errorf("evolve %s: %w", rule.Evolved, err)
	}
	a.log.Info("weapon evolved",
		zap.String("evolved", rule.Evolved),
		zap.Strings("from", rule.Requires[:]))
	return w, nil
}

// ReadyEvolutions appends the currently applicable evolution rules to dst.
func (a *Arsenal) ReadyEvolutions(dst []data.EvolutionRule) []data.EvolutionRule {
	return ReadyRules(a.levels, a.cat.Evolutions(), dst)
}

func (a *Arsenal) Get(id string) (*Weapon, bool) {
	for _, w := range a.weapons {
		if w.ID() == id {
			return w, true
		}
	}
	return nil, false
}

func (a *Arsenal) Has(id string) bool {
	_, ok := a.levels[id]
	return ok
}

// Level returns the level of weapon id, 0 when not owned.
func (a *Arsenal) Level(id string) int { return a.levels[id] }

// Levels exposes the id → level view used by the evolution resolver. Callers
// must not modify it.
func (a *Arsenal) Levels() map[string]int { return a.levels }

func (a *Arsenal) Weapons() []*Weapon { return a.weapons }
func (a *Arsenal) Len() int           { return len(a.weapons) }
func (a *Arsenal) Full() bool         { return len(a.weapons) >= a.max }

// Update fires every weapon whose cooldown elapsed, then advances its
// projectiles.
func (a *Arsenal) Update(ws *world.State, clk system.Clock) {
	for _, w := range a.weapons {
		w.TryFire(ws, clk.Now)
		w.Update(ws, clk)
	}
}

// ReleaseAll releases the projectiles of every weapon.
func (a *Arsenal) ReleaseAll() {
	for _, w := range a.weapons {
		w.ReleaseAll()
	}
}
