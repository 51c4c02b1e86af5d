package weapon

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/nightfall/cryptcore/internal/core/ecs"
	"github.com/nightfall/cryptcore/internal/data"
	"github.com/nightfall/cryptcore/internal/vmath"
)

var whipRule = data.EvolutionRule{Requires: [2]string{"whip", "flame_pillar"}, Evolved: "inferno_lash"}

func TestIsReady(t *testing.T) {
	tests := []struct {
		name   string
		levels map[string]int
		want   bool
	}{
		{"both max", map[string]int{"whip": 8, "flame_pillar": 8}, true},
		{"one below max", map[string]int{"whip": 8, "flame_pillar": 7}, false},
		{"one missing", map[string]int{"whip": 8}, false},
		{"evolved owned", map[string]int{"whip": 8, "flame_pillar": 8, "inferno_lash": 1}, false},
		{"empty", map[string]int{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsReady(tt.levels, whipRule); got != tt.want {
				t.Errorf("IsReady() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadyRulesDoesNotDoubleBook(t *testing.T) {
	rules := []data.EvolutionRule{
		whipRule,
		{Requires: [2]string{"whip", "holy_water"}, Evolved: "other"},
		{Requires: [2]string{"bone_shield", "arcane_orb"}, Evolved: "necro_storm"},
	}
	levels := map[string]int{"whip": 8, "flame_pillar": 8, "holy_water": 8, "bone_shield": 8, "arcane_orb": 8}
	got := ReadyRules(levels, rules, nil)
	if len(got) != 2 || got[0].Evolved != "inferno_lash" || got[1].Evolved != "necro_storm" {
		t.Errorf("ReadyRules() = %+v", got)
	}
}

func newTestArsenal(t *testing.T) (*Arsenal, *ecs.Registry) {
	t.Helper()
	cat, err := data.LoadBuiltin()
	if err != nil {
		t.Fatal(err)
	}
	reg := ecs.NewRegistry()
	return NewArsenal(cat, reg, 6, zap.NewNop()), reg
}

func TestEvolveReplacesSources(t *testing.T) {
	ws := newTestWorld(t)
	a, reg := newTestArsenal(t)
	for _, id := range whipRule.Requires {
		if _, err := a.Add(id, MaxLevel); err != nil {
			t.Fatalf("Add(%s) error = %v", id, err)
		}
	}
	spawnEnemy(t, ws, vmath.V(40, 0), 1e6)
	a.Update(ws, sysClockAt(0))
	whip, _ := a.Get("whip")
	if whip.ActiveProjectiles() == 0 {
		t.Fatal("whip did not fire")
	}

	ready := a.ReadyEvolutions(nil)
	if len(ready) != 1 {
		t.Fatalf("ReadyEvolutions() = %+v, want one rule", ready)
	}
	ev, err := a.Evolve(ready[0])
	if err != nil {
		t.Fatalf("Evolve() error = %v", err)
	}
	if a.Has("whip") || a.Has("flame_pillar") {
		t.Error("source weapons survived the evolution")
	}
	if ev.ID() != "inferno_lash" || ev.Level() != 1 || a.Level("inferno_lash") != 1 {
		t.Errorf("evolved = %s level %d", ev.ID(), ev.Level())
	}
	if whip.ActiveProjectiles() != 0 {
		t.Error("source projectiles were not released")
	}
	if active, _ := reg.Stats(); active != 0 {
		t.Errorf("registry active = %d, want 0 after evolution", active)
	}
	if _, err := a.Evolve(whipRule); !errors.Is(err, ErrNotReady) {
		t.Errorf("second Evolve() error = %v, want ErrNotReady", err)
	}
}

func TestEvolvedWeaponsIgnoreLevelUps(t *testing.T) {
	a, _ := newTestArsenal(t)
	if _, err := a.Add("sacred_flood", 5); err != nil {
		t.Fatal(err)
	}
	if got := a.Level("sacred_flood"); got != 1 {
		t.Fatalf("evolved added at level %d, want 1", got)
	}
	if lvl, err := a.LevelUp("sacred_flood"); err != nil || lvl != 1 {
		t.Errorf("LevelUp(evolved) = %d, %v; want 1, nil", lvl, err)
	}
}

func TestArsenalLimits(t *testing.T) {
	a, _ := newTestArsenal(t)
	base := a.cat.BaseWeaponIDs()
	for _, id := range base[:6] {
		if _, err := a.Add(id, 1); err != nil {
			t.Fatalf("Add(%s) error = %v", id, err)
		}
	}
	if _, err := a.Add(base[6], 1); !errors.Is(err, ErrArsenalFull) {
		t.Errorf("Add past the limit error = %v, want ErrArsenalFull", err)
	}
	if _, err := a.Add(base[0], 1); !errors.Is(err, ErrAlreadyOwned) {
		t.Errorf("Add duplicate error = %v, want ErrAlreadyOwned", err)
	}
	if _, err := a.LevelUp("nope"); !errors.Is(err, ErrNotOwned) {
		t.Errorf("LevelUp(unowned) error = %v, want ErrNotOwned", err)
	}
	for i := 0; i < 20; i++ {
		a.LevelUp(base[0])
	}
	if got := a.Level(base[0]); got != MaxLevel {
		t.Errorf("level after many level ups = %d, want %d", got, MaxLevel)
	}
	if _, err := a.Add("unknown", 1); !errors.Is(err, data.ErrUnknownWeapon) {
		t.Errorf("Add(unknown) error = %v, want ErrUnknownWeapon", err)
	}
}

func TestPassiveModifiersApplyToAllWeapons(t *testing.T) {
	a, _ := newTestArsenal(t)
	w, _ := a.Add("whip", 1)
	a.Modifiers().Damage = 1.5
	if got := w.EffectiveDamage(); got != w.Damage*1.5 {
		t.Errorf("EffectiveDamage = %v, want %v", got, w.Damage*1.5)
	}
}
