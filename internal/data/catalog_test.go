package data

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"
)

func TestLoadBuiltin(t *testing.T) {
	c, err := LoadBuiltin()
	if err != nil {
		t.Fatalf("LoadBuiltin() error = %v", err)
	}
	weapons, enemies, bosses := c.Count()
	if weapons != 12 {
		t.Errorf("weapons = %d, want 12", weapons)
	}
	if enemies == 0 || bosses != 3 {
		t.Errorf("enemies = %d, bosses = %d", enemies, bosses)
	}
	if got := len(c.BaseWeaponIDs()); got != 8 {
		t.Errorf("base weapons = %d, want 8", got)
	}
	for _, r := range c.Evolutions() {
		ev, err := c.Weapon(r.Evolved)
		if err != nil {
			t.Fatalf("Weapon(%q) error = %v", r.Evolved, err)
		}
		if !ev.Evolved {
			t.Errorf("%s not marked evolved", ev.ID)
		}
	}
	whip, err := c.Weapon("whip")
	if err != nil {
		t.Fatal(err)
	}
	if whip.Base.Cooldown != time.Second || whip.Base.CooldownFloor != 350*time.Millisecond {
		t.Errorf("whip cooldowns = %v/%v", whip.Base.Cooldown, whip.Base.CooldownFloor)
	}
	if whip.Color != 0xffffff {
		t.Errorf("whip color = %#x", whip.Color)
	}
	lord, err := c.Boss("vampire_lord")
	if err != nil {
		t.Fatal(err)
	}
	if lord.Minion != "bat" || lord.LifestealDistance != 40 {
		t.Errorf("vampire lord = %+v", lord)
	}
}

func TestCatalogUnknownKeys(t *testing.T) {
	c, err := LoadBuiltin()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Weapon("nope"); !errors.Is(err, ErrUnknownWeapon) {
		t.Errorf("Weapon(nope) error = %v, want ErrUnknownWeapon", err)
	}
	if _, err := c.Enemy("nope"); !errors.Is(err, ErrUnknownEnemy) {
		t.Errorf("Enemy(nope) error = %v, want ErrUnknownEnemy", err)
	}
	if _, err := c.Boss("nope"); !errors.Is(err, ErrUnknownBoss) {
		t.Errorf("Boss(nope) error = %v, want ErrUnknownBoss", err)
	}
}

const minimalEnemies = `
enemies:
  - { key: skeleton, hp: 10, speed: 60, damage: 5, xp: 1 }
spawn_table:
  - { at: 0s, weights: { skeleton: 1 } }
`

const minimalBosses = `
bosses:
  - { type: death, behavior: escalating_aura, base_hp: 100, contact_range: 10, aura_radius: 50 }
`

func TestLoadFSRejectsBadContent(t *testing.T) {
	tests := []struct {
		name    string
		weapons string
		enemies string
		want    error
	}{
		{
			name: "evolution references unknown weapon",
			weapons: `
weapons:
  - { id: a, behavior: aura, base: { damage: 1, cooldown: 1s, area: 10, projectile_count: 1 } }
evolutions:
  - { requires: [a, ghost], evolved: a }
`,
			enemies: minimalEnemies,
			want:    ErrUnknownWeapon,
		},
		{
			name: "spawn table references unknown enemy",
			weapons: `
weapons:
  - { id: a, behavior: aura, base: { damage: 1, cooldown: 1s, area: 10, projectile_count: 1 } }
`,
			enemies: `
enemies:
  - { key: skeleton, hp: 10, speed: 60 }
spawn_table:
  - { at: 0s, weights: { lich: 1 } }
`,
			want: ErrUnknownEnemy,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"weapon_list.yaml": {Data: []byte(tt.weapons)},
				"enemy_list.yaml":  {Data: []byte(tt.enemies)},
				"boss_list.yaml":   {Data: []byte(minimalBosses)},
			}
			_, err := LoadFS(fsys)
			if !errors.Is(err, tt.want) {
				t.Errorf("LoadFS() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadFSRejectsMissingParams(t *testing.T) {
	fsys := fstest.MapFS{
		"weapon_list.yaml": {Data: []byte(`
weapons:
  - { id: w, behavior: melee, base: { damage: 1, cooldown: 1s, area: 10, projectile_count: 1 } }
`)},
		"enemy_list.yaml": {Data: []byte(minimalEnemies)},
		"boss_list.yaml":  {Data: []byte(minimalBosses)},
	}
	if _, err := LoadFS(fsys); err == nil {
		t.Fatal("LoadFS() accepted a melee weapon without length or duration")
	}
}

func TestSpawnTableWeightsAt(t *testing.T) {
	st := newSpawnTable([]SpawnBreakpoint{
		{At: 2 * time.Minute, Weights: map[string]float64{"a": 0, "b": 10}},
		{At: 0, Weights: map[string]float64{"a": 10}},
	})
	if got := st.Keys(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("Keys() = %v", got)
	}
	horizon := 30 * time.Second
	tests := []struct {
		elapsed time.Duration
		a, b    float64
	}{
		{0, 10, 0},
		{20 * time.Second, 10, 0}, // before the horizon the first row holds
		{time.Minute, 5, 5},
		{90 * time.Second, 2.5, 7.5},
		{10 * time.Minute, 0, 10},
	}
	var buf []float64
	for _, tt := range tests {
		buf = st.WeightsAt(tt.elapsed, horizon, buf)
		if buf[0] != tt.a || buf[1] != tt.b {
			t.Errorf("WeightsAt(%v) = %v, want [%v %v]", tt.elapsed, buf, tt.a, tt.b)
		}
	}
}

func TestBossHPFor(t *testing.T) {
	b := &BossDef{BaseHP: 900, HPPerAppearance: 600}
	if got := b.HPFor(0); got != 900 {
		t.Errorf("HPFor(0) = %v, want 900", got)
	}
	if got := b.HPFor(2); got != 2100 {
		t.Errorf("HPFor(2) = %v, want 2100", got)
	}
}
