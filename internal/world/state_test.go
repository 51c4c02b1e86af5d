package world

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/nightfall/cryptcore/internal/config"
	"github.com/nightfall/cryptcore/internal/core/ecs"
	"github.com/nightfall/cryptcore/internal/core/event"
	"github.com/nightfall/cryptcore/internal/data"
	"github.com/nightfall/cryptcore/internal/vmath"
)

func newTestState(t testing.TB) *State {
	t.Helper()
	cat, err := data.LoadBuiltin()
	if err != nil {
		t.Fatalf("LoadBuiltin() error = %v", err)
	}
	rc := &RunConfig{Config: config.Default(), Catalog: cat, Seed: 7, Bonuses: NoBonuses()}
	return NewState(rc, zap.NewNop())
}

func spawnAt(t testing.TB, w *State, key string, pos vmath.Vec2, hp float64) ecs.EntityID {
	t.Helper()
	def, err := w.Run.Catalog.Enemy(key)
	if err != nil {
		t.Fatal(err)
	}
	id, _ := w.SpawnEnemy(EnemyStats{Def: def, HP: hp, Speed: def.Speed, Damage: def.Damage, XP: def.XP}, pos, 0)
	return id
}

func TestTakeDamageIdempotentWhileDying(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := &Enemy{}
		def := &data.EnemyDef{Key: "k", HP: 10}
		hp := rapid.Float64Range(1, 100).Draw(t, "hp")
		e.Configure(EnemyStats{Def: def, HP: hp}, vmath.Vec2{}, 0, 0)

		deaths := 0
		hits := rapid.SliceOfN(rapid.Float64Range(0.1, 60), 1, 20).Draw(t, "hits")
		for _, amt := range hits {
			before := e.HP
			wasDying := e.Dying
			_, died := e.TakeDamage(amt)
			if died {
				deaths++
			}
			if wasDying && (e.HP != before || died) {
				t.Fatalf("damage applied while dying: hp %v -> %v, died=%v", before, e.HP, died)
			}
			if e.HP <= 0 && !e.Dying {
				t.Fatalf("hp %v but not dying", e.HP)
			}
		}
		if deaths > 1 {
			t.Fatalf("died %d times", deaths)
		}
	})
}

func TestConfigureClearsPreviousOccupant(t *testing.T) {
	e := &Enemy{}
	def := &data.EnemyDef{Key: "k", HP: 5, Radius: 8}
	e.Configure(EnemyStats{Def: def, HP: 5}, vmath.Vec2{}, 0, 0)
	e.TakeDamage(50)
	e.SpeedBoost = 2
	e.Elite = true
	e.Configure(EnemyStats{Def: def, HP: 9}, vmath.V(3, 4), 0, 0)
	if e.Dying || e.HP != 9 || e.MaxHP != 9 || e.Elite || e.SpeedBoost != 0 {
		t.Errorf("Configure left stale state: %+v", e)
	}
	if e.DamageTaken != 1 {
		t.Errorf("DamageTaken = %v, want default 1", e.DamageTaken)
	}
}

func TestChaseMovesTowardTarget(t *testing.T) {
	w := newTestState(t)
	e := &Enemy{}
	e.Configure(EnemyStats{Def: &data.EnemyDef{Key: "k"}, HP: 1, Speed: 50}, vmath.V(100, 0), 0, 0)
	e.Chase(vmath.Vec2{}, time.Second, w.Rng)
	if e.Vel.X != -50 || e.Vel.Y != 0 {
		t.Errorf("Vel = %+v, want (-50, 0)", e.Vel)
	}
}

func TestChaseTeleportsWhenDue(t *testing.T) {
	w := newTestState(t)
	def := &data.EnemyDef{Key: "g", TeleportCooldown: 2 * time.Second, TeleportRange: data.Range{Min: 80, Max: 90}}
	e := &Enemy{}
	e.Configure(EnemyStats{Def: def, HP: 1, Speed: 10}, vmath.V(1000, 0), 0, 0)

	e.Chase(vmath.Vec2{}, time.Second, w.Rng)
	if e.Pos != vmath.V(1000, 0) {
		t.Fatalf("teleported before the cooldown: %+v", e.Pos)
	}
	e.Chase(vmath.Vec2{}, 2*time.Second, w.Rng)
	if d := e.Pos.Len(); d < 80 || d > 90 {
		t.Errorf("distance after teleport = %v, want within [80,90]", d)
	}
}

func TestChaseConsumesSpeedBoost(t *testing.T) {
	w := newTestState(t)
	e := &Enemy{}
	e.Configure(EnemyStats{Def: &data.EnemyDef{Key: "k"}, HP: 1, Speed: 10}, vmath.V(10, 0), 0, 0)
	e.SpeedBoost = 0.5
	e.Chase(vmath.Vec2{}, 0, w.Rng)
	if e.Vel.Len() != 15 {
		t.Errorf("boosted speed = %v, want 15", e.Vel.Len())
	}
	e.Chase(vmath.Vec2{}, 0, w.Rng)
	if e.Vel.Len() != 10 {
		t.Errorf("speed after boost lapsed = %v, want 10", e.Vel.Len())
	}
}

func TestResolvePierce(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := newTestState(t)
		n := rapid.IntRange(1, 12).Draw(rt, "enemies")
		k := rapid.IntRange(1, 12).Draw(rt, "pierce")
		for i := 0; i < n; i++ {
			spawnAt(t, w, "zombie", vmath.V(float64(i), 0), 1000)
		}
		w.RebuildGrid()

		hits := HitSet{}
		pierce := k
		total := 0
		// sweep the same projectile over the crowd several times
		for tick := 0; tick < 5; tick++ {
			struck, exhausted := w.Resolve(Strike{
				Shape:  Circle(vmath.Vec2{}, 50),
				Damage: 1,
				Hits:   hits,
				Pierce: &pierce,
			}, time.Duration(tick)*time.Second)
			total += struck
			if exhausted {
				break
			}
		}
		want := min(n, k)
		if total != want {
			rt.Fatalf("struck %d, want %d", total, want)
		}
		if len(hits) != total {
			rt.Fatalf("hit-set has %d entries for %d strikes", len(hits), total)
		}
		w.Enemies.Each(func(_ ecs.EntityID, e *Enemy) bool {
			if e.HP < 999 {
				rt.Fatalf("enemy struck twice: hp %v", e.HP)
			}
			return true
		})
	})
}

func TestResolveRehitInterval(t *testing.T) {
	w := newTestState(t)
	spawnAt(t, w, "zombie", vmath.Vec2{}, 1000)
	w.RebuildGrid()
	hits := HitSet{}
	strike := Strike{Shape: Circle(vmath.Vec2{}, 10), Damage: 1, Hits: hits, Interval: 500 * time.Millisecond}

	var got []int
	for _, at := range []time.Duration{0, 100 * time.Millisecond, 499 * time.Millisecond, 500 * time.Millisecond, 900 * time.Millisecond, time.Second} {
		n, _ := w.Resolve(strike, at)
		got = append(got, n)
	}
	want := []int{1, 0, 0, 1, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("strikes = %v, want %v", got, want)
		}
	}
}

func TestResolveShapes(t *testing.T) {
	w := newTestState(t)
	near := spawnAt(t, w, "skeleton", vmath.V(30, 0), 100)
	far := spawnAt(t, w, "skeleton", vmath.V(200, 0), 100)
	w.RebuildGrid()

	w.Resolve(Strike{Shape: Ring(vmath.Vec2{}, 150, 210), Damage: 5}, 0)
	if e, _ := w.Enemies.Get(near); e.HP != 100 {
		t.Errorf("ring struck the inner enemy: hp %v", e.HP)
	}
	if e, _ := w.Enemies.Get(far); e.HP != 95 {
		t.Errorf("ring missed the outer enemy: hp %v", e.HP)
	}
	w.Resolve(Strike{Shape: Rect(vmath.V(30, 0), 10, 10), Damage: 5}, 0)
	if e, _ := w.Enemies.Get(near); e.HP != 95 {
		t.Errorf("rect missed: hp %v", e.HP)
	}
}

func TestKillSchedulesDeferredRelease(t *testing.T) {
	w := newTestState(t)
	var killed []event.EnemyKilled
	event.Subscribe(w.Bus, func(ev event.EnemyKilled) { killed = append(killed, ev) })

	id := spawnAt(t, w, "bat", vmath.Vec2{}, 5)
	ref := TargetRef{ID: id}
	if !w.Damage(ref, 10, vmath.Vec2{}, time.Second) {
		t.Fatal("killing blow did not land")
	}
	if w.Damage(ref, 10, vmath.Vec2{}, time.Second) {
		t.Fatal("damage landed on a dying enemy")
	}
	w.Bus.Drain()
	if len(killed) != 1 || killed[0].Type != "bat" {
		t.Fatalf("kill events = %+v", killed)
	}
	if w.Kills != 1 {
		t.Errorf("Kills = %d, want 1", w.Kills)
	}
	if !w.Enemies.Active(id) {
		t.Fatal("enemy released before the death window")
	}
	w.Releases.Flush(time.Second + w.Run.Config.Spawn.DeathWindow.Duration)
	if w.Enemies.Active(id) || w.Enemies.ActiveCount() != 0 {
		t.Fatal("enemy still active after the death window")
	}
}

func TestClearEnemiesGivesNoRewards(t *testing.T) {
	w := newTestState(t)
	var kills int
	event.Subscribe(w.Bus, func(event.EnemyKilled) { kills++ })
	for i := 0; i < 4; i++ {
		spawnAt(t, w, "skeleton", vmath.V(float64(i*10), 0), 10)
	}
	if n := w.ClearEnemies(0); n != 4 {
		t.Errorf("ClearEnemies() = %d, want 4", n)
	}
	if n := w.ClearEnemies(0); n != 0 {
		t.Errorf("second ClearEnemies() = %d, want 0", n)
	}
	w.Bus.Drain()
	if kills != 0 || w.Kills != 0 {
		t.Errorf("mercy clear counted kills: events=%d kills=%d", kills, w.Kills)
	}
	w.Releases.Flush(time.Hour)
	if w.Enemies.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d after flush", w.Enemies.ActiveCount())
	}
}

func TestHurtPlayerInvulnerability(t *testing.T) {
	w := newTestState(t)
	var defeated int
	event.Subscribe(w.Bus, func(event.PlayerDefeated) { defeated++ })
	inv := w.Run.Config.Player.Invulnerable.Duration

	if !w.HurtPlayer(10, "test", 0) {
		t.Fatal("first hit ignored")
	}
	if w.HurtPlayer(10, "test", inv-time.Millisecond) {
		t.Fatal("hit landed inside the invulnerability window")
	}
	if !w.HurtPlayer(1000, "test", inv) {
		t.Fatal("hit after the window ignored")
	}
	if !w.Player.Dead || w.Player.Health != 0 {
		t.Fatalf("player = %+v, want dead", w.Player)
	}
	w.HurtPlayer(1000, "test", 10*inv)
	w.Bus.Drain()
	if defeated != 1 {
		t.Errorf("PlayerDefeated emitted %d times, want 1", defeated)
	}
}

func TestBossDamageAndRatio(t *testing.T) {
	w := newTestState(t)
	def, _ := w.Run.Catalog.Boss("bone_dragon")
	b := w.SpawnBoss(def, 1, false, vmath.V(10, 0), 0)
	if b.MaxHP != def.HPFor(1) {
		t.Fatalf("MaxHP = %v, want %v", b.MaxHP, def.HPFor(1))
	}
	w.RebuildGrid()
	w.Resolve(Strike{Shape: Circle(vmath.Vec2{}, 5), Damage: b.MaxHP / 4}, 0)
	if r := b.HealthRatio(); r != 0.75 {
		t.Errorf("HealthRatio = %v, want 0.75", r)
	}
	w.Damage(TargetRef{Boss: true, ID: b.Ref}, b.MaxHP, vmath.Vec2{}, 0)
	if !b.Defeated || b.HealthRatio() != 0 {
		t.Errorf("boss = %+v, want defeated", b)
	}
	stale := b.Ref
	w.ClearBoss()
	if w.Damage(TargetRef{Boss: true, ID: stale}, 1, vmath.Vec2{}, 0) {
		t.Error("damage landed on a cleared boss")
	}
}

func TestGemPoolIsBounded(t *testing.T) {
	w := newTestState(t)
	for i := 0; i < maxGems+50; i++ {
		w.SpawnGem(vmath.Vec2{}, 1)
	}
	if w.Gems.ActiveCount() != maxGems {
		t.Fatalf("gems = %d, want %d", w.Gems.ActiveCount(), maxGems)
	}
	total := 0
	w.Gems.Each(func(_ ecs.EntityID, g *Gem) bool {
		total += g.Value
		return true
	})
	if total != maxGems+50 {
		t.Errorf("gem value total = %d, want %d", total, maxGems+50)
	}
}

func TestPlayerSteerSmoothing(t *testing.T) {
	w := newTestState(t)
	p := &w.Player
	p.Steer(vmath.V(1, 0), 35*time.Millisecond)
	if want := p.Speed / 2; p.Vel.X < want-1e-9 || p.Vel.X > want+1e-9 {
		t.Errorf("Vel.X after half the smoothing window = %v, want %v", p.Vel.X, want)
	}
	p.Steer(vmath.V(0, 0), time.Second)
	if !p.Vel.IsZero() {
		t.Errorf("Vel = %+v, want zero", p.Vel)
	}
	if p.Facing != vmath.V(1, 0) {
		t.Errorf("Facing = %+v, want last non-zero direction", p.Facing)
	}
}

func TestGridQuery(t *testing.T) {
	g := NewGrid(10)
	g.Insert(1, vmath.V(5, 5))
	g.Insert(2, vmath.V(-5, -5))
	g.Insert(3, vmath.V(100, 100))
	var got []ecs.EntityID
	g.Query(vmath.Vec2{}, 6, func(id ecs.EntityID) bool {
		got = append(got, id)
		return true
	})
	if len(got) != 2 || got[0] != 2 || got[1] != 1 {
		t.Errorf("Query = %v, want [2 1]", got)
	}
	g.Reset()
	g.Reset()
	if len(g.cells) != 0 {
		t.Errorf("cells = %d after two empty resets, want 0", len(g.cells))
	}
}
