package system

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/nightfall/cryptcore/internal/config"
	"github.com/nightfall/cryptcore/internal/core/ecs"
	"github.com/nightfall/cryptcore/internal/core/event"
	"github.com/nightfall/cryptcore/internal/world"
)

func TestAddXPThresholdIsOneLevel(t *testing.T) {
	ws := newTestWorld(t, nil)
	xp := NewXPTracker(testFormulas(ws), 50, ws.Bus)
	var levels []int
	event.Subscribe(ws.Bus, func(ev event.LevelUp) { levels = append(levels, ev.Level) })

	if got := xp.AddXP(xp.Threshold()); got != 1 {
		t.Fatalf("AddXP(threshold) gained %d levels, want 1", got)
	}
	if xp.XP() != 0 || xp.Level() != 2 {
		t.Errorf("after one threshold: xp=%d level=%d, want 0 and 2", xp.XP(), xp.Level())
	}
	ws.Bus.Drain()
	if len(levels) != 1 || levels[0] != 2 {
		t.Errorf("LevelUp events = %v, want [2]", levels)
	}
}

func TestAddXPMultipleCrossings(t *testing.T) {
	f := testFormulas(newTestWorld(t, nil))
	rapid.Check(t, func(rt *rapid.T) {
		bus := event.NewBus()
		xp := NewXPTracker(f, 0, bus)
		amount := rapid.IntRange(0, 5000).Draw(rt, "amount")

		wantLevel, rest := 1, amount
		for rest >= f.XPThreshold(wantLevel) {
			rest -= f.XPThreshold(wantLevel)
			wantLevel++
		}
		gained := xp.AddXP(amount)
		if xp.Level() != wantLevel || gained != wantLevel-1 || xp.XP() != rest {
			rt.Fatalf("AddXP(%d): level=%d gained=%d xp=%d, want %d %d %d",
				amount, xp.Level(), gained, xp.XP(), wantLevel, wantLevel-1, rest)
		}
		if bus.Pending() != gained {
			rt.Fatalf("pending LevelUp events = %d, want %d", bus.Pending(), gained)
		}
	})
}

func TestAddXPStopsAtMaxLevel(t *testing.T) {
	ws := newTestWorld(t, nil)
	xp := NewXPTracker(testFormulas(ws), 3, ws.Bus)
	xp.AddXP(1_000_000)
	if xp.Level() != 3 {
		t.Errorf("Level() = %d, want capped at 3", xp.Level())
	}
}

func TestGemPickupAndMagnet(t *testing.T) {
	ws := newTestWorld(t, nil)
	xp := NewXPTracker(testFormulas(ws), 50, ws.Bus)
	s := NewProgressionSystem(ws, xp)

	ws.SpawnGem(vecAt(0, 0), 3)
	ws.SpawnGem(vecAt(ws.Player.PickupRadius-10, 0), 1)
	ws.SpawnGem(vecAt(ws.Player.PickupRadius+200, 0), 1)

	s.Update(clockAt(0))
	if xp.XP() != 3 {
		t.Fatalf("xp after touching a gem = %d, want 3", xp.XP())
	}
	if ws.Gems.ActiveCount() != 2 {
		t.Fatalf("gems left = %d, want 2", ws.Gems.ActiveCount())
	}
	ws.Gems.Each(func(_ ecs.EntityID, g *world.Gem) bool {
		far := g.Pos.X > ws.Player.PickupRadius
		if far && (g.Magnetic || !g.Vel.IsZero()) {
			t.Errorf("gem outside the pickup radius moved: %+v", g)
		}
		if !far && (!g.Magnetic || g.Vel.X >= 0) {
			t.Errorf("gem inside the pickup radius not pulled: %+v", g)
		}
		return true
	})

	for i := 1; i < 120; i++ {
		s.Update(clockAt(time.Duration(i) * frame))
	}
	if xp.XP() != 4 || ws.Gems.ActiveCount() != 1 {
		t.Errorf("after pulling: xp=%d gems=%d, want 4 and 1", xp.XP(), ws.Gems.ActiveCount())
	}
}

func TestGemDeceleratesOutsideRadius(t *testing.T) {
	ws := newTestWorld(t, nil)
	s := NewProgressionSystem(ws, NewXPTracker(testFormulas(ws), 50, ws.Bus))
	ws.SpawnGem(vecAt(1000, 0), 1)
	ws.Gems.Each(func(_ ecs.EntityID, g *world.Gem) bool {
		g.Vel = vecAt(-100, 0)
		return true
	})
	for i := 0; i < 30; i++ {
		s.Update(clockAt(time.Duration(i) * frame))
	}
	ws.Gems.Each(func(_ ecs.EntityID, g *world.Gem) bool {
		if !g.Vel.IsZero() {
			t.Errorf("gem still moving outside the radius: %v", g.Vel)
		}
		return true
	})
}

func TestKillsDropGems(t *testing.T) {
	ws := newTestWorld(t, nil)
	NewProgressionSystem(ws, NewXPTracker(testFormulas(ws), 50, ws.Bus))
	event.Emit(ws.Bus, event.EnemyKilled{Pos: vecAt(300, 300), XP: 4})
	ws.Bus.Drain()
	n := 0
	ws.Gems.Each(func(_ ecs.EntityID, g *world.Gem) bool {
		n++
		if g.Value != 4 || g.Pos != vecAt(300, 300) {
			t.Errorf("gem = %+v", g)
		}
		return true
	})
	if n != 1 {
		t.Errorf("gems = %d, want 1", n)
	}
}

func TestChestGrantsLevelAndHeals(t *testing.T) {
	ws := newTestWorld(t, nil)
	xp := NewXPTracker(testFormulas(ws), 50, ws.Bus)
	s := NewProgressionSystem(ws, xp)
	xp.AddXP(2)
	ws.HurtPlayer(50, "test", 0)
	ws.Bus.Drain()
	ws.SpawnChest(vecAt(5, 0), 0)

	var opened int
	event.Subscribe(ws.Bus, func(event.TreasureCollected) { opened++ })
	s.Update(clockAt(time.Second))
	ws.Bus.Drain()

	if xp.Level() != 2 || xp.XP() != 0 {
		t.Errorf("after chest: level=%d xp=%d, want 2 and 0", xp.Level(), xp.XP())
	}
	if want := ws.Player.MaxHealth - 50 + ws.Player.MaxHealth*chestHeal; !near(ws.Player.Health, want) {
		t.Errorf("health = %v, want %v", ws.Player.Health, want)
	}
	if opened != 1 || ws.Chests.ActiveCount() != 0 {
		t.Errorf("opened=%d chests=%d, want 1 and 0", opened, ws.Chests.ActiveCount())
	}
}

func TestCleanupExpiresChestsAndFlushes(t *testing.T) {
	ws := newTestWorld(t, func(c *config.Config) {
		c.Bosses.ChestLifetime = config.D(10 * time.Second)
	})
	c := NewCleanupSystem(ws)
	ws.SpawnChest(vecAt(900, 0), 0)
	e := spawnAt(t, ws, "skeleton", 100, 0)
	ws.RebuildGrid()
	ws.Resolve(world.Strike{Shape: world.Circle(e.Pos, 5), Damage: 100}, 0)

	c.Update(clockAt(5 * time.Second))
	if ws.Chests.ActiveCount() != 1 {
		t.Error("chest released before its lifetime")
	}
	if ws.Enemies.ActiveCount() != 0 {
		t.Error("dead enemy not released after the death window")
	}
	c.Update(clockAt(10 * time.Second))
	if ws.Chests.ActiveCount() != 0 {
		t.Error("expired chest still active")
	}
}

func TestContactDamageHonorsInvulnerability(t *testing.T) {
	ws := newTestWorld(t, nil)
	m := NewMovementSystem(ws)
	e := spawnAt(t, ws, "zombie", 5, 0)

	m.Update(clockAt(time.Second))
	after := ws.Player.Health
	if want := ws.Player.MaxHealth - e.Damage; !near(after, want) {
		t.Fatalf("health after contact = %v, want %v", after, want)
	}
	m.Update(clockAt(time.Second + frame))
	if ws.Player.Health != after {
		t.Errorf("contact landed inside the invulnerability window")
	}
	m.Update(clockAt(time.Second + ws.Run.Config.Player.Invulnerable.Duration))
	if ws.Player.Health >= after {
		t.Errorf("contact did not land after the window")
	}
}
