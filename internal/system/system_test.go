package system

import (
	"math"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/nightfall/cryptcore/internal/config"
	coresys "github.com/nightfall/cryptcore/internal/core/system"
	"github.com/nightfall/cryptcore/internal/data"
	"github.com/nightfall/cryptcore/internal/scripting"
	"github.com/nightfall/cryptcore/internal/vmath"
	"github.com/nightfall/cryptcore/internal/world"
)

const frame = 16 * time.Millisecond

func newTestWorld(t testing.TB, tune func(*config.Config)) *world.State {
	t.Helper()
	cat, err := data.LoadBuiltin()
	if err != nil {
		t.Fatalf("LoadBuiltin() error = %v", err)
	}
	cfg := config.Default()
	if tune != nil {
		tune(cfg)
	}
	rc := &world.RunConfig{Config: cfg, Catalog: cat, Seed: 7, Bonuses: world.NoBonuses()}
	return world.NewState(rc, zap.NewNop())
}

func testFormulas(ws *world.State) *scripting.Formulas {
	xp := ws.Run.Config.XP
	return scripting.NewFormulas(nil, xp.BaseThreshold, xp.GrowthFactor, ws.Run.Catalog.Scaling())
}

func clockAt(now time.Duration) coresys.Clock {
	return coresys.Clock{Now: now, Delta: frame}
}

func spawnAt(t testing.TB, ws *world.State, key string, x, y float64) *world.Enemy {
	t.Helper()
	def, err := ws.Run.Catalog.Enemy(key)
	if err != nil {
		t.Fatal(err)
	}
	_, e := ws.SpawnEnemy(world.EnemyStats{Def: def, HP: def.HP, Speed: def.Speed, Damage: def.Damage, XP: def.XP}, vecAt(x, y), 0)
	return e
}

func vecAt(x, y float64) vmath.Vec2 { return vmath.V(x, y) }

func hypot(a, b float64) float64 { return math.Hypot(a, b) }

func near(got, want float64) bool { return math.Abs(got-want) < 1e-6 }
