package system

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	coresys "github.com/nightfall/cryptcore/internal/core/system"
	"github.com/nightfall/cryptcore/internal/data"
	"github.com/nightfall/cryptcore/internal/scripting"
	"github.com/nightfall/cryptcore/internal/world"
)

// eliteXPMult scales the experience an elite drops.
const eliteXPMult = 2

// SpawnDirector owns the regular swarm. It integrates a spawn rate that grows
// with elapsed time and, each time a whole spawn is accumulated, schedules a
// burst released one enemy per burst interval. Phase 1 (Spawn).
type SpawnDirector struct {
	world    *world.State
	formulas *scripting.Formulas
	table    *data.SpawnTable
	defs     []*data.EnemyDef // in table key order
	weights  []float64
	log      *zap.Logger

	credit    float64
	burstLeft int
	nextBurst time.Duration
	spawned   int
}

func NewSpawnDirector(ws *world.State, formulas *scripting.Formulas, log *zap.Logger) (*SpawnDirector, error) {
	table := ws.Run.Catalog.SpawnTable()
	defs := make([]*data.EnemyDef, 0, len(table.Keys()))
	for _, k := range table.Keys() {
		def, err := ws.Run.Catalog.Enemy(k)
		if err != nil {
			return nil, fmt.Errorf("spawn director: %w", err)
		}
		defs = append(defs, def)
	}
	return &SpawnDirector{
		world:    ws,
		formulas: formulas,
		table:    table,
		defs:     defs,
		weights:  make([]float64, 0, len(defs)),
		log:      log,
	}, nil
}

func (s *SpawnDirector) Phase() coresys.Phase { return coresys.PhaseSpawn }

// Rate returns spawns per second at elapsed.
func (s *SpawnDirector) Rate(elapsed time.Duration) float64 {
	cfg := &s.world.Run.Config.Spawn
	return cfg.BaseRatePerSecond + (elapsed.Seconds()/10)*cfg.IncreasePerTenSeconds
}

// BurstRemaining returns how many spawns the in-flight burst still owes.
func (s *SpawnDirector) BurstRemaining() int { return s.burstLeft }

// Spawned returns the number of enemies this director created.
func (s *SpawnDirector) Spawned() int { return s.spawned }

func (s *SpawnDirector) Update(clk coresys.Clock) {
	cfg := &s.world.Run.Config.Spawn
	now := clk.Now

	s.credit += s.Rate(now) * clk.Delta.Seconds()
	if s.credit >= 1 {
		s.credit = 0
		n := cfg.BurstMin + s.world.Rng.Intn(cfg.BurstMax-cfg.BurstMin+1)
		if s.burstLeft == 0 {
			s.nextBurst = now
		}
		s.burstLeft += n
	}

	for s.burstLeft > 0 && now >= s.nextBurst {
		if s.world.Enemies.ActiveCount() >= cfg.MaxAlive {
			s.log.Debug("spawn burst truncated at cap",
				zap.Int("dropped", s.burstLeft),
				zap.Int("alive", s.world.Enemies.ActiveCount()))
			s.burstLeft = 0
			return
		}
		s.spawnOne(now)
		s.burstLeft--
		s.nextBurst += cfg.BurstInterval.Duration
	}
}

// spawnOne picks a type, applies minute scaling then the elite roll, and
// places the enemy on the ring just outside the view.
func (s *SpawnDirector) spawnOne(now time.Duration) {
	cfg := &s.world.Run.Config.Spawn
	def := s.pick(now)

	m := s.formulas.MinuteScaling(int(now / time.Minute))
	hard := s.world.Run.HardModeMult()
	st := world.EnemyStats{
		Def:    def,
		HP:     def.HP * m.HP * hard,
		Speed:  def.Speed * m.Speed,
		Damage: def.Damage * m.Damage * hard,
		XP:     def.XP,
	}
	if now >= cfg.EliteAfter.Duration && s.world.Rng.Float64() < cfg.EliteChance {
		st.Elite = true
		st.HP *= cfg.EliteMultiplier
		st.Damage *= cfg.EliteMultiplier
		st.XP *= eliteXPMult
	}

	radius := math.Hypot(cfg.ViewWidth, cfg.ViewHeight) + cfg.Padding
	pos := s.world.RandomOnRing(s.world.Player.Pos, radius)
	s.world.SpawnEnemy(st, pos, now)
	s.spawned++
	if st.Elite {
		s.log.Debug("elite spawned", zap.String("enemy", def.Key), zap.Float64("hp", st.HP))
	}
}

// pick draws an enemy type by weight from the spawn table at elapsed.
func (s *SpawnDirector) pick(elapsed time.Duration) *data.EnemyDef {
	s.weights = s.table.WeightsAt(elapsed, s.world.Run.Config.Spawn.WeightHorizon.Duration, s.weights)
	total := 0.0
	for _, w := range s.weights {
		total += w
	}
	if total <= 0 {
		return s.defs[0]
	}
	r := s.world.Rng.Float64() * total
	for i, w := range s.weights {
		if r < w {
			return s.defs[i]
		}
		r -= w
	}
	return s.defs[len(s.defs)-1]
}
