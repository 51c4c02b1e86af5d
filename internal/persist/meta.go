package persist

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Meta is the progression carried across runs.
type Meta struct {
	WeaponsDiscovered    []string
	EvolutionsDiscovered []string
	BestTime             time.Duration
	MostKills            int
	MostWeaponsEvolved   int
	TotalKills           int
	Runs                 int
}

// RunResult is the record written when a run ends.
type RunResult struct {
	ID             uuid.UUID
	TimeSurvived   time.Duration
	Kills          int
	BossesDefeated int
	WeaponsEvolved int
	Level          int
	Victory        bool
	HardMode       bool
	EndedAt        time.Time
}

// Store persists meta progression. Implementations are safe for use by one
// writer goroutine plus readers at startup.
type Store interface {
	LoadMeta(ctx context.Context) (Meta, error)
	DiscoverWeapon(ctx context.Context, id string) error
	DiscoverEvolution(ctx context.Context, id string) error
	SaveRun(ctx context.Context, r RunResult) error
	Close() error
}

// HasWeapon reports whether id was discovered in an earlier run.
func (m Meta) HasWeapon(id string) bool {
	for _, w := range m.WeaponsDiscovered {
		if w == id {
			return true
		}
	}
	return false
}

// nopStore backs the "none" driver: nothing is kept.
type nopStore struct{}

func (nopStore) LoadMeta(context.Context) (Meta, error)          { return Meta{}, nil }
func (nopStore) DiscoverWeapon(context.Context, string) error    { return nil }
func (nopStore) DiscoverEvolution(context.Context, string) error { return nil }
func (nopStore) SaveRun(context.Context, RunResult) error        { return nil }
func (nopStore) Close() error                                    { return nil }
