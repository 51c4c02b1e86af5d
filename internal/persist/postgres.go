package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// PostgresStore keeps meta progression in PostgreSQL.
type PostgresStore struct {
	db *DB
}

func NewPostgresStore(db *DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) LoadMeta(ctx context.Context) (Meta, error) {
	var m Meta
	var err error
	if m.WeaponsDiscovered, err = s.ids(ctx,
		`SELECT weapon_id FROM weapons_discovered ORDER BY discovered_at, weapon_id`); err != nil {
		return Meta{}, fmt.Errorf("load weapons: %w", err)
	}
	if m.EvolutionsDiscovered, err = s.ids(ctx,
		`SELECT evolution_id FROM evolutions_discovered ORDER BY discovered_at, evolution_id`); err != nil {
		return Meta{}, fmt.Errorf("load evolutions: %w", err)
	}

	var bestMS int64
	err = s.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(kills),0), COALESCE(MAX(time_survived_ms),0),
		        COALESCE(MAX(kills),0), COALESCE(MAX(weapons_evolved),0)
		 FROM run_results`,
	).Scan(&m.Runs, &m.TotalKills, &bestMS, &m.MostKills, &m.MostWeaponsEvolved)
	if err != nil {
		return Meta{}, fmt.Errorf("load run totals: %w", err)
	}
	m.BestTime = time.Duration(bestMS) * time.Millisecond
	return m, nil
}

func (s *PostgresStore) ids(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (s *PostgresStore) DiscoverWeapon(ctx context.Context, id string) error {
	_, err := s.db.Pool.Exec(ctx,
		`INSERT INTO weapons_discovered (weapon_id) VALUES ($1) ON CONFLICT (weapon_id) DO NOTHING`, id)
	return err
}

func (s *PostgresStore) DiscoverEvolution(ctx context.Context, id string) error {
	_, err := s.db.Pool.Exec(ctx,
		`INSERT INTO evolutions_discovered (evolution_id) VALUES ($1) ON CONFLICT (evolution_id) DO NOTHING`, id)
	return err
}

func (s *PostgresStore) SaveRun(ctx context.Context, r RunResult) error {
	_, err := s.db.Pool.Exec(ctx,
		`INSERT INTO run_results (id, time_survived_ms, kills, bosses_defeated, weapons_evolved,
		                          level, victory, hard_mode, ended_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.ID, r.TimeSurvived.Milliseconds(), r.Kills, r.BossesDefeated, r.WeaponsEvolved,
		r.Level, r.Victory, r.HardMode, r.EndedAt,
	)
	return err
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
