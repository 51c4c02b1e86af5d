package persist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nightfall/cryptcore/internal/config"
)

// SQLiteStore keeps meta progression in a local sqlite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the sqlite database named by
// cfg.DSN and applies migrations.
func OpenSQLite(ctx context.Context, cfg config.MetaConfig) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite serializes writers; one connection avoids SQLITE_BUSY churn
	db.SetMaxOpenConns(1)
	if cfg.ConnMaxLifetime.Duration > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime.Duration)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := RunSQLiteMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) LoadMeta(ctx context.Context) (Meta, error) {
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
	err = s.db.QueryRowContext(ctx,
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

func (s *SQLiteStore) ids(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DiscoverWeapon(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO weapons_discovered (weapon_id) VALUES (?) ON CONFLICT(weapon_id) DO NOTHING`, id)
	return err
}

func (s *SQLiteStore) DiscoverEvolution(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO evolutions_discovered (evolution_id) VALUES (?) ON CONFLICT(evolution_id) DO NOTHING`, id)
	return err
}

func (s *SQLiteStore) SaveRun(ctx context.Context, r RunResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_results (id, time_survived_ms, kills, bosses_defeated, weapons_evolved,
		                          level, victory, hard_mode, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.TimeSurvived.Milliseconds(), r.Kills, r.BossesDefeated, r.WeaponsEvolved,
		r.Level, r.Victory, r.HardMode, r.EndedAt.UTC(),
	)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
