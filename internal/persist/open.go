package persist

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nightfall/cryptcore/internal/config"
)

// Open connects the store selected by cfg.Driver and brings its schema up to
// date.
func Open(ctx context.Context, cfg config.MetaConfig, log *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := NewDB(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(ctx, db.Pool); err != nil {
			db.Close()
			return nil, err
		}
		return NewPostgresStore(db), nil
	case "sqlite":
		return OpenSQLite(ctx, cfg)
	case "none", "":
		return nopStore{}, nil
	}
	return nil, fmt.Errorf("unknown meta driver %q", cfg.Driver)
}

// LoadMeta reads meta progression and degrades to empty defaults on failure.
func LoadMeta(ctx context.Context, s Store, log *zap.Logger) Meta {
	m, err := s.LoadMeta(ctx)
	if err != nil {
		log.Warn("meta progression unavailable, using defaults", zap.Error(err))
		return Meta{}
	}
	return m
}
