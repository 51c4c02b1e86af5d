package persist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type memStore struct {
	mu          sync.Mutex
	weapons     []string
	evolutions  []string
	runs        []RunResult
	failWeapons bool
}

func (s *memStore) LoadMeta(context.Context) (Meta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Meta{WeaponsDiscovered: s.weapons, EvolutionsDiscovered: s.evolutions, Runs: len(s.runs)}, nil
}

func (s *memStore) DiscoverWeapon(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWeapons {
		return errors.New("disk full")
	}
	s.weapons = append(s.weapons, id)
	return nil
}

func (s *memStore) DiscoverEvolution(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evolutions = append(s.evolutions, id)
	return nil
}

func (s *memStore) SaveRun(_ context.Context, r RunResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, r)
	return nil
}

func (s *memStore) Close() error { return nil }

func TestRecorderFlushesOnCancel(t *testing.T) {
	store := &memStore{}
	rec := NewRecorder(store, 8, time.Second, zap.NewNop())
	rec.RecordWeaponDiscovered("whip")
	rec.RecordEvolutionDiscovered("inferno_lash")
	rec.RecordRunResult(RunResult{ID: uuid.New(), Kills: 12})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := rec.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(store.weapons) != 1 || len(store.evolutions) != 1 || len(store.runs) != 1 {
		t.Errorf("store = %+v, want one of each", store)
	}
	if w, d := rec.Stats(); w != 3 || d != 0 {
		t.Errorf("Stats() = %d, %d; want 3, 0", w, d)
	}
}

func TestRecorderDropsWhenFull(t *testing.T) {
	store := &memStore{}
	rec := NewRecorder(store, 2, time.Second, zap.NewNop())
	for i := 0; i < 5; i++ {
		rec.RecordWeaponDiscovered("whip")
	}
	if _, d := rec.Stats(); d != 3 {
		t.Errorf("dropped = %d, want 3", d)
	}
}

func TestRecorderSwallowsStoreErrors(t *testing.T) {
	store := &memStore{failWeapons: true}
	rec := NewRecorder(store, 4, time.Second, zap.NewNop())
	rec.RecordWeaponDiscovered("whip")
	rec.RecordRunResult(RunResult{ID: uuid.New()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec.Run(ctx)
	if w, _ := rec.Stats(); w != 1 {
		t.Errorf("written = %d, want only the run result", w)
	}
	if len(store.runs) != 1 {
		t.Errorf("runs = %d, want 1", len(store.runs))
	}
}

func TestRecorderRunsConcurrently(t *testing.T) {
	store := &memStore{}
	rec := NewRecorder(store, 64, time.Second, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rec.Run(ctx)
		close(done)
	}()
	for i := 0; i < 20; i++ {
		rec.RecordWeaponDiscovered("bone_shield")
	}
	cancel()
	<-done
	if w, d := rec.Stats(); w+d != 20 {
		t.Errorf("written %d + dropped %d, want 20", w, d)
	}
}

func TestLoadMetaDegradesToDefaults(t *testing.T) {
	m := LoadMeta(context.Background(), failingStore{}, zap.NewNop())
	if m.Runs != 0 || len(m.WeaponsDiscovered) != 0 {
		t.Errorf("LoadMeta() = %+v, want defaults", m)
	}
}

type failingStore struct{ nopStore }

func (failingStore) LoadMeta(context.Context) (Meta, error) {
	return Meta{Runs: 99}, errors.New("connection refused")
}

func TestOpenNone(t *testing.T) {
	s, err := Open(context.Background(), configNone(), zap.NewNop())
	if err != nil {
		t.Fatalf("Open(none) error = %v", err)
	}
	defer s.Close()
	if err := s.SaveRun(context.Background(), RunResult{}); err != nil {
		t.Errorf("SaveRun() error = %v", err)
	}
}
