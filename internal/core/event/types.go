package event

import (
	"github.com/nightfall/cryptcore/internal/core/ecs"
	"github.com/nightfall/cryptcore/internal/vmath"
)

// Combat events.

type EnemyDamaged struct {
	ID     ecs.EntityID
	Pos    vmath.Vec2
	Amount float64
	Boss   bool
}

// EnemyKilled is emitted exactly once per death transition. The enemy stays in
// its pool (dying) until the cosmetic window elapses.
type EnemyKilled struct {
	ID    ecs.EntityID
	Type  string
	Pos   vmath.Vec2
	XP    int
	Color uint32
	Elite bool
}

type PlayerDamaged struct {
	Amount float64
	Health float64
	Source string
}

type PlayerDefeated struct{}

// Progression events.

type LevelUp struct {
	Level int
}

type WeaponAcquired struct {
	WeaponID string
	Evolved  bool
}

type WeaponEvolved struct {
	EvolvedID string
	From      [2]string
	ColorA    uint32
	ColorB    uint32
}

type TreasureCollected struct {
	Pos vmath.Vec2
}

// Boss events.

type BossWarned struct {
	Type string
	Name string
}

type BossSpawned struct {
	Type       string
	Name       string
	Appearance int
}

type BossDefeated struct {
	Type  string
	Name  string
	Pos   vmath.Vec2
	Final bool
}
