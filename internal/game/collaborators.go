package game

import (
	"github.com/nightfall/cryptcore/internal/persist"
	"github.com/nightfall/cryptcore/internal/vmath"
)

//go:generate go tool mockgen -destination=./mocks/collaborators_mock.go -package=mocks . Effects,MetaRecorder

// Effects receives fire-and-forget notifications for the renderer.
type Effects interface {
	OnHit(pos vmath.Vec2)
	OnDeath(pos vmath.Vec2, color uint32)
	OnLevelUp(level int)
	OnEvolution(colorA, colorB uint32)
	OnBossWarning(name string)
}

// MetaRecorder persists discoveries and run results. Calls must not block and
// failures must stay on the recorder's side.
type MetaRecorder interface {
	RecordWeaponDiscovered(id string)
	RecordEvolutionDiscovered(id string)
	RecordRunResult(r persist.RunResult)
}

// Hooks are the exit notifications of a run.
type Hooks struct {
	OnPlayerDefeated func(Summary)
	OnVictory        func(Summary)
	OnAbandoned      func(Summary) // time limit or shutdown
}

type nopEffects struct{}

func (nopEffects) OnHit(vmath.Vec2)           {}
func (nopEffects) OnDeath(vmath.Vec2, uint32) {}
func (nopEffects) OnLevelUp(int)              {}
func (nopEffects) OnEvolution(uint32, uint32) {}
func (nopEffects) OnBossWarning(string)       {}

type nopRecorder struct{}

func (nopRecorder) RecordWeaponDiscovered(string)     {}
func (nopRecorder) RecordEvolutionDiscovered(string)  {}
func (nopRecorder) RecordRunResult(persist.RunResult) {}
