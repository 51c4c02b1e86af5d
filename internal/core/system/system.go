package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput       Phase = iota // 0: apply the movement vector to the player
	PhaseSpawn                    // 1: spawn director
	PhaseBoss                     // 2: boss director
	PhaseProgression              // 3: gems, pickups, xp
	PhaseEnemyAI                  // 4: per-enemy chase
	PhaseWeapons                  // 5: per-weapon fire + update
	PhaseMovement                 // 6: integrate velocities, resolve overlaps
	PhaseEvents                   // 7: drain the event queue
	PhaseCleanup                  // 8: flush deferred pool releases
)

// Clock is the time stamp handed to every system: Now is simulation time since
// session start, Delta the step since the previous tick.
type Clock struct {
	Now   time.Duration
	Delta time.Duration
}

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(clk Clock)
}
