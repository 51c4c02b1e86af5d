package system

import (
	"github.com/nightfall/cryptcore/internal/core/event"
	coresys "github.com/nightfall/cryptcore/internal/core/system"
)

// EventSystem delivers the events queued during the tick. Phase 7 (Events).
type EventSystem struct {
	bus *event.Bus
}

func NewEventSystem(bus *event.Bus) *EventSystem {
	return &EventSystem{bus: bus}
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *EventSystem) Update(_ coresys.Clock) {
	s.bus.Drain()
}
