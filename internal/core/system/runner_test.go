package system

import (
	"testing"
	"time"
)

type recorder struct {
	phase Phase
	name  string
	log   *[]string
}

func (r recorder) Phase() Phase     { return r.phase }
func (r recorder) Update(clk Clock) { *r.log = append(*r.log, r.name) }

func TestRunnerOrdersByPhaseThenRegistration(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{PhaseCleanup, "cleanup", &log})
	r.Register(recorder{PhaseSpawn, "spawn", &log})
	r.Register(recorder{PhaseWeapons, "weapons-a", &log})
	r.Register(recorder{PhaseInput, "input", &log})
	r.Register(recorder{PhaseWeapons, "weapons-b", &log})

	r.Tick(Clock{Now: time.Second, Delta: 16 * time.Millisecond})
	want := []string{"input", "spawn", "weapons-a", "weapons-b", "cleanup"}
	if len(log) != len(want) {
		t.Fatalf("ran %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("ran %v, want %v", log, want)
		}
	}

	log = log[:0]
	r.TickPhase(PhaseWeapons, Clock{})
	if len(log) != 2 || log[0] != "weapons-a" {
		t.Errorf("TickPhase ran %v", log)
	}
	if r.Len() != 5 {
		t.Errorf("Len() = %d", r.Len())
	}
}
