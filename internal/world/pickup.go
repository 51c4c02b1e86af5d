package world

import (
	"math"
	"time"

	"github.com/nightfall/cryptcore/internal/vmath"
)

// Gem is a pooled experience pickup. It rests until the player comes within
// pickup radius, then accelerates toward the player.
type Gem struct {
	Pos      vmath.Vec2
	Vel      vmath.Vec2
	Value    int
	Magnetic bool
}

func resetGem(g *Gem) {
	*g = Gem{Pos: vmath.V(math.Inf(1), math.Inf(1))}
}

// Chest is the treasure dropped by a defeated boss.
type Chest struct {
	Pos     vmath.Vec2
	Expires time.Duration
}

func resetChest(c *Chest) {
	*c = Chest{Pos: vmath.V(math.Inf(1), math.Inf(1))}
}
