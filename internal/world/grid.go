package world

import (
	"math"

	"github.com/nightfall/cryptcore/internal/core/ecs"
	"github.com/nightfall/cryptcore/internal/vmath"
)

// Grid is a uniform spatial hash over enemy positions. It is rebuilt from the
// enemy pool once per tick before weapons resolve overlaps; callers do the
// fine-grained distance test themselves.
// Accessed only from the game loop goroutine; no locks.
type Grid struct {
	cellSize float64
	cells    map[cellKey][]ecs.EntityID
}

type cellKey struct {
	cx int32
	cy int32
}

func NewGrid(cellSize float64) *Grid {
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]ecs.EntityID),
	}
}

func (g *Grid) coord(v float64) int32 {
	return int32(math.Floor(v / g.cellSize))
}

// Reset empties every cell. Cells that stayed empty since the previous reset
// are dropped so the map tracks only the area around the swarm.
func (g *Grid) Reset() {
	for k, ids := range g.cells {
		if len(ids) == 0 {
			delete(g.cells, k)
			continue
		}
		g.cells[k] = ids[:0]
	}
}

// Insert places id into the cell containing pos.
func (g *Grid) Insert(id ecs.EntityID, pos vmath.Vec2) {
	k := cellKey{cx: g.coord(pos.X), cy: g.coord(pos.Y)}
	g.cells[k] = append(g.cells[k], id)
}

// Query calls fn for every id in the cells overlapped by the square around
// center with the given half extent. Cells are visited row by row and ids in
// insertion order, so results are deterministic. Returning false stops.
func (g *Grid) Query(center vmath.Vec2, extent float64, fn func(ecs.EntityID) bool) {
	x0, x1 := g.coord(center.X-extent), g.coord(center.X+extent)
	y0, y1 := g.coord(center.Y-extent), g.coord(center.Y+extent)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			for _, id := range g.cells[cellKey{cx: cx, cy: cy}] {
				if !fn(id) {
					return
				}
			}
		}
	}
}
