package ai

import (
	"fmt"

	"gridsnake/game"
	"gridsnake/game/types"
)

// Actions are the headings the agent may choose, in table order.
var Actions = [4]types.Heading{types.Up, types.Right, types.Down, types.Left}

type State struct {
	FoodDir      [2]int  // sign of food offset from head (x, y)
	DangerDirs   [4]bool // danger one cell away, indexed like Actions
	FoodDistance int     // Manhattan distance to food in cells
}

// NewState reads the agent's view of a settled snapshot.
func NewState(snap game.Snapshot) State {
	grid := snap.Grid
	hx, hy := grid.WorldToCell(snap.Head)

	var s State
	if snap.HasFood {
		fx, fy := grid.WorldToCell(snap.Food)
		s.FoodDir = [2]int{sign(fx - hx), sign(fy - hy)}
		s.FoodDistance = abs(fx-hx) + abs(fy-hy)
	}

	occupied := make(map[types.Point]bool, len(snap.Body))
	for _, p := range snap.Body {
		occupied[p] = true
	}
	for i, h := range Actions {
		next := snap.Head.Add(h, grid.CellSize)
		s.DangerDirs[i] = !grid.Contains(next) || occupied[next]
	}
	return s
}

// Key identifies the state in the Q-table. Distance is left out.
func (s State) Key() string {
	return fmt.Sprintf("%d,%d|%d%d%d%d", s.FoodDir[0], s.FoodDir[1],
		boolToInt(s.DangerDirs[0]), boolToInt(s.DangerDirs[1]),
		boolToInt(s.DangerDirs[2]), boolToInt(s.DangerDirs[3]))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
