package manager

import (
	"gridsnake/game/entity"
	"gridsnake/game/types"
)

// ResetManager owns the spawn rules for a fresh snake.
type ResetManager struct {
	spawn  types.Point
	resets int
}

func NewResetManager(spawn types.Point) *ResetManager {
	return &ResetManager{
		spawn: spawn,
	}
}

// NewSnake returns a snake at the spawn point with zero velocity, no body
// and a zero score.
func (rm *ResetManager) NewSnake() *entity.Snake {
	return entity.NewSnake(rm.spawn)
}

// Reset discards the dead snake and returns its replacement.
func (rm *ResetManager) Reset(dead *entity.Snake) *entity.Snake {
	rm.resets++
	return rm.NewSnake()
}

// Resets counts game overs handled so far.
func (rm *ResetManager) Resets() int {
	return rm.resets
}
