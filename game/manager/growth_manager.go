package manager

import (
	"gridsnake/game/entity"
	"gridsnake/game/types"
)

type GrowthManager struct {
	collisionMgr *CollisionManager
}

func NewGrowthManager(collisionMgr *CollisionManager) *GrowthManager {
	return &GrowthManager{
		collisionMgr: collisionMgr,
	}
}

// Eat scores when the head sits on food and owes the snake one segment.
// The caller removes the food and respawns it.
func (gm *GrowthManager) Eat(snake *entity.Snake, food *types.Point) bool {
	if !gm.collisionMgr.IsFoodCollision(snake.GetHead(), food) {
		return false
	}
	snake.Head.Score++
	snake.Owed++
	return true
}

// Extend appends one owed segment at vacated, the cell the chain's last
// element left during this tick's advance. An idle snake has no free cell,
// so the segment waits for the next move.
func (gm *GrowthManager) Extend(snake *entity.Snake, vacated types.Point) bool {
	if snake.Owed == 0 || snake.GetHead() == vacated {
		return false
	}
	snake.Grow(vacated)
	snake.Owed--
	return true
}
