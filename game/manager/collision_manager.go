package manager

import (
	"gridsnake/game/entity"
	"gridsnake/game/types"
)

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	default:
		return "none"
	}
}

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// CheckCollision evaluates the settled head against the walls and the
// post-advance body. It must run after Snake.Advance has completed.
func (cm *CollisionManager) CheckCollision(snake *entity.Snake) CollisionType {
	head := snake.GetHead()
	if cm.isWallCollision(head) {
		return WallCollision
	}
	if snake.BodyContains(head) {
		return SelfCollision
	}
	return NoCollision
}

// isWallCollision checks if a position is outside the half extents
func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return !cm.grid.Contains(pos)
}

// IsFoodCollision compares planar coordinates only.
func (cm *CollisionManager) IsFoodCollision(pos types.Point, food *types.Point) bool {
	return food != nil && pos.X == food.X && pos.Y == food.Y
}
