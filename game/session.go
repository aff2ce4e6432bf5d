package game

import (
	"gridsnake/game/entity"
	"gridsnake/game/manager"

	"github.com/google/uuid"
)

// Session is all mutable state of one life of the snake. It is replaced
// as a whole on game over.
type Session struct {
	ID    uuid.UUID
	Snake *entity.Snake
	Input *manager.InputManager
	Clock *TickClock
	// Ticks counts pipeline runs in this session.
	Ticks int
}

func (g *Game) newSession(snake *entity.Snake) *Session {
	return &Session{
		ID:    uuid.New(),
		Snake: snake,
		Input: manager.NewInputManager(),
		Clock: NewTickClock(g.config.TickPeriod),
	}
}
