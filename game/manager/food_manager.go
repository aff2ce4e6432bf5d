package manager

import (
	"errors"

	"gridsnake/game/types"

	"golang.org/x/exp/rand"
)

// ErrBoardFull is returned when every cell is covered by the snake.
var ErrBoardFull = errors.New("board full: no free cell for food")

// Occupant reports whether a cell is taken.
type Occupant interface {
	Occupies(p types.Point) bool
	Len() int
}

type FoodManager struct {
	grid types.Grid
	rng  *rand.Rand
	// maxAttempts bounds rejection sampling before the full scan.
	maxAttempts int
}

func NewFoodManager(grid types.Grid, seed uint64) *FoodManager {
	return &FoodManager{
		grid:        grid,
		rng:         rand.New(rand.NewSource(seed)),
		maxAttempts: grid.Capacity(),
	}
}

// GenerateFood picks a free grid-aligned cell. It draws random cells until
// one is free; once the attempt budget runs out it scans the whole board
// and picks uniformly among the free cells.
func (fm *FoodManager) GenerateFood(snake Occupant) (types.Point, error) {
	// head plus segments
	if snake.Len()+1 >= fm.grid.Capacity() {
		return fm.scan(snake)
	}

	nx, ny := fm.grid.CellsX(), fm.grid.CellsY()
	for attempt := 0; attempt < fm.maxAttempts; attempt++ {
		food := fm.grid.CellToWorld(
			fm.rng.Intn(2*nx+1)-nx,
			fm.rng.Intn(2*ny+1)-ny,
		)
		if !snake.Occupies(food) {
			return food, nil
		}
	}
	return fm.scan(snake)
}

func (fm *FoodManager) scan(snake Occupant) (types.Point, error) {
	nx, ny := fm.grid.CellsX(), fm.grid.CellsY()
	free := make([]types.Point, 0)
	for cy := -ny; cy <= ny; cy++ {
		for cx := -nx; cx <= nx; cx++ {
			p := fm.grid.CellToWorld(cx, cy)
			if !snake.Occupies(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return types.Point{}, ErrBoardFull
	}
	return free[fm.rng.Intn(len(free))], nil
}
