package ui

import (
	"fmt"

	"gridsnake/game"
	"gridsnake/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	hudFontSize = 20
	hudPadding  = 5
)

var (
	headColor = rl.Color{R: 112, G: 200, B: 80, A: 255}
	bodyColor = rl.Color{R: 60, G: 140, B: 50, A: 255}
	foodColor = rl.Red
)

// Renderer draws snapshots into a raylib window whose origin sits at the
// centre of the grid with +Y pointing up.
type Renderer struct {
	grid      types.Grid
	cellSize  int32
	scoreText string
}

func NewRenderer(grid types.Grid) *Renderer {
	return &Renderer{
		grid:      grid,
		cellSize:  int32(grid.CellSize),
		scoreText: "Score: 0",
	}
}

// WindowSize returns the viewport that exactly covers the grid extents.
func WindowSize(grid types.Grid) (int32, int32) {
	return int32(2 * grid.HalfWidth), int32(2 * grid.HalfHeight)
}

// SetScoreText implements game.ScoreSink.
func (r *Renderer) SetScoreText(text string) {
	r.scoreText = text
}

// Render implements game.Renderer.
func (r *Renderer) Render(s game.Snapshot) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	if s.HasFood {
		r.drawCell(s.Food, foodColor)
	}
	for _, p := range s.Body {
		r.drawCell(p, bodyColor)
	}
	r.drawCell(s.Head, headColor)

	rl.DrawText(r.scoreText, hudPadding, hudPadding, hudFontSize, rl.White)
	best := fmt.Sprintf("Best: %d", s.HighScore)
	width, _ := WindowSize(r.grid)
	rl.DrawText(best, width-rl.MeasureText(best, hudFontSize)-hudPadding, hudPadding, hudFontSize, rl.Gray)

	if s.BoardFull {
		msg := "Board full!"
		_, height := WindowSize(r.grid)
		rl.DrawText(msg, (width-rl.MeasureText(msg, hudFontSize))/2, height/2, hudFontSize, rl.Yellow)
	}
	rl.EndDrawing()
}

func (r *Renderer) drawCell(p types.Point, color rl.Color) {
	x, y := r.toScreen(p)
	rl.DrawRectangle(x, y, r.cellSize, r.cellSize, color)
}

// toScreen returns the top-left pixel of the cell centred on p.
func (r *Renderer) toScreen(p types.Point) (int32, int32) {
	half := r.grid.CellSize / 2
	x := r.grid.HalfWidth + p.X - half
	y := r.grid.HalfHeight - p.Y - half
	return int32(x), int32(y)
}
