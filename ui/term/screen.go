// Package term renders the game in a terminal with tcell.
package term

import (
	"fmt"

	"gridsnake/game"
	"gridsnake/game/types"

	"github.com/gdamore/tcell/v2"
)

// Each grid cell is two columns wide so cells look square.
const cellCols = 2

// Rows above the board: score line, then the top border.
const boardTop = 2

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	headStyle   = tcell.StyleDefault.Background(tcell.ColorLightGreen)
	bodyStyle   = tcell.StyleDefault.Background(tcell.ColorGreen)
	foodStyle   = tcell.StyleDefault.Background(tcell.ColorRed)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Screen is a render sink and score sink backed by a tcell screen.
type Screen struct {
	screen    tcell.Screen
	grid      types.Grid
	scoreText string
}

func NewScreen(screen tcell.Screen, grid types.Grid) *Screen {
	return &Screen{
		screen:    screen,
		grid:      grid,
		scoreText: "Score: 0",
	}
}

func (s *Screen) SetScoreText(text string) {
	s.scoreText = text
}

func (s *Screen) Render(snap game.Snapshot) {
	s.screen.Clear()
	s.drawBorder()

	if snap.HasFood {
		s.drawCell(snap.Food, foodStyle)
	}
	for _, p := range snap.Body {
		s.drawCell(p, bodyStyle)
	}
	s.drawCell(snap.Head, headStyle)

	status := fmt.Sprintf("%s  Best: %d", s.scoreText, snap.HighScore)
	if snap.BoardFull {
		status += "  Board full!"
	}
	drawText(s.screen, 0, 0, status, textStyle)
	s.screen.Show()
}

// CellAt returns the top-left screen column and row used for p.
func (s *Screen) CellAt(p types.Point) (int, int) {
	cx, cy := s.grid.WorldToCell(p)
	col := 1 + (cx+s.grid.CellsX())*cellCols
	row := boardTop + 1 + (s.grid.CellsY() - cy)
	return col, row
}

func (s *Screen) drawCell(p types.Point, style tcell.Style) {
	col, row := s.CellAt(p)
	for i := 0; i < cellCols; i++ {
		s.screen.SetContent(col+i, row, ' ', nil, style)
	}
}

func (s *Screen) drawBorder() {
	width := (2*s.grid.CellsX()+1)*cellCols + 2
	height := 2*s.grid.CellsY() + 1 + 2
	for x := 0; x < width; x++ {
		s.screen.SetContent(x, boardTop, '─', nil, borderStyle)
		s.screen.SetContent(x, boardTop+height-1, '─', nil, borderStyle)
	}
	for y := 0; y < height; y++ {
		s.screen.SetContent(0, boardTop+y, '│', nil, borderStyle)
		s.screen.SetContent(width-1, boardTop+y, '│', nil, borderStyle)
	}
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
