package game

import (
	"gridsnake/game/types"
)

// Snapshot is a copy of the settled state handed to observers.
type Snapshot struct {
	SessionID string        `json:"session"`
	Tick      int           `json:"tick"`
	Grid      types.Grid    `json:"grid"`
	Head      types.Point   `json:"head"`
	Heading   types.Heading `json:"heading"`
	// Body is in index order, nearest the head first.
	Body      []types.Point `json:"body"`
	Food      types.Point   `json:"food"`
	HasFood   bool          `json:"hasFood"`
	Score     uint          `json:"score"`
	HighScore uint          `json:"highScore"`
	BoardFull bool          `json:"boardFull"`
}

// Renderer draws settled positions. It never mutates the game.
type Renderer interface {
	Render(s Snapshot)
}

// Renderers fans a snapshot out to several renderers in order.
type Renderers []Renderer

func (rs Renderers) Render(s Snapshot) {
	for _, r := range rs {
		r.Render(s)
	}
}

// ScoreSink receives "Score: N" whenever the score changes or resets.
type ScoreSink interface {
	SetScoreText(text string)
}

func (g *Game) Snapshot() Snapshot {
	if g.session == nil || g.session.Snake == nil {
		return Snapshot{Grid: g.config.Grid}
	}
	snake := g.session.Snake
	body := make([]types.Point, 0, snake.Len())
	for _, seg := range snake.Body {
		body = append(body, seg.Position)
	}
	s := Snapshot{
		SessionID: g.session.ID.String(),
		Tick:      g.session.Ticks,
		Grid:      g.config.Grid,
		Head:      snake.Head.Position,
		Heading:   snake.Head.Velocity,
		Body:      body,
		Score:     snake.Head.Score,
		HighScore: snake.Head.Score,
		BoardFull: g.boardFull,
	}
	if g.scoreMgr != nil {
		s.HighScore = max(g.scoreMgr.GetHighScore(), snake.Head.Score)
	}
	if g.food != nil {
		s.Food = *g.food
		s.HasFood = true
	}
	return s
}

// Draw pushes the current snapshot to r.
func (g *Game) Draw(r Renderer) {
	r.Render(g.Snapshot())
}
