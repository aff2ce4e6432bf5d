package game

import (
	"errors"
	"fmt"
	"time"

	"gridsnake/game/manager"
	"gridsnake/game/types"

	"github.com/golang/glog"
)

// ErrNoHead is returned when the pipeline runs without a snake.
var ErrNoHead = errors.New("no snake head in session")

// Outcome reports what a frame did. It replaces event signalling: the
// caller consumes it synchronously in the same frame.
type Outcome struct {
	Ticked      bool
	Moved       bool
	Ate         bool
	Grew        bool
	GameOver    bool
	Collision   manager.CollisionType
	FoodSpawned bool
	BoardFull   bool
	Score       uint
}

// Game runs the tick pipeline. It is not safe for concurrent use;
// observers work from Snapshot values.
type Game struct {
	config  Config
	session *Session
	food    *types.Point

	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	growthMgr    *manager.GrowthManager
	resetMgr     *manager.ResetManager
	scoreMgr     *manager.ScoreManager

	scoreSink ScoreSink
	boardFull bool
}

func NewGame(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game config: %w", err)
	}

	collisionMgr := manager.NewCollisionManager(cfg.Grid)
	g := &Game{
		config:       cfg,
		collisionMgr: collisionMgr,
		foodMgr:      manager.NewFoodManager(cfg.Grid, cfg.Seed),
		growthMgr:    manager.NewGrowthManager(collisionMgr),
		resetMgr:     manager.NewResetManager(cfg.Spawn),
		scoreMgr:     manager.NewScoreManager(cfg.HistoryLimit),
	}
	g.session = g.newSession(g.resetMgr.NewSnake())

	// Generate initial food
	g.ensureFood(&Outcome{})
	return g, nil
}

// SetScoreSink attaches the score display and pushes the current text.
func (g *Game) SetScoreSink(sink ScoreSink) {
	g.scoreSink = sink
	g.notifyScore()
}

// Frame samples input every call and runs one tick when the clock fires.
func (g *Game) Frame(dt time.Duration, keys types.Keys) (Outcome, error) {
	if g.session == nil || g.session.Snake == nil {
		return Outcome{}, ErrNoHead
	}
	snake := g.session.Snake
	snake.Head.Velocity = g.session.Input.Sample(keys, snake.Head.Velocity)

	if !g.session.Clock.Advance(dt) {
		return Outcome{Score: snake.Head.Score, BoardFull: g.boardFull}, nil
	}
	return g.Tick()
}

// Tick runs the pipeline once regardless of the clock:
// advance, collision check, eating, game over, food respawn.
func (g *Game) Tick() (Outcome, error) {
	if g.session == nil || g.session.Snake == nil {
		glog.Error("tick refused: session has no snake")
		return Outcome{}, ErrNoHead
	}
	out := Outcome{Ticked: true}
	s := g.session
	snake := s.Snake
	s.Ticks++

	// An idle snake stays put but still eats food under its head.
	var vacated types.Point
	if snake.Head.Velocity != types.None {
		vacated = snake.Advance(g.config.Grid.CellSize)
		out.Moved = true
		out.Collision = g.collisionMgr.CheckCollision(snake)
	}

	if out.Collision == manager.NoCollision {
		if g.growthMgr.Eat(snake, g.food) {
			out.Ate = true
			g.food = nil
			glog.V(2).Infof("session %s: ate food at %v, score %d", s.ID, snake.GetHead(), snake.Head.Score)
			g.notifyScore()
		}
		if out.Moved {
			out.Grew = g.growthMgr.Extend(snake, vacated)
		}
	}

	if out.Collision != manager.NoCollision {
		g.gameOver(out.Collision)
		out.GameOver = true
	} else {
		snake.Head.Velocity = s.Input.Consume(snake.Head.Velocity)
	}

	g.ensureFood(&out)
	out.Score = g.session.Snake.Head.Score
	out.BoardFull = g.boardFull
	return out, nil
}

// gameOver records the finished session and replaces it with a fresh one.
// Food is left where it is.
func (g *Game) gameOver(cause manager.CollisionType) {
	old := g.session
	g.scoreMgr.AddToHistory(manager.GameRecord{
		SessionID: old.ID.String(),
		Score:     old.Snake.Head.Score,
		Length:    old.Snake.Len(),
		Ticks:     old.Ticks,
		EndedAt:   time.Now(),
	})
	glog.V(1).Infof("session %s: game over (%v collision) at %v, score %d", old.ID, cause, old.Snake.GetHead(), old.Snake.Head.Score)

	g.session = g.newSession(g.resetMgr.Reset(old.Snake))
	g.notifyScore()
}

func (g *Game) ensureFood(out *Outcome) {
	if g.food != nil {
		return
	}
	food, err := g.foodMgr.GenerateFood(g.session.Snake)
	if err != nil {
		if !g.boardFull {
			glog.Warningf("session %s: %v", g.session.ID, err)
		}
		g.boardFull = true
		return
	}
	g.boardFull = false
	g.food = &food
	out.FoodSpawned = true
}

func (g *Game) notifyScore() {
	if g.scoreSink != nil {
		g.scoreSink.SetScoreText(g.ScoreText())
	}
}

func (g *Game) ScoreText() string {
	return manager.ScoreText(g.Score())
}

// Score is the live session's score, or 0 without a session.
func (g *Game) Score() uint {
	if g.session == nil || g.session.Snake == nil {
		return 0
	}
	return g.session.Snake.Head.Score
}

// Session exposes the live session. Callers must not hold it across frames.
func (g *Game) Session() *Session {
	return g.session
}

// Food returns the food position and whether food is present.
func (g *Game) Food() (types.Point, bool) {
	if g.food == nil {
		return types.Point{}, false
	}
	return *g.food, true
}

// PlaceFood puts the food at p, replacing any current food.
func (g *Game) PlaceFood(p types.Point) {
	g.food = &p
}

// RemoveFood clears the food; it respawns on the next tick.
func (g *Game) RemoveFood() {
	g.food = nil
}

func (g *Game) Config() Config {
	return g.config
}

func (g *Game) Stats() *manager.ScoreManager {
	return g.scoreMgr
}

// Resets counts game overs since the game was created.
func (g *Game) Resets() int {
	if g.resetMgr == nil {
		return 0
	}
	return g.resetMgr.Resets()
}
