package game

import (
	"errors"
	"testing"
	"time"

	"gridsnake/game/entity"
	"gridsnake/game/manager"
	"gridsnake/game/types"

	"golang.org/x/exp/rand"
)

type recordingSink struct {
	texts []string
}

func (s *recordingSink) SetScoreText(text string) {
	s.texts = append(s.texts, text)
}

func (s *recordingSink) last() string {
	if len(s.texts) == 0 {
		return ""
	}
	return s.texts[len(s.texts)-1]
}

func newTestGame(t *testing.T, seed uint64) *Game {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = seed
	g, err := NewGame(cfg)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func pt(x, y float64) types.Point {
	return types.Point{X: x, Y: y}
}

func TestNewGameInitialState(t *testing.T) {
	g := newTestGame(t, 1)
	snap := g.Snapshot()
	if snap.Head != pt(0, 0) || snap.Heading != types.None || len(snap.Body) != 0 || snap.Score != 0 {
		t.Errorf("unexpected initial snapshot: %+v", snap)
	}
	if !snap.HasFood {
		t.Fatal("no initial food")
	}
	if snap.Food == snap.Head {
		t.Error("initial food on the head")
	}
}

func TestScenarioMoveUp(t *testing.T) {
	g := newTestGame(t, 1)
	g.PlaceFood(pt(100, 100))
	g.Session().Snake.Head.Velocity = types.Up

	out, err := g.Tick()
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Session().Snake.GetHead(); got != pt(0, 20) {
		t.Errorf("head = %v, want (0,20)", got)
	}
	if out.Collision != manager.NoCollision || out.GameOver {
		t.Errorf("unexpected collision: %+v", out)
	}
}

func TestScenarioWall(t *testing.T) {
	g := newTestGame(t, 1)
	sink := &recordingSink{}
	g.SetScoreSink(sink)
	oldID := g.Session().ID

	snake := g.Session().Snake
	snake.Head.Position = pt(200, 0)
	snake.Head.Velocity = types.Right
	snake.Head.Score = 4
	snake.Grow(pt(180, 0))

	out, err := g.Tick()
	if err != nil {
		t.Fatal(err)
	}
	if !out.GameOver || out.Collision != manager.WallCollision {
		t.Fatalf("outcome = %+v, want wall game over", out)
	}

	fresh := g.Session().Snake
	if fresh.GetHead() != pt(0, 0) || fresh.Head.Velocity != types.None || fresh.Head.Score != 0 || fresh.Len() != 0 {
		t.Errorf("session not reset: %+v", fresh)
	}
	if g.Session().ID == oldID {
		t.Error("session ID reused after game over")
	}
	if g.Session().Input.Pending() != types.None {
		t.Error("pending input survived reset")
	}
	if sink.last() != "Score: 0" {
		t.Errorf("score text = %q", sink.last())
	}
	if g.Stats().GamesPlayed() != 1 || g.Stats().GetHighScore() != 4 {
		t.Errorf("stats: games=%d high=%d", g.Stats().GamesPlayed(), g.Stats().GetHighScore())
	}
	if g.Resets() != 1 {
		t.Errorf("resets = %d", g.Resets())
	}
}

func TestScenarioEat(t *testing.T) {
	g := newTestGame(t, 1)
	sink := &recordingSink{}
	g.SetScoreSink(sink)

	snake := g.Session().Snake
	snake.Head.Velocity = types.Up
	snake.Grow(pt(0, -20))
	g.PlaceFood(pt(0, 20))

	out, err := g.Tick()
	if err != nil {
		t.Fatal(err)
	}
	if !out.Grew || !out.FoodSpawned {
		t.Fatalf("outcome = %+v, want growth and respawn", out)
	}
	if snake.GetHead() != pt(0, 20) || snake.Head.Score != 1 {
		t.Errorf("head=%v score=%d", snake.GetHead(), snake.Head.Score)
	}
	if snake.Len() != 2 {
		t.Fatalf("len = %d, want 2", snake.Len())
	}
	if snake.Body[0] != (entity.Segment{Index: 0, Position: pt(0, 0)}) {
		t.Errorf("segment 0 = %+v", snake.Body[0])
	}
	if snake.Body[1] != (entity.Segment{Index: 1, Position: pt(0, -20)}) {
		t.Errorf("segment 1 = %+v", snake.Body[1])
	}
	food, ok := g.Food()
	if !ok || snake.Occupies(food) {
		t.Errorf("food %v (present %v) not relocated to a free cell", food, ok)
	}
	if sink.last() != "Score: 1" {
		t.Errorf("score text = %q", sink.last())
	}
}

func TestSelfCollisionSkipsEating(t *testing.T) {
	g := newTestGame(t, 1)
	snake := g.Session().Snake
	snake.Head.Velocity = types.Down
	snake.Grow(pt(20, 0))
	snake.Grow(pt(20, -20))
	snake.Grow(pt(0, -20))
	snake.Grow(pt(-20, -20))
	g.PlaceFood(pt(0, -20))

	out, err := g.Tick()
	if err != nil {
		t.Fatal(err)
	}
	if out.Collision != manager.SelfCollision || out.Grew {
		t.Errorf("outcome = %+v, want self collision without growth", out)
	}
	if food, ok := g.Food(); !ok || food != pt(0, -20) {
		t.Errorf("food moved on game over: %v %v", food, ok)
	}
	if g.Stats().GetScoreHistory()[0].Score != 0 {
		t.Error("collision tick awarded a point")
	}
}

func TestIdleSnakeStaysPut(t *testing.T) {
	g := newTestGame(t, 1)
	for i := 0; i < 3; i++ {
		out, err := g.Tick()
		if err != nil {
			t.Fatal(err)
		}
		if out.Moved || out.GameOver {
			t.Fatalf("idle tick %d: %+v", i, out)
		}
	}
	if g.Session().Snake.GetHead() != pt(0, 0) {
		t.Errorf("idle head moved to %v", g.Session().Snake.GetHead())
	}
}

func TestFrameRunsTickOnClock(t *testing.T) {
	g := newTestGame(t, 1)
	g.PlaceFood(pt(100, 100))
	up := types.Keys{Up: true}

	for i := 0; i < 6; i++ {
		out, err := g.Frame(16*time.Millisecond, up)
		if err != nil {
			t.Fatal(err)
		}
		if out.Ticked {
			t.Fatalf("ticked early on frame %d", i)
		}
	}
	if g.Session().Snake.Head.Velocity != types.Up {
		t.Error("input not applied before the tick")
	}
	out, err := g.Frame(16*time.Millisecond, up)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Ticked || g.Session().Snake.GetHead() != pt(0, 20) {
		t.Errorf("after 112ms: ticked=%v head=%v", out.Ticked, g.Session().Snake.GetHead())
	}
}

func TestFrameBuffersSecondTurn(t *testing.T) {
	g := newTestGame(t, 1)
	g.PlaceFood(pt(100, 100))
	g.Session().Snake.Head.Velocity = types.Right

	g.Frame(10*time.Millisecond, types.Keys{Up: true})
	g.Frame(10*time.Millisecond, types.Keys{Left: true})
	if v := g.Session().Snake.Head.Velocity; v != types.Up {
		t.Fatalf("velocity = %v, want up", v)
	}

	out, _ := g.Frame(80*time.Millisecond, types.Keys{})
	if !out.Ticked {
		t.Fatal("tick did not fire at 100ms")
	}
	snake := g.Session().Snake
	if snake.GetHead() != pt(0, 20) || snake.Head.Velocity != types.Left {
		t.Fatalf("head=%v velocity=%v, want (0,20) moving left", snake.GetHead(), snake.Head.Velocity)
	}

	g.Frame(100*time.Millisecond, types.Keys{})
	if snake.GetHead() != pt(-20, 20) {
		t.Errorf("head = %v, want (-20,20)", snake.GetHead())
	}
}

func TestFrameRejectsReversal(t *testing.T) {
	g := newTestGame(t, 1)
	g.PlaceFood(pt(100, 100))
	g.Session().Snake.Head.Velocity = types.Up

	g.Frame(100*time.Millisecond, types.Keys{Down: true})
	if got := g.Session().Snake.GetHead(); got != pt(0, 20) {
		t.Errorf("head = %v, reversal was applied", got)
	}
}

func TestRandomRunInvariants(t *testing.T) {
	g := newTestGame(t, 99)
	grid := g.Config().Grid
	rng := rand.New(rand.NewSource(5))

	var prevHead types.Point
	prevDir := types.None
	for frame := 0; frame < 20000; frame++ {
		var keys types.Keys
		switch rng.Intn(6) {
		case 0:
			keys.Up = true
		case 1:
			keys.Down = true
		case 2:
			keys.Left = true
		case 3:
			keys.Right = true
		}
		lenBefore := g.Session().Snake.Len()
		out, err := g.Frame(time.Duration(10+rng.Intn(30))*time.Millisecond, keys)
		if err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
		if !out.Ticked {
			continue
		}
		snake := g.Session().Snake
		if out.GameOver {
			prevDir = types.None
			prevHead = snake.GetHead()
			continue
		}

		if !grid.Contains(snake.GetHead()) {
			t.Fatalf("frame %d: head %v out of bounds", frame, snake.GetHead())
		}
		seen := make(map[types.Point]bool)
		for _, c := range snake.Cells() {
			if seen[c] {
				t.Fatalf("frame %d: cell %v occupied twice", frame, c)
			}
			seen[c] = true
		}
		for i, seg := range snake.Body {
			if seg.Index != uint(i) {
				t.Fatalf("frame %d: segment %d has index %d", frame, i, seg.Index)
			}
		}
		if !out.Grew && snake.Len() != lenBefore {
			t.Fatalf("frame %d: length changed without eating", frame)
		}
		if out.Grew && snake.Len() != lenBefore+1 {
			t.Fatalf("frame %d: grew by %d", frame, snake.Len()-lenBefore)
		}
		if food, ok := g.Food(); ok && snake.Occupies(food) && out.FoodSpawned {
			t.Fatalf("frame %d: food spawned on snake at %v", frame, food)
		}

		if out.Moved {
			dir := headingBetween(prevHead, snake.GetHead())
			if dir == prevDir.Opposite() && prevDir != types.None {
				t.Fatalf("frame %d: reversed from %v to %v", frame, prevDir, dir)
			}
			prevDir = dir
		}
		prevHead = snake.GetHead()
	}
}

func headingBetween(from, to types.Point) types.Heading {
	switch {
	case to.Y > from.Y:
		return types.Up
	case to.Y < from.Y:
		return types.Down
	case to.X < from.X:
		return types.Left
	case to.X > from.X:
		return types.Right
	default:
		return types.None
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, 12345)
	g2 := newTestGame(t, 12345)
	rng := rand.New(rand.NewSource(8))

	for frame := 0; frame < 5000; frame++ {
		keys := types.Keys{
			Up:    rng.Intn(5) == 0,
			Down:  rng.Intn(5) == 0,
			Left:  rng.Intn(5) == 0,
			Right: rng.Intn(5) == 0,
		}
		dt := time.Duration(rng.Intn(40)) * time.Millisecond
		o1, _ := g1.Frame(dt, keys)
		o2, _ := g2.Frame(dt, keys)
		if o1 != o2 {
			t.Fatalf("frame %d: outcomes differ: %+v vs %+v", frame, o1, o2)
		}

		s1, s2 := g1.Snapshot(), g2.Snapshot()
		if s1.Head != s2.Head || s1.Food != s2.Food || s1.Score != s2.Score || len(s1.Body) != len(s2.Body) {
			t.Fatalf("frame %d: snapshots differ: %+v vs %+v", frame, s1, s2)
		}
		for i := range s1.Body {
			if s1.Body[i] != s2.Body[i] {
				t.Fatalf("frame %d: segment %d differs", frame, i)
			}
		}
	}
}

func TestMissingFoodRespawnsOnTick(t *testing.T) {
	g := newTestGame(t, 1)
	g.RemoveFood()
	if _, ok := g.Food(); ok {
		t.Fatal("food still present")
	}
	out, err := g.Tick()
	if err != nil {
		t.Fatal(err)
	}
	food, ok := g.Food()
	if !out.FoodSpawned || !ok || g.Session().Snake.Occupies(food) {
		t.Errorf("food not respawned: %+v %v %v", out, food, ok)
	}
}

func TestBoardFull(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid = types.Grid{CellSize: 20, HalfWidth: 10, HalfHeight: 10}
	g, err := NewGame(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.Food(); ok {
		t.Fatal("food placed on a single-cell board")
	}
	out, err := g.Tick()
	if err != nil {
		t.Fatalf("board full escaped as error: %v", err)
	}
	if !out.BoardFull || !g.Snapshot().BoardFull {
		t.Errorf("board full not reported: %+v", out)
	}
}

func TestNoHead(t *testing.T) {
	var g Game
	if _, err := g.Frame(time.Second, types.Keys{Up: true}); !errors.Is(err, ErrNoHead) {
		t.Errorf("Frame err = %v", err)
	}
	if _, err := g.Tick(); !errors.Is(err, ErrNoHead) {
		t.Errorf("Tick err = %v", err)
	}
	if snap := g.Snapshot(); snap.Score != 0 || snap.HasFood || len(snap.Body) != 0 {
		t.Errorf("snapshot without a session = %+v", snap)
	}
	if g.Score() != 0 || g.ScoreText() != "Score: 0" || g.Resets() != 0 {
		t.Error("score readers without a session")
	}
	g.Draw(&countingRenderer{})
}

func TestResetOntoFoodEats(t *testing.T) {
	g := newTestGame(t, 1)
	sink := &recordingSink{}
	g.SetScoreSink(sink)
	g.PlaceFood(pt(0, 0))

	snake := g.Session().Snake
	snake.Head.Position = pt(200, 0)
	snake.Head.Velocity = types.Right
	if out, err := g.Tick(); err != nil || !out.GameOver {
		t.Fatalf("crash tick = %+v, %v", out, err)
	}
	if food, ok := g.Food(); !ok || food != pt(0, 0) {
		t.Fatalf("food moved on reset: %v %v", food, ok)
	}

	// The fresh snake is idle on the food.
	out, err := g.Tick()
	if err != nil {
		t.Fatal(err)
	}
	if !out.Ate || out.Moved || out.Grew || out.Score != 1 {
		t.Fatalf("idle tick on food = %+v", out)
	}
	if !out.FoodSpawned {
		t.Error("food not respawned after eating")
	}
	fresh := g.Session().Snake
	if food, ok := g.Food(); !ok || fresh.Occupies(food) {
		t.Errorf("respawned food %v on the snake", food)
	}
	if fresh.Len() != 0 || fresh.Owed != 1 {
		t.Fatalf("len=%d owed=%d, want segment owed until the first move", fresh.Len(), fresh.Owed)
	}
	if sink.last() != "Score: 1" {
		t.Errorf("score text = %q", sink.last())
	}

	g.PlaceFood(pt(-200, -200))
	fresh.Head.Velocity = types.Up
	out, err = g.Tick()
	if err != nil {
		t.Fatal(err)
	}
	if !out.Grew || fresh.Len() != 1 || fresh.Body[0].Position != pt(0, 0) || fresh.Owed != 0 {
		t.Errorf("first move after idle eat: out=%+v body=%+v owed=%d", out, fresh.Body, fresh.Owed)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tick", func(c *Config) { c.TickPeriod = 0 }},
		{"bad cell", func(c *Config) { c.Grid.CellSize = -1 }},
		{"spawn outside", func(c *Config) { c.Spawn = pt(400, 0) }},
		{"spawn misaligned", func(c *Config) { c.Spawn = pt(5, 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := NewGame(cfg); err == nil {
				t.Error("invalid config accepted")
			}
		})
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	g := newTestGame(t, 1)
	g.Session().Snake.Grow(pt(0, -20))
	snap := g.Snapshot()
	snap.Body[0] = pt(999, 999)
	if g.Session().Snake.Body[0].Position != pt(0, -20) {
		t.Error("snapshot body aliases the live snake")
	}
}

type countingRenderer struct {
	n    int
	last Snapshot
}

func (r *countingRenderer) Render(s Snapshot) {
	r.n++
	r.last = s
}

func TestRenderersFanOut(t *testing.T) {
	g := newTestGame(t, 1)
	a, b := &countingRenderer{}, &countingRenderer{}
	g.Draw(Renderers{a, b})
	if a.n != 1 || b.n != 1 {
		t.Errorf("render counts %d, %d", a.n, b.n)
	}
	if a.last.SessionID != g.Session().ID.String() {
		t.Error("wrong session in snapshot")
	}
}
