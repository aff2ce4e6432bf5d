package game

import (
	"flag"
	"fmt"
	"time"

	"gridsnake/game/types"
)

// DefaultTickPeriod is the fixed simulation step.
const DefaultTickPeriod = 100 * time.Millisecond

// DefaultHistoryLimit caps the in-memory score history.
const DefaultHistoryLimit = 100

type Config struct {
	Grid       types.Grid
	TickPeriod time.Duration
	// Spawn is where a fresh snake's head starts.
	Spawn types.Point
	// Seed drives food placement. Equal seeds give equal games.
	Seed         uint64
	HistoryLimit int
}

func DefaultConfig() Config {
	return Config{
		Grid:         types.DefaultGrid(),
		TickPeriod:   DefaultTickPeriod,
		Spawn:        types.Point{X: 0, Y: 0},
		Seed:         1,
		HistoryLimit: DefaultHistoryLimit,
	}
}

func (c Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("invalid grid: %w", err)
	}
	if c.TickPeriod <= 0 {
		return fmt.Errorf("tick period must be positive, got %v", c.TickPeriod)
	}
	if !c.Grid.Contains(c.Spawn) {
		return fmt.Errorf("spawn %v outside grid", c.Spawn)
	}
	cx, cy := c.Grid.WorldToCell(c.Spawn)
	if c.Grid.CellToWorld(cx, cy) != c.Spawn {
		return fmt.Errorf("spawn %v not aligned to %g cells", c.Spawn, c.Grid.CellSize)
	}
	return nil
}

// RegisterFlags binds the config fields to fs. The seed flag defaults to 0,
// which frontends replace with a clock-derived seed.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Float64Var(&c.Grid.CellSize, "cell", c.Grid.CellSize, "cell size in world units")
	fs.Float64Var(&c.Grid.HalfWidth, "half-width", c.Grid.HalfWidth, "half the board width in world units")
	fs.Float64Var(&c.Grid.HalfHeight, "half-height", c.Grid.HalfHeight, "half the board height in world units")
	fs.DurationVar(&c.TickPeriod, "tick", c.TickPeriod, "simulation step")
	fs.Uint64Var(&c.Seed, "seed", 0, "food placement seed (0 = from clock)")
	fs.IntVar(&c.HistoryLimit, "history", c.HistoryLimit, "finished games kept in the scoreboard")
}
