package types

import (
	"fmt"
	"math"
)

// Point is a position in world coordinates. Every entity position is an
// integer multiple of the grid cell size, so exact comparison is safe.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p moved by h scaled to one cell.
func (p Point) Add(h Heading, cellSize float64) Point {
	v := h.Vector()
	return Point{X: p.X + v.X*cellSize, Y: p.Y + v.Y*cellSize}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Heading is the direction the head travels in. None means zero velocity.
type Heading int

const (
	None Heading = iota
	Up
	Down
	Left
	Right
)

// Vector returns the unit grid vector for the heading. Up is +Y.
func (h Heading) Vector() Point {
	switch h {
	case Up:
		return Point{X: 0, Y: 1}
	case Down:
		return Point{X: 0, Y: -1}
	case Left:
		return Point{X: -1, Y: 0}
	case Right:
		return Point{X: 1, Y: 0}
	default:
		return Point{}
	}
}

// Opposite returns the 180 degree reverse of h. None has no opposite.
func (h Heading) Opposite() Heading {
	switch h {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

// Reverses reports whether turning from current to h would reverse the snake.
func (h Heading) Reverses(current Heading) bool {
	return h != None && h == current.Opposite()
}

func (h Heading) String() string {
	switch h {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

func (h Heading) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Heading) UnmarshalText(text []byte) error {
	parsed, err := ParseHeading(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseHeading is the inverse of Heading.String.
func ParseHeading(s string) (Heading, error) {
	for h := None; h <= Right; h++ {
		if h.String() == s {
			return h, nil
		}
	}
	return None, fmt.Errorf("unknown heading %q", s)
}

// Keys is the raw held state of the four direction keys for one frame.
type Keys struct {
	Up, Down, Left, Right bool
}

// Grid is the immutable world configuration.
type Grid struct {
	CellSize   float64 `json:"cellSize"`
	HalfWidth  float64 `json:"halfWidth"`
	HalfHeight float64 `json:"halfHeight"`
}

// Grid defaults match a 420x420 viewport with 20px cells.
const (
	DefaultCellSize   = 20.0
	DefaultHalfWidth  = 210.0
	DefaultHalfHeight = 210.0
)

// DefaultGrid returns the standard 21x21 cell board.
func DefaultGrid() Grid {
	return Grid{
		CellSize:   DefaultCellSize,
		HalfWidth:  DefaultHalfWidth,
		HalfHeight: DefaultHalfHeight,
	}
}

// Validate checks the grid can hold at least one cell.
func (g Grid) Validate() error {
	if g.CellSize <= 0 {
		return fmt.Errorf("cell size must be positive, got %g", g.CellSize)
	}
	if g.HalfWidth < 0 || g.HalfHeight < 0 {
		return fmt.Errorf("half extents must not be negative, got %gx%g", g.HalfWidth, g.HalfHeight)
	}
	return nil
}

// CellsX returns n such that valid column indices are [-n, n].
func (g Grid) CellsX() int {
	return int(math.Floor(g.HalfWidth / g.CellSize))
}

// CellsY returns n such that valid row indices are [-n, n].
func (g Grid) CellsY() int {
	return int(math.Floor(g.HalfHeight / g.CellSize))
}

// Capacity is the number of cells on the board.
func (g Grid) Capacity() int {
	return (2*g.CellsX() + 1) * (2*g.CellsY() + 1)
}

// CellToWorld converts integer cell indices to a world position.
func (g Grid) CellToWorld(cx, cy int) Point {
	return Point{X: float64(cx) * g.CellSize, Y: float64(cy) * g.CellSize}
}

// WorldToCell converts a grid-aligned world position to cell indices.
func (g Grid) WorldToCell(p Point) (int, int) {
	return int(math.Round(p.X / g.CellSize)), int(math.Round(p.Y / g.CellSize))
}

// Contains reports whether p lies within the half extents.
func (g Grid) Contains(p Point) bool {
	return p.X <= g.HalfWidth && p.X >= -g.HalfWidth &&
		p.Y <= g.HalfHeight && p.Y >= -g.HalfHeight
}
