package entity

import (
	"gridsnake/game/types"
)

// Head is the controllable front of the snake. Score lives on the head.
type Head struct {
	Position types.Point
	Velocity types.Heading
	Score    uint
}

// Segment is one body cell. Index 0 is nearest the head.
type Segment struct {
	Index    uint
	Position types.Point
}

type Snake struct {
	Head Head
	// Body is ordered by Index and Body[i].Index == i.
	Body []Segment
	// Owed counts segments earned but not yet appended.
	Owed uint
}

func NewSnake(spawn types.Point) *Snake {
	return &Snake{
		Head: Head{Position: spawn},
		Body: make([]Segment, 0),
	}
}

// Advance moves the head one cell along its velocity and shifts every
// segment into the cell its predecessor occupied before the move.
// It returns the cell vacated at the end of the chain.
func (s *Snake) Advance(cellSize float64) types.Point {
	oldHead := s.Head.Position
	s.Head.Position = oldHead.Add(s.Head.Velocity, cellSize)

	if len(s.Body) == 0 {
		return oldHead
	}

	// Capture every pre-move position before writing any of them.
	before := make([]types.Point, len(s.Body))
	for _, seg := range s.Body {
		before[seg.Index] = seg.Position
	}

	for i := range s.Body {
		if s.Body[i].Index == 0 {
			s.Body[i].Position = oldHead
		} else {
			s.Body[i].Position = before[s.Body[i].Index-1]
		}
	}

	return before[len(before)-1]
}

// Grow appends one segment at pos with the next index.
func (s *Snake) Grow(pos types.Point) Segment {
	seg := Segment{Index: uint(len(s.Body)), Position: pos}
	s.Body = append(s.Body, seg)
	return seg
}

func (s *Snake) GetHead() types.Point {
	return s.Head.Position
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// BodyContains reports whether any segment sits on p.
func (s *Snake) BodyContains(p types.Point) bool {
	for _, seg := range s.Body {
		if seg.Position == p {
			return true
		}
	}
	return false
}

// Occupies reports whether the head or any segment sits on p.
func (s *Snake) Occupies(p types.Point) bool {
	return s.Head.Position == p || s.BodyContains(p)
}

// Cells returns the head followed by every segment position in index order.
func (s *Snake) Cells() []types.Point {
	cells := make([]types.Point, 0, len(s.Body)+1)
	cells = append(cells, s.Head.Position)
	for _, seg := range s.Body {
		cells = append(cells, seg.Position)
	}
	return cells
}
