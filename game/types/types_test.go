package types

import (
	"encoding/json"
	"testing"
)

func TestHeadingOpposite(t *testing.T) {
	tests := []struct {
		h, want Heading
	}{
		{Up, Down},
		{Down, Up},
		{Left, Right},
		{Right, Left},
		{None, None},
	}
	for _, tt := range tests {
		if got := tt.h.Opposite(); got != tt.want {
			t.Errorf("%v.Opposite() = %v, want %v", tt.h, got, tt.want)
		}
	}
}

func TestHeadingReverses(t *testing.T) {
	if !Left.Reverses(Right) {
		t.Error("Left should reverse Right")
	}
	if Up.Reverses(Left) {
		t.Error("Up should not reverse Left")
	}
	if Up.Reverses(None) {
		t.Error("nothing reverses an idle snake")
	}
	if None.Reverses(None) {
		t.Error("None never reverses")
	}
}

func TestPointAdd(t *testing.T) {
	p := Point{X: 20, Y: -40}
	if got := p.Add(Up, 20); got != (Point{X: 20, Y: -20}) {
		t.Errorf("Up: got %v", got)
	}
	if got := p.Add(Left, 20); got != (Point{X: 0, Y: -40}) {
		t.Errorf("Left: got %v", got)
	}
	if got := p.Add(None, 20); got != p {
		t.Errorf("None moved the point to %v", got)
	}
}

func TestDefaultGrid(t *testing.T) {
	g := DefaultGrid()
	if err := g.Validate(); err != nil {
		t.Fatalf("default grid invalid: %v", err)
	}
	if g.CellsX() != 10 || g.CellsY() != 10 {
		t.Errorf("cells = %d x %d, want 10 x 10", g.CellsX(), g.CellsY())
	}
	if g.Capacity() != 441 {
		t.Errorf("capacity = %d, want 441", g.Capacity())
	}
}

func TestGridContains(t *testing.T) {
	g := DefaultGrid()
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{0, 0}, true},
		{Point{200, -200}, true},
		{Point{210, 0}, true},
		{Point{220, 0}, false},
		{Point{0, -220}, false},
	}
	for _, tt := range tests {
		if got := g.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestGridCellConversion(t *testing.T) {
	g := DefaultGrid()
	p := g.CellToWorld(-3, 7)
	if p != (Point{X: -60, Y: 140}) {
		t.Fatalf("CellToWorld = %v", p)
	}
	cx, cy := g.WorldToCell(p)
	if cx != -3 || cy != 7 {
		t.Errorf("WorldToCell = %d,%d", cx, cy)
	}
}

func TestGridValidate(t *testing.T) {
	if err := (Grid{CellSize: 0, HalfWidth: 10, HalfHeight: 10}).Validate(); err == nil {
		t.Error("zero cell size accepted")
	}
	if err := (Grid{CellSize: 1, HalfWidth: -1, HalfHeight: 10}).Validate(); err == nil {
		t.Error("negative half width accepted")
	}
}

func TestHeadingJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		H Heading `json:"h"`
	}{Left})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"h":"left"}` {
		t.Errorf("got %s", data)
	}

	var h Heading
	if err := h.UnmarshalText([]byte("down")); err != nil || h != Down {
		t.Errorf("UnmarshalText(down) = %v, %v", h, err)
	}
	if err := h.UnmarshalText([]byte("sideways")); err == nil {
		t.Error("unknown heading accepted")
	}
}
