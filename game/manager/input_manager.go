package manager

import (
	"gridsnake/game/types"
)

// InputManager turns held key state into heading changes. It lets one
// change through per tick interval and buffers the latest further change
// until the next tick boundary.
type InputManager struct {
	pending types.Heading
	// turned is set once a change was applied in the current interval.
	turned bool
}

func NewInputManager() *InputManager {
	return &InputManager{}
}

// Candidate returns the heading requested by keys relative to current.
// The first held key in Up, Down, Left, Right order decides; a reversal
// yields None.
func Candidate(keys types.Keys, current types.Heading) types.Heading {
	var want types.Heading
	switch {
	case keys.Up:
		want = types.Up
	case keys.Down:
		want = types.Down
	case keys.Left:
		want = types.Left
	case keys.Right:
		want = types.Right
	default:
		return types.None
	}
	if want.Reverses(current) {
		return types.None
	}
	return want
}

// Sample is called once per frame and returns the velocity to use.
func (im *InputManager) Sample(keys types.Keys, current types.Heading) types.Heading {
	want := Candidate(keys, current)
	if want == types.None {
		return current
	}
	if want == current {
		// Asking for the heading already taken cancels a buffered turn.
		if im.turned {
			im.pending = types.None
		}
		return current
	}
	if !im.turned {
		im.turned = true
		return want
	}
	// Replaces any earlier buffered change.
	im.pending = want
	return current
}

// Consume runs at the tick boundary after the snake has moved with
// current. A buffered change becomes the next interval's turn.
func (im *InputManager) Consume(current types.Heading) types.Heading {
	im.turned = false
	next := im.pending
	im.pending = types.None
	if next == types.None || next == current || next.Reverses(current) {
		return current
	}
	im.turned = true
	return next
}

// Pending returns the buffered heading, None when empty.
func (im *InputManager) Pending() types.Heading {
	return im.pending
}
