package term

import (
	"time"

	"gridsnake/game/types"

	"github.com/gdamore/tcell/v2"
)

// DefaultHold is how long a key press counts as held. Terminals report
// presses and repeats, never releases.
const DefaultHold = 150 * time.Millisecond

// KeyState turns terminal key events into held key state.
type KeyState struct {
	hold time.Duration
	// last press time per direction, indexed by types.Heading
	pressed [5]time.Time
}

func NewKeyState(hold time.Duration) *KeyState {
	return &KeyState{hold: hold}
}

// Handle records a key event at now. It reports false for keys that are
// not direction keys.
func (k *KeyState) Handle(ev *tcell.EventKey, now time.Time) bool {
	h := headingFor(ev)
	if h == types.None {
		return false
	}
	k.pressed[h] = now
	return true
}

// Keys returns the key state at now.
func (k *KeyState) Keys(now time.Time) types.Keys {
	held := func(h types.Heading) bool {
		t := k.pressed[h]
		return !t.IsZero() && now.Sub(t) < k.hold
	}
	return types.Keys{
		Up:    held(types.Up),
		Down:  held(types.Down),
		Left:  held(types.Left),
		Right: held(types.Right),
	}
}

func headingFor(ev *tcell.EventKey) types.Heading {
	switch ev.Key() {
	case tcell.KeyUp:
		return types.Up
	case tcell.KeyDown:
		return types.Down
	case tcell.KeyLeft:
		return types.Left
	case tcell.KeyRight:
		return types.Right
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return types.Up
		case 's', 'S':
			return types.Down
		case 'a', 'A':
			return types.Left
		case 'd', 'D':
			return types.Right
		}
	}
	return types.None
}
