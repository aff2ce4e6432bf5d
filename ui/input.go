package ui

import (
	"gridsnake/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ReadKeys samples held direction keys. WASD and the arrow keys are
// equivalent.
func ReadKeys() types.Keys {
	return types.Keys{
		Up:    rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp),
		Down:  rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown),
		Left:  rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft),
		Right: rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight),
	}
}
