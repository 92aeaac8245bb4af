package rlgfx

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Screen reports the current window size
type Screen struct{}

func (Screen) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}
