package scene

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type jump uint8

const (
	jumpNone jump = iota
	jumpPageDown
	jumpPageUp
	jumpHome
	jumpEnd
)

// input is the scroll input of one tick.
type input struct {
	wheel float64 // wheel notches, positive scrolls up
	lines float64 // held arrow keys, positive scrolls down
	jump  jump

	screenshot bool
}

// readInput polls the wheel, the scrolling keys and F12 for a screenshot.
func readInput() input {
	var in input
	_, in.wheel = ebiten.Wheel()
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.lines++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.lines--
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		in.jump = jumpPageDown
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		in.jump = jumpPageUp
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		in.jump = jumpHome
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		in.jump = jumpEnd
	}
	in.screenshot = inpututil.IsKeyJustPressed(ebiten.KeyF12)
	return in
}
