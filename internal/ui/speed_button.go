// internal/ui/speed_button.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// SpeedButton — кнопка множителя скорости x1/x2/x4. Текущее состояние
// кодируется цветом из StateColors.
type SpeedButton struct {
	X, Y           float32
	Size           float32
	LastClickTime  time.Time
	LastToggleTime time.Time
	StateColors    []color.Color
	CurrentState   int
}

func NewSpeedButton(x, y, size float32, stateColors []color.Color) *SpeedButton {
	return &SpeedButton{
		X:           x,
		Y:           y,
		Size:        size,
		StateColors: stateColors,
	}
}

// Draw рисует двойной шеврон "перемотки" цветом текущего состояния.
func (b *SpeedButton) Draw(screen *ebiten.Image) {
	elapsed := time.Since(b.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	size := b.Size * float32(scale)

	clr := b.StateColors[b.CurrentState%len(b.StateColors)]
	height := size * 1.2
	offset := size * 0.8

	chevron := func(x float32) {
		vector.StrokeLine(screen, x-size, b.Y-height/2, x, b.Y, 3, clr, true)
		vector.StrokeLine(screen, x, b.Y, x-size, b.Y+height/2, 3, clr, true)
	}
	chevron(b.X)
	chevron(b.X + offset)
}

// Contains проверяет попадание; зона шире видимой формы.
func (b *SpeedButton) Contains(mx, my float32) bool {
	dx := mx - b.X
	dy := my - b.Y
	r := b.Size * 1.5
	return dx*dx+dy*dy <= r*r
}

// Toggle переключает состояние по кругу.
func (b *SpeedButton) Toggle() {
	b.CurrentState = (b.CurrentState + 1) % len(b.StateColors)
	b.LastClickTime = time.Now()
	b.LastToggleTime = time.Now()
}
