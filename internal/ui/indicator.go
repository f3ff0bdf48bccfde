// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// StateIndicator — круглый индикатор состояния директора волн в углу
// экрана. Клик по нему запускает/останавливает волны.
type StateIndicator struct {
	X, Y          float32
	Radius        float32
	LastClickTime time.Time
}

func NewStateIndicator(x, y, radius float32) *StateIndicator {
	return &StateIndicator{
		X:      x,
		Y:      y,
		Radius: radius,
	}
}

// Draw отрисовывает индикатор с пульсацией после клика.
func (i *StateIndicator) Draw(screen *ebiten.Image, stateColor color.Color) {
	elapsed := time.Since(i.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	currentRadius := i.Radius * float32(scale)

	vector.DrawFilledCircle(screen, i.X, i.Y, currentRadius, stateColor, true)
	vector.StrokeCircle(screen, i.X, i.Y, currentRadius, 1.5, color.White, true)
}

// Contains проверяет, лежит ли точка внутри индикатора.
func (i *StateIndicator) Contains(mx, my float32) bool {
	dx := mx - i.X
	dy := my - i.Y
	return dx*dx+dy*dy <= i.Radius*i.Radius
}

// HandleClick запускает анимацию пульса.
func (i *StateIndicator) HandleClick() {
	i.LastClickTime = time.Now()
}
