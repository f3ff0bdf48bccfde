// internal/ui/health_bar.go
package ui

import (
	"image/color"

	"go-base-defense/internal/utils"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HealthBar — полоса здоровья структуры внизу экрана.
type HealthBar struct {
	X, Y          float32
	Width, Height float32
}

func NewHealthBar(x, y, width, height float32) *HealthBar {
	return &HealthBar{X: x, Y: y, Width: width, Height: height}
}

// Draw отрисовывает полосу. fraction зажимается в [0, 1]; цвет уходит из
// зеленого в красный по мере потери здоровья.
func (h *HealthBar) Draw(screen *ebiten.Image, fraction float64) {
	fraction = utils.Clamp(fraction, 0, 1)

	vector.DrawFilledRect(screen, h.X, h.Y, h.Width, h.Height,
		color.RGBA{40, 40, 50, 255}, false)

	t := float32(fraction)
	fill := color.RGBA{
		R: uint8(utils.Lerp(220, 0, t)),
		G: uint8(utils.Lerp(0, 200, t)),
		B: 40,
		A: 255,
	}
	vector.DrawFilledRect(screen, h.X, h.Y, h.Width*float32(fraction), h.Height, fill, false)
	vector.StrokeRect(screen, h.X, h.Y, h.Width, h.Height, 1, color.White, false)
}
