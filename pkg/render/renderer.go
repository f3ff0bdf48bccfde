// pkg/render/renderer.go
package render

import (
	"image/color"

	"go-base-defense/internal/config"
	"go-base-defense/internal/sim"
	"go-base-defense/internal/system"
	"go-base-defense/internal/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Renderer — отладочный рендерер поля: структура, агенты и снаряды
// рисуются примитивами, цвета приходят из определений через Tint.
type Renderer struct {
	Width, Height int
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{Width: width, Height: height}
}

// Draw отрисовывает кадр мира.
func (r *Renderer) Draw(screen *ebiten.Image, reg *sim.Registry, structure *sim.Object, effects *system.StatusEffectSystem) {
	screen.Fill(config.BackgroundColor)

	if structure != nil && structure.Active {
		vector.DrawFilledCircle(screen,
			float32(structure.X), float32(structure.Y), float32(structure.Radius),
			config.StructureColor, true)
		vector.StrokeCircle(screen,
			float32(structure.X), float32(structure.Y), float32(structure.Radius),
			2, config.TextLightColor, true)
	}

	for _, o := range reg.ByKind(types.KindAgent) {
		clr := tintColor(o, color.RGBA{200, 60, 60, 255})
		if !o.Targetable() {
			// Замаскированные агенты едва видны.
			clr.A = 60
		}
		vector.DrawFilledCircle(screen, float32(o.X), float32(o.Y), float32(o.Radius), clr, true)
		r.drawAgentHealth(screen, o)
		if effects != nil {
			if effects.Burning(o.ID) {
				vector.StrokeCircle(screen, float32(o.X), float32(o.Y),
					float32(o.Radius)+2, 1.5, color.RGBA{255, 140, 0, 255}, true)
			}
			if effects.Slowed(o.ID) {
				vector.StrokeCircle(screen, float32(o.X), float32(o.Y),
					float32(o.Radius)+4, 1.5, color.RGBA{80, 160, 255, 255}, true)
			}
		}
	}

	for _, o := range reg.ByKind(types.KindProjectile) {
		clr := tintColor(o, color.RGBA{240, 240, 240, 255})
		vector.DrawFilledCircle(screen, float32(o.X), float32(o.Y), float32(o.Radius), clr, true)
	}
}

// drawAgentHealth — тонкая полоска над агентом, только если он уже ранен.
func (r *Renderer) drawAgentHealth(screen *ebiten.Image, o *sim.Object) {
	if o.MaxHealth <= 0 || o.Health >= o.MaxHealth {
		return
	}
	frac := float32(o.Health / o.MaxHealth)
	w := float32(o.Radius) * 2
	x := float32(o.X) - w/2
	y := float32(o.Y) - float32(o.Radius) - 6
	vector.DrawFilledRect(screen, x, y, w, 3, color.RGBA{40, 40, 50, 255}, false)
	vector.DrawFilledRect(screen, x, y, w*frac, 3, color.RGBA{60, 220, 60, 255}, false)
}

func tintColor(o *sim.Object, fallback color.RGBA) color.RGBA {
	t := o.Tint
	if t == [4]uint8{} {
		return fallback
	}
	return color.RGBA{R: t[0], G: t[1], B: t[2], A: t[3]}
}
