// internal/state/game_state.go
package state

import (
	"fmt"
	"time"

	game "go-base-defense/internal/app"
	"go-base-defense/internal/config"
	"go-base-defense/internal/system"
	"go-base-defense/internal/types"
	"go-base-defense/internal/ui"
	"go-base-defense/pkg/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const clickCooldown = 200 * time.Millisecond

// strikeFlashTime — сколько секунд держится отметка удара игрока.
const strikeFlashTime = 0.25

// GameState — основное игровое состояние: ввод, симуляция, отрисовка.
type GameState struct {
	sm   *StateMachine
	game *game.Game

	renderer      *render.Renderer
	indicator     *ui.StateIndicator
	waveIndicator *ui.WaveIndicator
	pauseButton   *ui.PauseButton
	speedButton   *ui.SpeedButton
	healthBar     *ui.HealthBar

	strikeX, strikeY float64
	strikeTimer      float64
}

func NewGameState(sm *StateMachine, g *game.Game) *GameState {
	w := int(g.Settings.Viewport.Width)
	h := int(g.Settings.Viewport.Height)

	return &GameState{
		sm:       sm,
		game:     g,
		renderer: render.NewRenderer(w, h),
		indicator: ui.NewStateIndicator(
			float32(w-config.IndicatorOffsetX),
			float32(config.IndicatorOffsetX),
			float32(config.IndicatorRadius),
		),
		waveIndicator: ui.NewWaveIndicator(w/2, 12),
		pauseButton: ui.NewPauseButton(
			float32(w-2*config.IndicatorOffsetX-20),
			float32(config.SpeedButtonY),
			float32(config.SpeedButtonSize)*0.5,
			config.TextLightColor, config.StructureColor,
		),
		speedButton: ui.NewSpeedButton(
			float32(w-3*config.IndicatorOffsetX-40),
			float32(config.SpeedButtonY),
			float32(config.SpeedButtonSize)*0.7,
			config.SpeedButtonColors,
		),
		healthBar: ui.NewHealthBar(float32(w)/2-150, float32(h)-24, 300, 10),
	}
}

func (g *GameState) Enter() {
	g.game.Resume()
	g.pauseButton.SetPaused(false)
}

func (g *GameState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.sm.SetState(NewPauseState(g.sm, g))
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.game.Director.State() == system.DirectorIdle {
			g.game.StartWaves()
			g.indicator.HandleClick()
		}
	}
	g.handleModeKeys()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if !g.handleUIClick(float32(x), float32(y)) {
			g.game.StrikeAt(float64(x), float64(y))
			g.strikeX, g.strikeY = float64(x), float64(y)
			g.strikeTimer = strikeFlashTime
		}
	}

	g.game.Update(deltaTime)
	if g.strikeTimer > 0 {
		g.strikeTimer -= deltaTime
	}
}

// handleModeKeys — горячие клавиши политики выбора цели.
func (g *GameState) handleModeKeys() {
	modes := map[ebiten.Key]types.TargetingMode{
		ebiten.Key1: types.TargetNearest,
		ebiten.Key2: types.TargetFurthest,
		ebiten.Key3: types.TargetWeakest,
		ebiten.Key4: types.TargetStrongest,
		ebiten.Key5: types.TargetFastest,
		ebiten.Key6: types.TargetSlowest,
	}
	for key, mode := range modes {
		if inpututil.IsKeyJustPressed(key) {
			g.game.Combat.SetTargetingMode(mode)
		}
	}
}

// handleUIClick возвращает true, если клик пришелся на элемент UI.
func (g *GameState) handleUIClick(mx, my float32) bool {
	switch {
	case g.indicator.Contains(mx, my):
		if g.game.Director.State() == system.DirectorIdle {
			g.game.StartWaves()
		} else {
			g.game.StopWaves()
		}
		g.indicator.HandleClick()
	case g.pauseButton.Contains(mx, my):
		if time.Since(g.pauseButton.LastToggleTime) >= clickCooldown {
			g.sm.SetState(NewPauseState(g.sm, g))
		}
	case g.speedButton.Contains(mx, my):
		if time.Since(g.speedButton.LastToggleTime) >= clickCooldown {
			g.game.CycleSpeed()
			g.speedButton.Toggle()
		}
	default:
		return false
	}
	return true
}

func (g *GameState) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.game.Registry, g.game.Structure, g.game.Effects)

	if g.strikeTimer > 0 {
		vector.DrawFilledCircle(screen,
			float32(g.strikeX), float32(g.strikeY), config.StrikeRadius,
			config.StrikeColor, true)
	}

	stateColor := config.IdleStateColor
	if g.game.Director.State() != system.DirectorIdle {
		stateColor = config.WaveStateColor
	}
	g.indicator.Draw(screen, stateColor)
	g.waveIndicator.Draw(screen, g.game.Director.WaveNumber())
	g.speedButton.Draw(screen)
	g.pauseButton.Draw(screen)
	g.healthBar.Draw(screen, g.game.Structure.Health/config.StructureHealth)

	ws := g.game.Director.Stats()
	cs := g.game.Combat.Stats()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"wave %d [%s]  left %d  kills %d  mode %s  x%.0f\nshots %d  hits %d  dmg %.0f",
		ws.Wave, ws.State, ws.Remaining, ws.TotalKills,
		g.game.Combat.Mode(), g.game.Speed(),
		cs.ShotsFired, cs.Hits, cs.DamageDealt))

	if g.game.GameOver() {
		ebitenutil.DebugPrintAt(screen, "STRUCTURE DESTROYED",
			g.renderer.Width/2-60, g.renderer.Height/2)
	}
}

func (g *GameState) Exit() {
	// Ничего не делаем при выходе
}
