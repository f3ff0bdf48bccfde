// internal/state/menu_state.go
package state

import (
	game "go-base-defense/internal/app"
	"go-base-defense/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MenuState — стартовый экран.
type MenuState struct {
	sm   *StateMachine
	game *game.Game
}

func NewMenuState(sm *StateMachine, g *game.Game) *MenuState {
	return &MenuState{sm: sm, game: g}
}

func (m *MenuState) Enter() {
	// Ничего не делаем при входе
}

func (m *MenuState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		m.sm.SetState(NewGameState(m.sm, m.game))
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	w := int(m.game.Settings.Viewport.Width)
	h := int(m.game.Settings.Viewport.Height)
	ebitenutil.DebugPrintAt(screen, "BASE DEFENSE", w/2-36, h/2-20)
	ebitenutil.DebugPrintAt(screen, "press SPACE to start", w/2-60, h/2)
}

func (m *MenuState) Exit() {
	// Ничего не делаем при выходе
}
