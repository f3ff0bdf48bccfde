// internal/state/pause_state.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PauseState — пауза поверх игрового состояния: симуляция заморожена,
// поле продолжает отрисовываться.
type PauseState struct {
	sm   *StateMachine
	prev *GameState
}

func NewPauseState(sm *StateMachine, prev *GameState) *PauseState {
	return &PauseState{sm: sm, prev: prev}
}

func (p *PauseState) Enter() {
	p.prev.game.Pause()
	p.prev.pauseButton.SetPaused(true)
}

func (p *PauseState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) ||
		inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		p.sm.SetState(p.prev)
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if p.prev.pauseButton.Contains(float32(x), float32(y)) {
			p.sm.SetState(p.prev)
		}
	}
}

func (p *PauseState) Draw(screen *ebiten.Image) {
	p.prev.Draw(screen)
	ebitenutil.DebugPrintAt(screen, "PAUSED",
		p.prev.renderer.Width/2-18, p.prev.renderer.Height/2-40)
}

func (p *PauseState) Exit() {
	// Resume происходит в GameState.Enter
}
