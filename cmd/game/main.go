// cmd/game/main.go
package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	game "go-base-defense/internal/app"
	"go-base-defense/internal/config"
	"go-base-defense/internal/defs"
	"go-base-defense/internal/state"

	"github.com/hajimehoshi/ebiten/v2"
)

const startFromGame = false // true — начинать сразу с игры, false — с меню

type App struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *App) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	go func() {
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()

	settings, err := config.LoadSettings("settings.yaml")
	if err != nil {
		log.Fatalf("settings: %v", err)
	}

	// Библиотеки определений. Любая ошибка здесь — сломанная конфигурация,
	// стартовать с ней нельзя.
	if err := defs.LoadAgentDefinitions(settings.Data.Agents); err != nil {
		log.Fatalf("agent definitions: %v", err)
	}
	if err := defs.LoadWeaponDefinitions(settings.Data.Weapons); err != nil {
		log.Fatalf("weapon definitions: %v", err)
	}

	g, err := game.NewGame(settings)
	if err != nil {
		log.Fatalf("game setup: %v", err)
	}

	sm := state.NewStateMachine()
	if startFromGame {
		sm.SetState(state.NewGameState(sm, g))
	} else {
		sm.SetState(state.NewMenuState(sm, g))
	}

	app := &App{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(int(settings.Viewport.Width), int(settings.Viewport.Height))
	ebiten.SetWindowTitle("Base Defense")
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
