// internal/app/game.go
package app

import (
	"fmt"
	"math"

	"go-base-defense/internal/config"
	"go-base-defense/internal/event"
	"go-base-defense/internal/sim"
	"go-base-defense/internal/system"
	"go-base-defense/internal/types"
	"go-base-defense/internal/utils"
)

var speedLevels = []float64{1, 2, 4}

// Game — корневой объект симуляции: владеет реестром, структурой и
// всеми системами, задает порядок тика. Библиотеки определений должны
// быть загружены до создания Game.
type Game struct {
	Settings   config.Settings
	Dispatcher *event.Dispatcher
	Rng        *utils.PRNGService
	Registry   *sim.Registry

	Structure   *sim.Object
	Effects     *system.StatusEffectSystem
	Projectiles *system.ProjectileSystem
	Combat      *system.CombatEngine
	Director    *system.WaveDirector

	paused     bool
	gameOver   bool
	speedIndex int
}

// NewGame собирает симуляцию по настройкам. Ошибки здесь — ошибки
// конфигурации, для вызывающего они фатальны.
func NewGame(settings config.Settings) (*Game, error) {
	mode, err := types.ParseTargetingMode(settings.Combat.TargetingMode)
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}

	dispatcher := event.NewDispatcher()
	rng := utils.NewPRNGService(settings.Seed)

	registry := sim.NewRegistry(map[types.Kind]sim.PoolConfig{
		types.KindAgent: {
			InitialSize:  config.AgentPoolInitial,
			MaxSize:      config.AgentPoolMax,
			GrowthFactor: config.PoolGrowthFactor,
		},
		types.KindProjectile: {
			InitialSize:  config.ProjectilePoolInitial,
			MaxSize:      config.ProjectilePoolMax,
			GrowthFactor: config.PoolGrowthFactor,
		},
	}, config.SpatialCellSize)
	registry.MustHavePools(types.KindAgent, types.KindProjectile)

	w := settings.Viewport.Width
	h := settings.Viewport.Height
	structure := registry.CreateUnpooled(sim.InitData{
		Kind:   types.KindStructure,
		X:      w / 2,
		Y:      h / 2,
		Health: config.StructureHealth,
		Radius: config.StructureRadius,
	})

	g := &Game{
		Settings:   settings,
		Dispatcher: dispatcher,
		Rng:        rng,
		Registry:   registry,
		Structure:  structure,
	}

	structure.OnDamage(func(o *sim.Object, amount float64, source string) {
		remaining := math.Max(0, o.Health-amount)
		dispatcher.Dispatch(event.Event{
			Type: event.StructureDamaged,
			Data: event.StructureDamagedData{Remaining: remaining},
		})
	})
	structure.OnDestroy(func(o *sim.Object) {
		g.gameOver = true
		dispatcher.Dispatch(event.Event{Type: event.StructureDestroyed})
	})

	g.Effects = system.NewStatusEffectSystem()
	g.Projectiles = system.NewProjectileSystem(registry, dispatcher, g.Effects)
	g.Combat = system.NewCombatEngine(registry, dispatcher, g.Effects, g.Projectiles, structure, mode)
	g.Director = system.NewWaveDirector(registry, dispatcher, rng,
		system.DefaultWaveTuning(), w, h, structure)

	for _, id := range settings.Combat.StartingWeapons {
		if err := g.Combat.ActivateWeapon(id); err != nil {
			return nil, fmt.Errorf("settings: starting weapon: %w", err)
		}
	}

	return g, nil
}

// Update — один тик симуляции. Порядок фиксирован: спавн волны, оружие,
// эффекты, снаряды, общий проход обновления, уплотнение пулов. Снаряды
// в общем проходе пропускаются — ими владеет своя система.
func (g *Game) Update(dt float64) {
	if g.paused || g.gameOver {
		return
	}
	if dt > config.MaxDeltaTime {
		dt = config.MaxDeltaTime
	}
	dt *= speedLevels[g.speedIndex]

	g.Director.Update(dt)
	g.Combat.Update(dt)
	g.Effects.Update(dt)
	g.Projectiles.Update(dt)
	g.Registry.Update(dt, types.KindProjectile)
	g.Registry.EndTick()
}

// StartWaves запускает волны из простоя.
func (g *Game) StartWaves() { g.Director.StartWaves() }

// StopWaves останавливает волны и убирает всех агентов с поля.
func (g *Game) StopWaves() { g.Director.Stop() }

// Pause замораживает симуляцию.
func (g *Game) Pause() {
	g.paused = true
	g.Director.Pause()
}

// Resume снимает паузу.
func (g *Game) Resume() {
	g.paused = false
	g.Director.Resume()
}

// Paused сообщает, стоит ли симуляция на паузе.
func (g *Game) Paused() bool { return g.paused }

// GameOver сообщает, уничтожена ли структура.
func (g *Game) GameOver() bool { return g.gameOver }

// StrikeAt — удар игрока по точке поля.
func (g *Game) StrikeAt(x, y float64) {
	if g.paused || g.gameOver {
		return
	}
	g.Combat.StrikeAt(x, y)
}

// CycleSpeed переключает множитель скорости x1 → x2 → x4 → x1.
func (g *Game) CycleSpeed() {
	g.speedIndex = (g.speedIndex + 1) % len(speedLevels)
}

// SpeedIndex возвращает индекс текущего множителя скорости.
func (g *Game) SpeedIndex() int { return g.speedIndex }

// Speed возвращает текущий множитель скорости.
func (g *Game) Speed() float64 { return speedLevels[g.speedIndex] }
