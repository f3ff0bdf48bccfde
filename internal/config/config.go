// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	MaxDeltaTime = 0.06

	// Структура (база) в центре поля.
	StructureHealth = 500.0
	StructureRadius = 28.0

	// Снаряды.
	ProjectileRadius = 4.0
	HitTolerance     = 4.0 // допуск при засчитывании попадания, в пикселях

	// Цепная атака.
	ChainRadius  = 120.0
	ChainMaxHits = 5

	// Удар игрока по агентам.
	StrikeRadius = 40.0
	StrikeDamage = 60.0

	// Волны.
	BaseEnemyCount          = 6
	EnemiesIncrementPerWave = 2
	InitialSpawnDelay       = 0.9 // секунды между спавнами на первой волне
	MinSpawnDelay           = 0.25
	SpawnDelayDecrement     = 0.04 // на сколько быстрее каждая следующая волна
	NextWaveDelay           = 5.0
	SpawnMargin             = 30.0 // насколько за краем экрана появляются агенты
	StatJitter              = 0.05 // ±5% разброс здоровья и скорости

	// Пулы объектов.
	AgentPoolInitial      = 32
	AgentPoolMax          = 256
	ProjectilePoolInitial = 64
	ProjectilePoolMax     = 512
	PoolGrowthFactor      = 1.5

	// Широкая фаза поиска целей.
	SpatialCellSize = 64.0

	IndicatorOffsetX = 30
	IndicatorRadius  = 10.0
	SpeedButtonY     = 30
	SpeedButtonSize  = 18.0
)

var (
	BackgroundColor = color.RGBA{20, 20, 30, 255}
	StructureColor  = color.RGBA{50, 205, 50, 255}
	TextLightColor  = color.RGBA{240, 240, 240, 255}
	IndicatorStroke = color.RGBA{240, 240, 240, 255}
	WaveStateColor  = color.RGBA{220, 60, 60, 220}
	IdleStateColor  = color.RGBA{70, 130, 180, 220}
	StrikeColor     = color.RGBA{255, 255, 0, 128}

	SpeedButtonColors = []color.Color{
		color.RGBA{70, 130, 180, 220},  // x1
		color.RGBA{220, 60, 60, 220},   // x2
		color.RGBA{194, 178, 128, 255}, // x4
	}
)
