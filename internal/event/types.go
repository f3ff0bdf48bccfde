// internal/event/types.go
package event

import "go-base-defense/internal/types"

const (
	WaveStarted        EventType = "WaveStarted"        // Волна началась
	WaveCompleted      EventType = "WaveCompleted"      // Все агенты волны уничтожены
	AgentSpawned       EventType = "AgentSpawned"       // Агент появился на поле
	AgentKilled        EventType = "AgentKilled"        // Агент уничтожен оружием или игроком
	AgentLeaked        EventType = "AgentLeaked"        // Агент дошёл до структуры
	ProjectileHit      EventType = "ProjectileHit"      // Снаряд попал в агента
	StructureDamaged   EventType = "StructureDamaged"   // Структура получила урон
	StructureDestroyed EventType = "StructureDestroyed" // Структура уничтожена
)

// WaveStartedData — полезная нагрузка WaveStarted.
type WaveStartedData struct {
	Wave int
}

// WaveCompletedData — полезная нагрузка WaveCompleted.
type WaveCompletedData struct {
	Wave  int
	Kills int
}

// AgentSpawnedData — полезная нагрузка AgentSpawned.
type AgentSpawnedData struct {
	ID   types.ObjectID
	Wave int
}

// AgentKilledData — полезная нагрузка AgentKilled. WeaponID пустой,
// если агент убит не оружием (например, ударом игрока).
type AgentKilledData struct {
	ID       types.ObjectID
	WeaponID string
	Reward   float64
}

// AgentLeakedData — полезная нагрузка AgentLeaked.
type AgentLeakedData struct {
	ID types.ObjectID
}

// ProjectileHitData — полезная нагрузка ProjectileHit. Damage — прямой
// урон по основной цели, без сплеша.
type ProjectileHitData struct {
	ProjectileID types.ObjectID
	AgentID      types.ObjectID
	WeaponID     string
	Damage       float64
}

// StructureDamagedData — полезная нагрузка StructureDamaged.
type StructureDamagedData struct {
	Remaining float64
}
