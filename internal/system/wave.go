// internal/system/wave.go
package system

import (
	"log"
	"math"

	"go-base-defense/internal/config"
	"go-base-defense/internal/defs"
	"go-base-defense/internal/event"
	"go-base-defense/internal/sim"
	"go-base-defense/internal/types"
	"go-base-defense/internal/utils"
)

// DirectorState — состояние конечного автомата директора волн.
type DirectorState int

const (
	DirectorIdle DirectorState = iota
	DirectorSpawning
	DirectorWaiting
)

func (s DirectorState) String() string {
	switch s {
	case DirectorIdle:
		return "idle"
	case DirectorSpawning:
		return "spawning"
	case DirectorWaiting:
		return "waiting"
	default:
		return "unknown"
	}
}

// WaveTuning — параметры формул генерации волн.
type WaveTuning struct {
	BaseCount     int
	CountIncrease int
	BaseDelay     float64 // секунды между спавнами на первой волне
	MinDelay      float64
	DelayDecay    float64 // уменьшение задержки за волну
	NextWaveDelay float64
}

// DefaultWaveTuning возвращает боевые значения из конфигурации.
func DefaultWaveTuning() WaveTuning {
	return WaveTuning{
		BaseCount:     config.BaseEnemyCount,
		CountIncrease: config.EnemiesIncrementPerWave,
		BaseDelay:     config.InitialSpawnDelay,
		MinDelay:      config.MinSpawnDelay,
		DelayDecay:    config.SpawnDelayDecrement,
		NextWaveDelay: config.NextWaveDelay,
	}
}

// GroupConfig — одна группа агентов волны с итоговыми множителями.
type GroupConfig struct {
	AgentID   string
	Count     int
	HealthMul float64
	SpeedMul  float64
	DamageMul float64
	RewardMul float64
}

// WaveConfig выводится детерминированно из номера волны.
type WaveConfig struct {
	Number        int
	EnemyCount    int
	Groups        []GroupConfig
	SpawnDelay    float64
	NextWaveDelay float64
}

// SpawnEntry — развернутый набор характеристик одного агента в очереди
// спавна (уже с множителями волны и джиттером).
type SpawnEntry struct {
	AgentID string
	Class   defs.AgentClass
	Health  float64
	Speed   float64
	Damage  float64
	Reward  float64
	Radius  float64
	Color   [4]uint8
}

// WaveStats — срез состояния для UI и запросов.
type WaveStats struct {
	Wave       int
	State      DirectorState
	Remaining  int // в очереди + живые на поле
	Kills      int
	TotalKills int
	TimeToNext float64
}

// WaveDirector генерирует конфигурации волн, ведет перемешанную очередь
// спавна и определяет завершение волны. Живых агентов директор не
// пересчитывает сам — единственный источник истины о живых объектах
// это реестр.
type WaveDirector struct {
	registry   *sim.Registry
	dispatcher *event.Dispatcher
	rng        *utils.PRNGService
	tuning     WaveTuning

	viewportW float64
	viewportH float64
	structure *sim.Object

	state      DirectorState
	waveNumber int
	current    WaveConfig
	queue      []SpawnEntry
	spawnTimer float64
	waitTimer  float64
	paused     bool

	kills      int // убийства в текущей волне
	totalKills int
}

// NewWaveDirector создает директора. Волны не начинаются до StartWaves.
func NewWaveDirector(registry *sim.Registry, dispatcher *event.Dispatcher,
	rng *utils.PRNGService, tuning WaveTuning,
	viewportW, viewportH float64, structure *sim.Object) *WaveDirector {

	return &WaveDirector{
		registry:   registry,
		dispatcher: dispatcher,
		rng:        rng,
		tuning:     tuning,
		viewportW:  viewportW,
		viewportH:  viewportH,
		structure:  structure,
		state:      DirectorIdle,
	}
}

// GenerateWaveConfig выводит конфигурацию волны из ее номера.
// Все формулы линейны по номеру волны (волны нумеруются с 1).
func (d *WaveDirector) GenerateWaveConfig(waveNumber int) WaveConfig {
	w := float64(waveNumber)

	enemyCount := d.tuning.BaseCount + (waveNumber-1)*d.tuning.CountIncrease
	spawnDelay := math.Max(d.tuning.MinDelay,
		d.tuning.BaseDelay-float64(waveNumber-1)*d.tuning.DelayDecay)

	healthMul := 1 + 0.2*(w-1)
	speedMul := 1 + 0.1*(w-1)
	damageMul := 1 + 0.15*(w-1)
	rewardMul := 1 + 0.3*(w-1)

	group := func(id string, count int) GroupConfig {
		return GroupConfig{
			AgentID:   id,
			Count:     count,
			HealthMul: healthMul,
			SpeedMul:  speedMul,
			DamageMul: damageMul,
			RewardMul: rewardMul,
		}
	}

	// Доли типов по ярусам. Остаток всегда достается базовому типу.
	var fast, tank, swarm, stealth int
	switch {
	case waveNumber <= 2:
		// только базовые
	case waveNumber <= 5:
		fast = int(math.Round(0.30 * float64(enemyCount)))
	default:
		fast = int(math.Round(0.25 * float64(enemyCount)))
		tank = int(math.Round(0.15 * float64(enemyCount)))
		if waveNumber%4 == 0 {
			swarm = int(math.Round(0.20 * float64(enemyCount)))
		}
		if waveNumber >= 15 {
			stealth = int(math.Round(0.10 * float64(enemyCount)))
		}
	}
	basic := enemyCount - fast - tank - swarm - stealth

	var groups []GroupConfig
	if basic > 0 {
		groups = append(groups, group(defs.AgentBasic, basic))
	}
	if fast > 0 {
		groups = append(groups, group(defs.AgentFast, fast))
	}
	if tank > 0 {
		groups = append(groups, group(defs.AgentTank, tank))
	}
	if swarm > 0 {
		groups = append(groups, group(defs.AgentSwarm, swarm))
	}
	if stealth > 0 {
		groups = append(groups, group(defs.AgentStealth, stealth))
	}

	// Босс добавляется сверх enemyCount: один на каждой десятой волне,
	// а с двадцатой — ослабленный на каждой пятой.
	if waveNumber%10 == 0 {
		groups = append(groups, group(defs.AgentBoss, 1))
	}
	if waveNumber >= 20 && waveNumber%5 == 0 {
		weak := group(defs.AgentBoss, 1)
		weak.HealthMul *= 0.8
		groups = append(groups, weak)
	}

	return WaveConfig{
		Number:        waveNumber,
		EnemyCount:    enemyCount,
		Groups:        groups,
		SpawnDelay:    spawnDelay,
		NextWaveDelay: d.tuning.NextWaveDelay,
	}
}

// StartNextWave строит и перемешивает очередь спавна следующей волны.
func (d *WaveDirector) StartNextWave() {
	d.waveNumber++
	d.current = d.GenerateWaveConfig(d.waveNumber)
	d.queue = d.buildQueue(d.current)
	d.spawnTimer = 0
	d.kills = 0
	d.state = DirectorSpawning

	d.dispatcher.Dispatch(event.Event{
		Type: event.WaveStarted,
		Data: event.WaveStartedData{Wave: d.waveNumber},
	})
}

// buildQueue разворачивает группы в плоский список и перемешивает его
// алгоритмом Фишера-Йетса.
func (d *WaveDirector) buildQueue(cfg WaveConfig) []SpawnEntry {
	var queue []SpawnEntry
	for _, g := range cfg.Groups {
		def, ok := defs.AgentLibrary[g.AgentID]
		if !ok {
			log.Printf("wave %d: agent definition %q not found, group skipped", cfg.Number, g.AgentID)
			continue
		}
		for i := 0; i < g.Count; i++ {
			queue = append(queue, SpawnEntry{
				AgentID: def.ID,
				Class:   def.Class,
				Health:  def.Health * g.HealthMul * d.rng.Jitter(config.StatJitter),
				Speed:   def.Speed * g.SpeedMul * d.rng.Jitter(config.StatJitter),
				Damage:  def.Damage * g.DamageMul,
				Reward:  def.Reward * g.RewardMul,
				Radius:  def.Visuals.Radius,
				Color:   def.Visuals.Color,
			})
		}
	}

	d.rng.Shuffle(len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})
	return queue
}

// Update продвигает автомат директора. Пауза замораживает таймеры, не
// сбрасывая счетчики.
func (d *WaveDirector) Update(dt float64) {
	if d.paused {
		return
	}

	switch d.state {
	case DirectorSpawning:
		if len(d.queue) > 0 {
			d.spawnTimer += dt
			if d.spawnTimer >= d.current.SpawnDelay {
				entry := d.queue[0]
				d.queue = d.queue[1:]
				d.spawnAgent(entry)
				d.spawnTimer = 0
			}
		}
		// Волна завершена, когда очередь пуста и живых агентов нет.
		if len(d.queue) == 0 && d.registry.CountByKind(types.KindAgent) == 0 {
			d.completeWave()
		}
	case DirectorWaiting:
		d.waitTimer -= dt
		if d.waitTimer <= 0 {
			d.StartNextWave()
		}
	case DirectorIdle:
	}
}

func (d *WaveDirector) completeWave() {
	d.dispatcher.Dispatch(event.Event{
		Type: event.WaveCompleted,
		Data: event.WaveCompletedData{Wave: d.waveNumber, Kills: d.kills},
	})
	d.waitTimer = d.current.NextWaveDelay
	d.state = DirectorWaiting
}

// spawnAgent материализует запись очереди через реестр.
func (d *WaveDirector) spawnAgent(entry SpawnEntry) {
	x, y := d.spawnPoint()

	// Начальная скорость — сразу к структуре, чтобы упреждение оружия
	// работало с первого тика.
	vx, vy := 0.0, 0.0
	if d.structure != nil {
		dx := d.structure.X - x
		dy := d.structure.Y - y
		if dist := math.Sqrt(dx*dx + dy*dy); dist > 0 {
			vx = dx / dist * entry.Speed
			vy = dy / dist * entry.Speed
		}
	}

	obj := d.registry.Create(sim.InitData{
		Kind:     types.KindAgent,
		X:        x,
		Y:        y,
		Health:   entry.Health,
		Radius:   entry.Radius,
		VelX:     vx,
		VelY:     vy,
		Tint:     entry.Color,
		Behavior: newAgentBehavior(entry.Class, d.structure, entry.Damage, entry.Speed),
	})
	if obj == nil {
		log.Printf("wave %d: agent spawn rejected by pool", d.waveNumber)
		return
	}

	reward := entry.Reward
	obj.OnDestroy(func(o *sim.Object) {
		d.onAgentGone(o, reward)
	})

	d.dispatcher.Dispatch(event.Event{
		Type: event.AgentSpawned,
		Data: event.AgentSpawnedData{ID: obj.ID, Wave: d.waveNumber},
	})
}

// onAgentGone — учет убийств и утечек по destroy-уведомлению агента.
func (d *WaveDirector) onAgentGone(o *sim.Object, reward float64) {
	if o.Killed() {
		d.kills++
		d.totalKills++
		weaponID := o.LastHitBy
		if _, ok := defs.WeaponLibrary[weaponID]; !ok {
			weaponID = "" // убит не оружием: удар игрока и т.п.
		}
		d.dispatcher.Dispatch(event.Event{
			Type: event.AgentKilled,
			Data: event.AgentKilledData{ID: o.ID, WeaponID: weaponID, Reward: reward},
		})
		return
	}
	if r, ok := o.Behavior().(interface{ ReachedStructure() bool }); ok && r.ReachedStructure() {
		d.dispatcher.Dispatch(event.Event{
			Type: event.AgentLeaked,
			Data: event.AgentLeakedData{ID: o.ID},
		})
	}
}

// spawnPoint выбирает точку за случайным краем экрана.
func (d *WaveDirector) spawnPoint() (float64, float64) {
	m := config.SpawnMargin
	switch d.rng.Intn(4) {
	case 0: // сверху
		return d.rng.Float64() * d.viewportW, -m
	case 1: // справа
		return d.viewportW + m, d.rng.Float64() * d.viewportH
	case 2: // снизу
		return d.rng.Float64() * d.viewportW, d.viewportH + m
	default: // слева
		return -m, d.rng.Float64() * d.viewportH
	}
}

// StartWaves запускает первую волну из простоя.
func (d *WaveDirector) StartWaves() {
	if d.state != DirectorIdle {
		return
	}
	d.StartNextWave()
}

// Pause замораживает накопление таймеров.
func (d *WaveDirector) Pause() { d.paused = true }

// Resume снимает заморозку.
func (d *WaveDirector) Resume() { d.paused = false }

// Stop принудительно останавливает волны: очередь очищается, все
// спавненные агенты деактивируются, состояние пулов остается корректным.
func (d *WaveDirector) Stop() {
	d.queue = nil
	d.registry.DeactivateAll(types.KindAgent)
	d.state = DirectorIdle
	d.spawnTimer = 0
	d.waitTimer = 0
}

// State возвращает текущее состояние автомата.
func (d *WaveDirector) State() DirectorState { return d.state }

// WaveNumber возвращает номер текущей волны.
func (d *WaveDirector) WaveNumber() int { return d.waveNumber }

// Stats возвращает срез статистики волн.
func (d *WaveDirector) Stats() WaveStats {
	s := WaveStats{
		Wave:       d.waveNumber,
		State:      d.state,
		Remaining:  len(d.queue) + d.registry.CountByKind(types.KindAgent),
		Kills:      d.kills,
		TotalKills: d.totalKills,
	}
	if d.state == DirectorWaiting {
		s.TimeToNext = d.waitTimer
	}
	return s
}
