// internal/system/combat.go
package system

import (
	"fmt"
	"log"

	"go-base-defense/internal/config"
	"go-base-defense/internal/defs"
	"go-base-defense/internal/event"
	"go-base-defense/internal/sim"
	"go-base-defense/internal/types"
)

// Weapon — активный экземпляр оружия с собственным кулдауном.
type Weapon struct {
	Def      defs.WeaponDefinition
	cooldown float64
}

// CombatStats — накопительные счетчики боя.
type CombatStats struct {
	ShotsFired  uint64
	Hits        uint64
	Kills       uint64
	DamageDealt float64
}

// CombatEngine ведет набор активных оружий на структуре: кулдауны, выбор
// цели по текущей политике и запуск атаки нужного архетипа. Сам движок
// агентов не хранит — все запросы о живых целях идут в реестр.
type CombatEngine struct {
	registry    *sim.Registry
	dispatcher  *event.Dispatcher
	effects     *StatusEffectSystem
	projectiles *ProjectileSystem
	structure   *sim.Object

	mode    types.TargetingMode
	weapons []*Weapon

	stats CombatStats
}

// NewCombatEngine создает движок и подписывается на события попаданий и
// убийств для статистики.
func NewCombatEngine(registry *sim.Registry, dispatcher *event.Dispatcher,
	effects *StatusEffectSystem, projectiles *ProjectileSystem,
	structure *sim.Object, mode types.TargetingMode) *CombatEngine {

	e := &CombatEngine{
		registry:    registry,
		dispatcher:  dispatcher,
		effects:     effects,
		projectiles: projectiles,
		structure:   structure,
		mode:        mode,
	}

	dispatcher.Subscribe(event.ProjectileHit, event.ListenerFunc(func(ev event.Event) {
		data := ev.Data.(event.ProjectileHitData)
		e.stats.Hits++
		e.stats.DamageDealt += data.Damage
	}))
	dispatcher.Subscribe(event.AgentKilled, event.ListenerFunc(func(ev event.Event) {
		if ev.Data.(event.AgentKilledData).WeaponID != "" {
			e.stats.Kills++
		}
	}))
	return e
}

// ActivateWeapon добавляет оружие по ID определения. Неизвестный ID —
// ошибка; повторная активация того же оружия — логируемый no-op.
func (e *CombatEngine) ActivateWeapon(id string) error {
	def, ok := defs.WeaponLibrary[id]
	if !ok {
		return fmt.Errorf("combat: unknown weapon %q", id)
	}
	for _, w := range e.weapons {
		if w.Def.ID == id {
			log.Printf("combat: weapon %s already active, ignoring", id)
			return nil
		}
	}
	e.weapons = append(e.weapons, &Weapon{Def: def})
	return nil
}

// DeactivateWeapon убирает оружие. Отсутствующее — логируемый no-op.
func (e *CombatEngine) DeactivateWeapon(id string) {
	for i, w := range e.weapons {
		if w.Def.ID == id {
			e.weapons = append(e.weapons[:i], e.weapons[i+1:]...)
			return
		}
	}
	log.Printf("combat: deactivate of inactive weapon %s, ignoring", id)
}

// SetTargetingMode переключает политику выбора цели для всех оружий.
func (e *CombatEngine) SetTargetingMode(mode types.TargetingMode) {
	e.mode = mode
}

// Update продвигает кулдауны и стреляет из готовых оружий. Кулдаун
// сбрасывается только при фактическом выстреле: если цели нет, оружие
// остается готовым.
func (e *CombatEngine) Update(dt float64) {
	for _, w := range e.weapons {
		if w.Def.Archetype == defs.ArchetypeContinuous {
			e.fireContinuous(w, dt)
			continue
		}

		w.cooldown -= dt
		if w.cooldown > 0 {
			continue
		}
		if e.fire(w) {
			w.cooldown = 1.0 / w.Def.FireRate
			e.stats.ShotsFired++
		}
	}
}

// fire выполняет один дискретный выстрел. false — цели не нашлось.
func (e *CombatEngine) fire(w *Weapon) bool {
	target := e.selectTarget(w.Def.Range)
	if target == nil {
		return false
	}

	switch w.Def.Archetype {
	case defs.ArchetypeProjectile:
		e.projectiles.Spawn(w.Def, e.structure.X, e.structure.Y, target)
	case defs.ArchetypeChain:
		e.fireChain(w, target)
	case defs.ArchetypeBurst:
		e.fireBurst(w)
	default:
		log.Printf("combat: weapon %s has unfireable archetype %s", w.Def.ID, w.Def.Archetype)
		return false
	}
	return true
}

// fireChain бьет выбранную цель и прыгает на ближайшего еще не задетого
// агента в радиусе цепи, не более пяти попаданий. Один агент не может
// быть задет дважды за разряд.
func (e *CombatEngine) fireChain(w *Weapon, first *sim.Object) {
	chainRadius := w.Def.ChainRadius
	if chainRadius <= 0 {
		chainRadius = config.ChainRadius
	}

	visited := make(map[types.ObjectID]bool)
	current := first
	for hits := 0; hits < config.ChainMaxHits && current != nil; hits++ {
		visited[current.ID] = true
		e.applyDamage(current, w.Def.Damage, w.Def.ID, w.Def.Effect)

		x, y := current.X, current.Y
		current = nil
		best := chainRadius
		for _, o := range e.registry.InRadius(x, y, chainRadius, types.KindAgent) {
			if visited[o.ID] || !o.Targetable() {
				continue
			}
			if d := o.DistTo(x, y); current == nil || d < best {
				best = d
				current = o
			}
		}
	}
}

// fireBurst — мгновенный площадной разряд вокруг структуры. Площадной
// урон проходит и по замаскированным агентам.
func (e *CombatEngine) fireBurst(w *Weapon) {
	radius := w.Def.AreaOfEffect
	if radius <= 0 {
		radius = w.Def.Range
	}
	for _, o := range e.registry.InRadius(e.structure.X, e.structure.Y, radius, types.KindAgent) {
		e.applyDamage(o, w.Def.Damage, w.Def.ID, w.Def.Effect)
	}
}

// fireContinuous — непрерывное оружие без кулдауна: урон за тик
// пропорционален dt. Луч держит одну выбранную цель, поле жжет всех в
// радиусе (и замаскированных тоже).
func (e *CombatEngine) fireContinuous(w *Weapon, dt float64) {
	damage := w.Def.Damage * dt
	switch w.Def.Mode {
	case defs.ModeBeam:
		if target := e.selectTarget(w.Def.Range); target != nil {
			e.applyDamage(target, damage, w.Def.ID, w.Def.Effect)
		}
	case defs.ModeField:
		for _, o := range e.registry.InRadius(e.structure.X, e.structure.Y, w.Def.Range, types.KindAgent) {
			e.applyDamage(o, damage, w.Def.ID, nil)
		}
	}
}

// applyDamage наносит урон и навешивает статус-эффект оружия, если он
// есть. Учет в статистике идет здесь же.
func (e *CombatEngine) applyDamage(o *sim.Object, amount float64, weaponID string, effect *defs.EffectDefinition) {
	if o == nil || !o.Active {
		return
	}
	o.TakeDamage(amount, weaponID)
	e.stats.Hits++
	e.stats.DamageDealt += amount
	if effect != nil && e.effects != nil {
		e.effects.Apply(o, effect, weaponID)
	}
}

// selectTarget выбирает агента в радиусе rng от структуры по текущей
// политике. Ничьи разрешаются первым встреченным кандидатом: сравнения
// строгие, порядок обхода — порядок активации из реестра.
func (e *CombatEngine) selectTarget(rng float64) *sim.Object {
	ox, oy := e.structure.X, e.structure.Y

	var best *sim.Object
	var bestVal float64
	for _, o := range e.registry.ByKind(types.KindAgent) {
		if !o.Targetable() {
			continue
		}
		d := o.DistTo(ox, oy)
		if d > rng {
			continue
		}

		var val float64
		switch e.mode {
		case types.TargetNearest:
			val = d
		case types.TargetFurthest:
			val = -d
		case types.TargetWeakest:
			val = o.Health
		case types.TargetStrongest:
			val = -o.Health
		case types.TargetFastest:
			val = -o.Speed()
		case types.TargetSlowest:
			val = o.Speed()
		default:
			val = d
		}
		if best == nil || val < bestVal {
			best = o
			bestVal = val
		}
	}
	return best
}

// StrikeAt — прямой удар игрока по точке: площадной урон всем агентам в
// радиусе удара, включая замаскированных.
func (e *CombatEngine) StrikeAt(x, y float64) {
	for _, o := range e.registry.InRadius(x, y, config.StrikeRadius, types.KindAgent) {
		o.TakeDamage(config.StrikeDamage, "player_strike")
	}
}

// Weapons возвращает активные оружия (для UI).
func (e *CombatEngine) Weapons() []*Weapon { return e.weapons }

// Mode возвращает текущую политику выбора цели.
func (e *CombatEngine) Mode() types.TargetingMode { return e.mode }

// Stats возвращает накопленную статистику боя.
func (e *CombatEngine) Stats() CombatStats { return e.stats }
