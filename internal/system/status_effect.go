// internal/system/status_effect.go
package system

import (
	"log"

	"go-base-defense/internal/defs"
	"go-base-defense/internal/sim"
	"go-base-defense/internal/types"
)

type slowEntry struct {
	obj       *sim.Object
	id        types.ObjectID
	remaining float64
	factor    float64
}

type burnEntry struct {
	obj       *sim.Object
	id        types.ObjectID
	remaining float64
	dps       float64
	source    string
}

// StatusEffectSystem ведет наложенные на агентов эффекты: замедление
// (множитель SpeedScale) и горение (урон в секунду). Повторное наложение
// того же типа обновляет длительность, эффекты не складываются.
type StatusEffectSystem struct {
	slows map[types.ObjectID]*slowEntry
	burns map[types.ObjectID]*burnEntry
}

// NewStatusEffectSystem создает пустую систему эффектов.
func NewStatusEffectSystem() *StatusEffectSystem {
	return &StatusEffectSystem{
		slows: make(map[types.ObjectID]*slowEntry),
		burns: make(map[types.ObjectID]*burnEntry),
	}
}

// Apply накладывает эффект оружия на объект.
func (s *StatusEffectSystem) Apply(o *sim.Object, def *defs.EffectDefinition, source string) {
	if o == nil || !o.Active || def == nil {
		return
	}
	switch def.Type {
	case defs.EffectSlow:
		o.SpeedScale = def.Factor
		s.slows[o.ID] = &slowEntry{
			obj:       o,
			id:        o.ID,
			remaining: def.Duration,
			factor:    def.Factor,
		}
	case defs.EffectBurn:
		s.burns[o.ID] = &burnEntry{
			obj:       o,
			id:        o.ID,
			remaining: def.Duration,
			dps:       def.Dps,
			source:    source,
		}
	default:
		log.Printf("status: unknown effect type %q from %s, ignoring", def.Type, source)
	}
}

// Update тикает эффекты. Записи по мертвым или переиспользованным
// объектам (ID не совпал) молча выбрасываются: владеет жизнью объектов
// реестр, система эффектов лишь держит слабые ссылки.
func (s *StatusEffectSystem) Update(dt float64) {
	for id, e := range s.slows {
		if !e.obj.Active || e.obj.ID != e.id {
			delete(s.slows, id)
			continue
		}
		e.remaining -= dt
		if e.remaining <= 0 {
			e.obj.SpeedScale = 1
			delete(s.slows, id)
		}
	}

	for id, e := range s.burns {
		if !e.obj.Active || e.obj.ID != e.id {
			delete(s.burns, id)
			continue
		}
		e.obj.TakeDamage(e.dps*dt, e.source)
		e.remaining -= dt
		if e.remaining <= 0 {
			delete(s.burns, id)
		}
	}
}

// Slowed сообщает, замедлен ли объект сейчас (для отрисовки).
func (s *StatusEffectSystem) Slowed(id types.ObjectID) bool {
	_, ok := s.slows[id]
	return ok
}

// Burning сообщает, горит ли объект сейчас (для отрисовки).
func (s *StatusEffectSystem) Burning(id types.ObjectID) bool {
	_, ok := s.burns[id]
	return ok
}
