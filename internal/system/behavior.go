// internal/system/behavior.go
package system

import (
	"math"

	"go-base-defense/internal/defs"
	"go-base-defense/internal/geom"
	"go-base-defense/internal/sim"
)

// agentCore — общая часть всех вариантов поведения агентов: движение к
// структуре и контактный урон при достижении.
type agentCore struct {
	structure     *sim.Object
	contactDamage float64
	baseSpeed     float64
	reached       bool
}

// advance направляет агента к структуре и применяет контактный урон при
// касании. speedMul — множитель варианта поведения, SpeedScale — вклад
// статус-эффектов.
func (a *agentCore) advance(o *sim.Object, speedMul float64) {
	s := a.structure
	if s == nil || !s.Active {
		o.VelX, o.VelY = 0, 0
		return
	}

	if hit := geom.CircleCircle(o.X, o.Y, o.Radius, s.X, s.Y, s.Radius); hit.Ok {
		a.reached = true
		s.TakeDamage(a.contactDamage, "agent_contact")
		o.Destroy()
		return
	}

	dx := s.X - o.X
	dy := s.Y - o.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist == 0 {
		return
	}
	speed := a.baseSpeed * speedMul * o.SpeedScale
	o.VelX = dx / dist * speed
	o.VelY = dy / dist * speed
}

func (a *agentCore) Teardown(o *sim.Object) {
	a.structure = nil
}

// ReachedStructure сообщает, дошел ли агент до базы (утечка, не убийство).
func (a *agentCore) ReachedStructure() bool { return a.reached }

// walkerBehavior — обычное движение: базовые, быстрые и танки.
type walkerBehavior struct {
	agentCore
}

func (b *walkerBehavior) Update(o *sim.Object, dt float64) {
	b.advance(o, 1)
}

// Длительности циклов особых вариантов поведения.
const (
	swarmCalmTime  = 2.5
	swarmBurstTime = 1.0
	swarmBurstMul  = 2.2

	stealthVisibleTime = 1.5
	stealthCloakTime   = 2.0

	bossRegenInterval = 5.0
	bossRegenFraction = 0.03
)

// swarmBehavior — рой: периодические рывки скорости.
type swarmBehavior struct {
	agentCore
	cycleTimer float64
	bursting   bool
}

func (b *swarmBehavior) Update(o *sim.Object, dt float64) {
	b.cycleTimer += dt
	if b.bursting {
		if b.cycleTimer >= swarmBurstTime {
			b.bursting = false
			b.cycleTimer = 0
		}
	} else if b.cycleTimer >= swarmCalmTime {
		b.bursting = true
		b.cycleTimer = 0
	}

	mul := 1.0
	if b.bursting {
		mul = swarmBurstMul
	}
	b.advance(o, mul)
}

// stealthBehavior — стелс: циклы маскировки. Замаскированный агент
// недоступен для выбора цели, но площадной урон по нему проходит.
type stealthBehavior struct {
	agentCore
	cloakTimer float64
	cloaked    bool
}

func (b *stealthBehavior) Update(o *sim.Object, dt float64) {
	b.cloakTimer += dt
	if b.cloaked {
		if b.cloakTimer >= stealthCloakTime {
			b.cloaked = false
			b.cloakTimer = 0
		}
	} else if b.cloakTimer >= stealthVisibleTime {
		b.cloaked = true
		b.cloakTimer = 0
	}
	b.advance(o, 1)
}

func (b *stealthBehavior) Targetable() bool { return !b.cloaked }

// bossBehavior — босс: медленный, с периодической регенерацией.
type bossBehavior struct {
	agentCore
	regenTimer float64
}

func (b *bossBehavior) Update(o *sim.Object, dt float64) {
	b.regenTimer += dt
	if b.regenTimer >= bossRegenInterval {
		b.regenTimer = 0
		o.Health += o.MaxHealth * bossRegenFraction
		if o.Health > o.MaxHealth {
			o.Health = o.MaxHealth
		}
	}
	b.advance(o, 1)
}

// newAgentBehavior выбирает вариант поведения по классу определения.
// Неизвестный класс отсеивается валидацией при загрузке библиотеки.
func newAgentBehavior(class defs.AgentClass, structure *sim.Object, contactDamage, baseSpeed float64) sim.Behavior {
	core := agentCore{
		structure:     structure,
		contactDamage: contactDamage,
		baseSpeed:     baseSpeed,
	}
	switch class {
	case defs.ClassSwarm:
		return &swarmBehavior{agentCore: core}
	case defs.ClassStealth:
		return &stealthBehavior{agentCore: core}
	case defs.ClassBoss:
		return &bossBehavior{agentCore: core}
	default:
		return &walkerBehavior{agentCore: core}
	}
}
