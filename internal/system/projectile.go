// internal/system/projectile.go
package system

import (
	"log"
	"math"

	"go-base-defense/internal/config"
	"go-base-defense/internal/defs"
	"go-base-defense/internal/event"
	"go-base-defense/internal/geom"
	"go-base-defense/internal/sim"
	"go-base-defense/internal/types"
)

// splashQueryPad — запас широкой фазы поиска столкновений: радиус самого
// крупного агента плюс допуск попадания.
const splashQueryPad = 32.0

// projectileState — поведение-носитель снаряда. Движением снарядов
// владеет ProjectileSystem, поэтому Update пуст: общий проход обновления
// пропускает снаряды целиком.
type projectileState struct {
	weapon   defs.WeaponDefinition
	target   *sim.Object
	targetID types.ObjectID
	lifetime float64
	hits     map[types.ObjectID]bool // уже задетые (для пронзающих)
}

func (s *projectileState) Update(o *sim.Object, dt float64) {}

func (s *projectileState) Teardown(o *sim.Object) {
	s.target = nil
	s.hits = nil
}

// targetAlive проверяет слабую ссылку на цель: объект мог быть уничтожен
// и переиспользован пулом, тогда его ID уже другой.
func (s *projectileState) targetAlive() bool {
	return s.target != nil && s.target.Active && s.target.ID == s.targetID
}

// ProjectileSystem владеет жизненным циклом снарядов: запуск с
// упреждением, самонаведение, столкновения по пройденному за тик отрезку
// и истечение времени жизни.
type ProjectileSystem struct {
	registry   *sim.Registry
	dispatcher *event.Dispatcher
	effects    *StatusEffectSystem
}

// NewProjectileSystem создает систему снарядов.
func NewProjectileSystem(registry *sim.Registry, dispatcher *event.Dispatcher,
	effects *StatusEffectSystem) *ProjectileSystem {
	return &ProjectileSystem{
		registry:   registry,
		dispatcher: dispatcher,
		effects:    effects,
	}
}

// Spawn запускает снаряд из точки по цели. Точка прицеливания упреждает
// движение цели на время подлета; время жизни выводится из дальности
// оружия, чтобы промахи не летали вечно.
func (s *ProjectileSystem) Spawn(def defs.WeaponDefinition, x, y float64, target *sim.Object) {
	aimX, aimY := target.X, target.Y
	if dist := target.DistTo(x, y); dist > 0 && def.ProjectileSpeed > 0 {
		t := dist / def.ProjectileSpeed
		aimX += target.VelX * t
		aimY += target.VelY * t
	}

	dx := aimX - x
	dy := aimY - y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist == 0 {
		dist = 1
		dx = 1
	}

	state := &projectileState{
		weapon:   def,
		target:   target,
		targetID: target.ID,
		lifetime: def.Range / def.ProjectileSpeed,
		hits:     make(map[types.ObjectID]bool),
	}
	obj := s.registry.Create(sim.InitData{
		Kind:     types.KindProjectile,
		X:        x,
		Y:        y,
		Health:   1,
		Radius:   config.ProjectileRadius,
		VelX:     dx / dist * def.ProjectileSpeed,
		VelY:     dy / dist * def.ProjectileSpeed,
		Tint:     def.Visuals.Color,
		Behavior: state,
	})
	if obj == nil {
		log.Printf("projectile: spawn for weapon %s rejected by pool", def.ID)
	}
}

// Update двигает все снаряды и разрешает столкновения. Попадание
// засчитывается, если агент оказался на пройденном за тик отрезке в
// пределах допуска.
func (s *ProjectileSystem) Update(dt float64) {
	for _, o := range s.registry.ByKind(types.KindProjectile) {
		s.step(o, dt)
	}
}

func (s *ProjectileSystem) step(o *sim.Object, dt float64) {
	state, ok := o.Behavior().(*projectileState)
	if !ok {
		log.Printf("projectile: object #%d has foreign behavior, destroying", o.ID)
		o.Destroy()
		return
	}

	o.Age += dt
	if o.Age >= state.lifetime {
		o.Destroy()
		return
	}

	// Самонаведение доворачивает вектор скорости на цель, сохраняя модуль.
	if state.weapon.Homing && state.targetAlive() {
		dx := state.target.X - o.X
		dy := state.target.Y - o.Y
		if dist := math.Sqrt(dx*dx + dy*dy); dist > 0 {
			speed := state.weapon.ProjectileSpeed
			o.VelX = dx / dist * speed
			o.VelY = dy / dist * speed
		}
	}

	oldX, oldY := o.X, o.Y
	o.X += o.VelX * dt
	o.Y += o.VelY * dt

	s.collide(o, state, oldX, oldY)
}

// collide находит первого агента на отрезке движения и применяет урон.
// Пронзающий снаряд продолжает полет и не бьет одного агента дважды.
func (s *ProjectileSystem) collide(o *sim.Object, state *projectileState, oldX, oldY float64) {
	moved := math.Sqrt((o.X-oldX)*(o.X-oldX) + (o.Y-oldY)*(o.Y-oldY))
	candidates := s.registry.InRadius(oldX, oldY, moved+o.Radius+splashQueryPad, types.KindAgent)

	var hit *sim.Object
	bestDist := math.MaxFloat64
	for _, a := range candidates {
		if state.hits[a.ID] {
			continue
		}
		reach := a.Radius + o.Radius + config.HitTolerance
		if h := geom.SegmentCircle(oldX, oldY, o.X, o.Y, a.X, a.Y, reach); h.Ok {
			if d := a.DistTo(oldX, oldY); d < bestDist {
				bestDist = d
				hit = a
			}
		}
	}
	if hit == nil {
		return
	}

	def := state.weapon
	hit.TakeDamage(def.Damage, def.ID)
	if def.Effect != nil && s.effects != nil {
		s.effects.Apply(hit, def.Effect, def.ID)
	}
	s.dispatcher.Dispatch(event.Event{
		Type: event.ProjectileHit,
		Data: event.ProjectileHitData{
			ProjectileID: o.ID,
			AgentID:      hit.ID,
			WeaponID:     def.ID,
			Damage:       def.Damage,
		},
	})

	// Сплеш бьет всех вокруг точки попадания, кроме основной цели.
	// Маскировка от площадного урона не спасает; эффекты сплеш не вешает.
	if def.AreaOfEffect > 0 {
		for _, a := range s.registry.InRadius(hit.X, hit.Y, def.AreaOfEffect, types.KindAgent) {
			if a != hit {
				a.TakeDamage(def.Damage, def.ID)
			}
		}
	}

	if def.Piercing {
		state.hits[hit.ID] = true
		return
	}
	o.Destroy()
}
