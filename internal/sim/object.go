// internal/sim/object.go
package sim

import (
	"log"
	"math"

	"go-base-defense/internal/types"
	"go-base-defense/internal/utils"
)

// Behavior — закрытый набор вариантов поведения, привязанных к объекту.
// Update вызывается на этапе общего прохода обновления, Teardown — один
// раз при уничтожении, после всех destroy-колбеков.
type Behavior interface {
	Update(o *Object, dt float64)
	Teardown(o *Object)
}

// targetable реализуется поведениями, которые могут временно прятать
// объект от систем прицеливания (стелс-агенты).
type targetable interface {
	Targetable() bool
}

// InitData описывает состояние объекта сразу после acquire.
type InitData struct {
	Kind     types.Kind
	X, Y     float64
	Health   float64
	Radius   float64
	VelX     float64
	VelY     float64
	Tint     [4]uint8 // подсказка отладочному рендереру, RGBA
	Behavior Behavior
}

// Object — базовая симуляционная сущность: позиция, здоровье, радиус,
// скорость, возраст и списки колбеков. Объекты переиспользуются пулами,
// поэтому Reset обязан возвращать все поля в исходное состояние.
type Object struct {
	ID     types.ObjectID
	Kind   types.Kind
	X, Y   float64
	Health    float64
	MaxHealth float64
	Radius float64
	Active bool
	VelX   float64
	VelY   float64
	Age    float64 // секунды с момента активации

	// SpeedScale — множитель скорости, выставляется статус-эффектами.
	SpeedScale float64

	// Tint — цвет для отладочного рендерера, приходит из определения.
	Tint [4]uint8

	// LastHitBy — идентификатор источника последнего урона,
	// попадает в событие AgentKilled.
	LastHitBy string

	behavior   Behavior
	destroyCbs []func(*Object)
	damageCbs  []func(o *Object, amount float64, source string)
	destroyed  bool
	killed     bool

	// seq — порядковый номер активации, выставляется пулом и используется
	// для детерминированного вытеснения самого старого активного объекта.
	seq uint64
}

// Update продвигает возраст, интегрирует скорость и передает управление
// поведению. Для снарядов не вызывается: ими владеет ProjectileSystem.
func (o *Object) Update(dt float64) {
	if !o.Active {
		return
	}
	o.Age += dt
	o.X += o.VelX * dt
	o.Y += o.VelY * dt
	if o.behavior != nil {
		o.behavior.Update(o, dt)
	}
}

// TakeDamage уменьшает здоровье с зажимом в ноль и вызывает Destroy ровно
// один раз, когда здоровье исчерпано. Урон по неактивному объекту —
// охраняемый no-op, не ошибка.
func (o *Object) TakeDamage(amount float64, source string) {
	if !o.Active || o.destroyed || amount <= 0 {
		return
	}

	o.LastHitBy = source
	for _, cb := range o.damageCbs {
		cb(o, amount, source)
	}

	o.Health -= amount
	if o.Health <= 0 {
		o.Health = 0
		o.killed = true
		o.Destroy()
	}
}

// Destroy деактивирует объект и вызывает destroy-колбеки, затем teardown
// поведения. Повторный вызов — no-op с предупреждением.
func (o *Object) Destroy() {
	if o.destroyed {
		log.Printf("Destroy called twice on %s #%d, ignoring", o.Kind, o.ID)
		return
	}
	o.destroyed = true
	o.Active = false

	for _, cb := range o.destroyCbs {
		cb(o)
	}
	if o.behavior != nil {
		o.behavior.Teardown(o)
	}
}

// Reset возвращает объект в состояние "свежий из пула". Все колбеки
// предыдущего владельца сбрасываются: переиспользованный объект не должен
// сохранять чужие привязки.
func (o *Object) Reset(init InitData) {
	o.Kind = init.Kind
	o.X = init.X
	o.Y = init.Y
	o.Health = init.Health
	o.MaxHealth = init.Health
	o.Radius = init.Radius
	o.VelX = init.VelX
	o.VelY = init.VelY
	o.Age = 0
	o.SpeedScale = 1
	o.Tint = init.Tint
	o.LastHitBy = ""
	o.behavior = init.Behavior
	o.destroyCbs = nil
	o.damageCbs = nil
	o.destroyed = false
	o.killed = false
	o.Active = true
}

// OnDestroy регистрирует колбек уничтожения.
func (o *Object) OnDestroy(cb func(*Object)) {
	o.destroyCbs = append(o.destroyCbs, cb)
}

// OnDamage регистрирует колбек получения урона.
func (o *Object) OnDamage(cb func(o *Object, amount float64, source string)) {
	o.damageCbs = append(o.damageCbs, cb)
}

// Killed сообщает, умер ли объект от урона (а не от принудительного
// уничтожения, вытеснения из пула или выхода за время жизни).
func (o *Object) Killed() bool { return o.killed }

// Destroyed сообщает, прошел ли объект через Destroy.
func (o *Object) Destroyed() bool { return o.destroyed }

// Behavior возвращает текущее поведение объекта.
func (o *Object) Behavior() Behavior { return o.behavior }

// Speed возвращает модуль текущей скорости.
func (o *Object) Speed() float64 {
	return math.Sqrt(o.VelX*o.VelX + o.VelY*o.VelY)
}

// Targetable сообщает, может ли оружие выбрать объект целью.
// Замаскированные стелс-агенты невидимы для прицеливания, но не для
// площадного урона.
func (o *Object) Targetable() bool {
	if !o.Active {
		return false
	}
	if t, ok := o.behavior.(targetable); ok {
		return t.Targetable()
	}
	return true
}

// DistTo возвращает расстояние от центра объекта до точки.
func (o *Object) DistTo(x, y float64) float64 {
	return utils.Dist(o.X, o.Y, x, y)
}
