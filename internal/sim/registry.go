// internal/sim/registry.go
package sim

import (
	"fmt"
	"math"

	"go-base-defense/internal/geom"
	"go-base-defense/internal/types"
)

// broadPhaseSlack компенсирует смещение объектов с момента последней
// перестройки пространственного индекса: широкая фаза запрашивается с
// запасом, точная проверка идет по актуальным координатам.
const broadPhaseSlack = 32.0

// Registry — единственный владелец знания "кто сейчас жив". Направляет
// создание в пул нужного вида, индексирует активные объекты и отвечает
// на пространственные запросы. Системы обязаны спрашивать реестр, а не
// вести собственные теневые списки.
type Registry struct {
	pools    [types.KindCount]*Pool
	objects  map[types.ObjectID]*Object
	unpooled []*Object
	hash     *geom.SpatialHash
	lastID   uint64
}

// NewRegistry создает реестр с пулами для перечисленных видов.
func NewRegistry(configs map[types.Kind]PoolConfig, cellSize float64) *Registry {
	r := &Registry{
		objects: make(map[types.ObjectID]*Object),
		hash:    geom.NewSpatialHash(cellSize),
	}
	for kind, cfg := range configs {
		if kind < 0 || kind >= types.KindCount {
			panic(fmt.Sprintf("registry: invalid kind %d", kind))
		}
		r.pools[kind] = NewPool(kind, cfg, r.nextID)
	}
	return r
}

func (r *Registry) nextID() types.ObjectID {
	r.lastID++
	return types.ObjectID(r.lastID)
}

// MustHavePools — проверка конфигурации на старте: отсутствие пула для
// вида, который будет создаваться, — фатальная ошибка конфигурации,
// а не ошибка времени выполнения.
func (r *Registry) MustHavePools(kinds ...types.Kind) {
	for _, k := range kinds {
		if k < 0 || k >= types.KindCount || r.pools[k] == nil {
			panic(fmt.Sprintf("registry: no pool registered for kind %s", k))
		}
	}
}

// Create материализует объект через пул его вида и индексирует его.
// Возвращает nil, только если пул отклонил вложенный acquire во время
// вытеснения (охраняемый отказ, не ошибка).
func (r *Registry) Create(init InitData) *Object {
	pool := r.pools[init.Kind]
	if pool == nil {
		// Должно было быть поймано MustHavePools на старте.
		panic(fmt.Sprintf("registry: create for unregistered kind %s", init.Kind))
	}

	obj := pool.Acquire(init)
	if obj == nil {
		return nil
	}
	r.objects[obj.ID] = obj
	// Реестр подписывается первым: к моменту чужих колбеков объект уже
	// исключен из индексов.
	obj.OnDestroy(r.handleDestroy)
	return obj
}

// CreateUnpooled создает объект вне пулов (структура базы). Такие
// объекты обновляются после пуловых.
func (r *Registry) CreateUnpooled(init InitData) *Object {
	obj := &Object{}
	obj.Reset(init)
	obj.ID = r.nextID()
	r.objects[obj.ID] = obj
	obj.OnDestroy(r.handleDestroy)
	r.unpooled = append(r.unpooled, obj)
	return obj
}

func (r *Registry) handleDestroy(o *Object) {
	delete(r.objects, o.ID)
	if pool := r.pools[o.Kind]; pool != nil {
		pool.Release(o)
		return
	}
	for i, u := range r.unpooled {
		if u == o {
			r.unpooled = append(r.unpooled[:i], r.unpooled[i+1:]...)
			break
		}
	}
}

// Get возвращает живой объект по ID.
func (r *Registry) Get(id types.ObjectID) (*Object, bool) {
	o, ok := r.objects[id]
	return o, ok
}

// AllActive возвращает снимок всех активных объектов: пулы в порядке
// видов, затем объекты вне пулов.
func (r *Registry) AllActive() []*Object {
	out := make([]*Object, 0, len(r.objects))
	for k := types.Kind(0); k < types.KindCount; k++ {
		if r.pools[k] != nil {
			out = append(out, r.pools[k].ActiveSnapshot()...)
		}
	}
	for _, o := range r.unpooled {
		if o.Active {
			out = append(out, o)
		}
	}
	return out
}

// ByKind возвращает снимок активных объектов вида в порядке активации.
func (r *Registry) ByKind(k types.Kind) []*Object {
	if k >= 0 && k < types.KindCount && r.pools[k] != nil {
		return r.pools[k].ActiveSnapshot()
	}
	var out []*Object
	for _, o := range r.unpooled {
		if o.Active && o.Kind == k {
			out = append(out, o)
		}
	}
	return out
}

// CountByKind возвращает число активных объектов вида.
func (r *Registry) CountByKind(k types.Kind) int {
	if k >= 0 && k < types.KindCount && r.pools[k] != nil {
		return r.pools[k].ActiveCount()
	}
	n := 0
	for _, o := range r.unpooled {
		if o.Active && o.Kind == k {
			n++
		}
	}
	return n
}

// InRadius возвращает активные объекты вида kind, центр которых лежит в
// радиусе radius от точки. Широкая фаза — пространственный хеш, точная —
// текущие координаты.
func (r *Registry) InRadius(x, y, radius float64, kind types.Kind) []*Object {
	ids := r.hash.QueryRadius(x, y, radius+broadPhaseSlack)
	out := make([]*Object, 0, len(ids))
	for _, id := range ids {
		o, ok := r.objects[id]
		if !ok || !o.Active || o.Kind != kind {
			continue
		}
		if o.DistTo(x, y) <= radius {
			out = append(out, o)
		}
	}
	return out
}

// ClosestTo возвращает ближайший к точке активный объект вида kind.
func (r *Registry) ClosestTo(x, y float64, kind types.Kind) *Object {
	var best *Object
	bestDist := math.MaxFloat64
	for _, o := range r.ByKind(kind) {
		d := o.DistTo(x, y)
		if d < bestDist {
			bestDist = d
			best = o
		}
	}
	return best
}

// Update — общий проход обновления: пулы в порядке видов, затем объекты
// вне пулов. Виды из skip пропускаются (снарядами владеет их система).
// После прохода перестраивается пространственный индекс.
func (r *Registry) Update(dt float64, skip ...types.Kind) {
	skipped := func(k types.Kind) bool {
		for _, s := range skip {
			if s == k {
				return true
			}
		}
		return false
	}

	for k := types.Kind(0); k < types.KindCount; k++ {
		if r.pools[k] == nil || skipped(k) {
			continue
		}
		for _, o := range r.pools[k].ActiveSnapshot() {
			o.Update(dt)
		}
	}
	for _, o := range append([]*Object(nil), r.unpooled...) {
		if o.Active && !skipped(o.Kind) {
			o.Update(dt)
		}
	}

	r.RefreshIndex()
}

// RefreshIndex перестраивает пространственный хеш по текущим позициям.
func (r *Registry) RefreshIndex() {
	r.hash.Clear()
	for _, o := range r.objects {
		if o.Active {
			r.hash.Insert(o.ID, o.X, o.Y, o.Radius)
		}
	}
}

// EndTick уплотняет внутренние структуры пулов.
func (r *Registry) EndTick() {
	for _, p := range r.pools {
		if p != nil {
			p.Compact()
		}
	}
}

// PoolStats возвращает счетчики пула вида (для наблюдения за давлением).
func (r *Registry) PoolStats(k types.Kind) PoolStats {
	if k >= 0 && k < types.KindCount && r.pools[k] != nil {
		return r.pools[k].Stats()
	}
	return PoolStats{}
}

// DeactivateAll принудительно уничтожает все активные объекты вида.
// Используется при остановке волн; состояние пулов остается корректным.
func (r *Registry) DeactivateAll(k types.Kind) {
	for _, o := range r.ByKind(k) {
		o.Destroy()
	}
}
