// internal/sim/pool.go
package sim

import (
	"log"

	"go-base-defense/internal/types"
)

// PoolConfig задает границы пула одного вида объектов.
type PoolConfig struct {
	InitialSize  int
	MaxSize      int
	GrowthFactor float64
}

// PoolStats — счетчики для наблюдения за давлением на пул (§ настройка
// емкости). Вытеснения — не ошибка, но их рост означает тесный пул.
type PoolStats struct {
	ActiveCount int
	FreeCount   int
	Created     uint64
	Reused      uint64
	Evicted     uint64
	Abandoned   uint64
	Deferred    uint64
}

// fifoEntry — запись очереди активации. Записи могут протухать: объект
// освободили и активировали снова. Протухшие записи отсеиваются по seq.
type fifoEntry struct {
	obj *Object
	seq uint64
}

// Pool — переиспользующий аллокатор объектов одного вида. Свободный
// список плюс очередь активных в порядке активации; при исчерпании
// емкости принудительно вытесняется самый старый активный объект.
//
// Вытеснение — критическая секция без реентерабельности: destroy-колбеки
// жертвы могут дергать пул, такие запросы откладываются и выполняются
// после завершения вытеснения (см. DESIGN.md).
type Pool struct {
	kind types.Kind
	cfg  PoolConfig

	free   []*Object
	active map[types.ObjectID]*Object
	fifo   []fifoEntry

	// nextID выдает идентификаторы новым владельцам; назначается
	// реестром, у автономного пула — внутренний счетчик.
	nextID  func() types.ObjectID
	localID uint64

	nextSeq uint64

	evicting *Object  // жертва текущего вытеснения
	locked   bool     // внутри критической секции вытеснения
	deferred []func() // отложенные release-запросы

	created   uint64
	reused    uint64
	evicted   uint64
	abandoned uint64
	deferredN uint64
}

// NewPool создает пул и преаллоцирует InitialSize объектов. nextID может
// быть nil — тогда пул нумерует объекты сам.
func NewPool(kind types.Kind, cfg PoolConfig, nextID func() types.ObjectID) *Pool {
	if cfg.MaxSize <= 0 {
		panic("pool: MaxSize must be positive")
	}
	if cfg.InitialSize > cfg.MaxSize {
		cfg.InitialSize = cfg.MaxSize
	}
	if cfg.GrowthFactor < 1 {
		cfg.GrowthFactor = 1
	}

	p := &Pool{
		kind:   kind,
		cfg:    cfg,
		active: make(map[types.ObjectID]*Object),
		nextID: nextID,
	}
	if p.nextID == nil {
		p.nextID = func() types.ObjectID {
			p.localID++
			return types.ObjectID(p.localID)
		}
	}
	for i := 0; i < cfg.InitialSize; i++ {
		p.free = append(p.free, &Object{Kind: kind})
		p.created++
	}
	return p
}

// Acquire выдает объект: из свободного списка, новым созданием в пределах
// MaxSize, либо вытеснением самого старого активного. Объект возвращается
// уже прошедшим Reset. ID объекту назначает реестр.
//
// Вложенный Acquire, которому самому потребовалось бы вытеснение,
// отклоняется (nil): выполнять два вытеснения одновременно нельзя.
func (p *Pool) Acquire(init InitData) *Object {
	var obj *Object

	switch {
	case len(p.free) > 0:
		obj = p.free[len(p.free)-1]
		p.free = p.free[:len(p.free)-1]
		p.reused++
	case uint64(len(p.active))+uint64(len(p.free)) < uint64(p.cfg.MaxSize):
		obj = &Object{Kind: p.kind}
		p.created++
	default:
		if p.locked {
			p.deferredN++
			log.Printf("pool %s: nested acquire during eviction dropped", p.kind)
			return nil
		}
		obj = p.evictOldest()
		if obj == nil {
			// Емкость исчерпана, а активных нет — значит MaxSize == 0
			// или внутренняя рассинхронизация.
			log.Printf("pool %s: exhausted with no eviction candidate", p.kind)
			return nil
		}
	}

	obj.Reset(init)
	obj.ID = p.nextID()
	p.activate(obj)
	return obj
}

// activate ставит объект в учет активных и в очередь активации.
func (p *Pool) activate(obj *Object) {
	p.nextSeq++
	obj.seq = p.nextSeq
	p.active[obj.ID] = obj
	p.fifo = append(p.fifo, fifoEntry{obj: obj, seq: obj.seq})
}

// Release возвращает объект в свободный список. Во время вытеснения
// запрос откладывается; освобождение самой жертвы поглощается, потому что
// она будет немедленно переиспользована новым владельцем.
func (p *Pool) Release(obj *Object) {
	if obj == nil || obj.Kind != p.kind {
		return
	}
	if obj == p.evicting {
		return
	}
	if p.locked {
		p.deferredN++
		p.deferred = append(p.deferred, func() { p.Release(obj) })
		return
	}

	if _, ok := p.active[obj.ID]; !ok {
		return
	}
	delete(p.active, obj.ID)
	obj.Active = false

	// Мягкий потолок простаивающей памяти: половина MaxSize.
	if len(p.free) < p.cfg.MaxSize/2 {
		p.free = append(p.free, obj)
	} else {
		p.abandoned++
	}
}

// evictOldest уничтожает самый старый активный объект и возвращает его
// для переиспользования. Детерминизм: порядок активации, не порядок
// обхода map.
func (p *Pool) evictOldest() *Object {
	var victim *Object
	for len(p.fifo) > 0 {
		head := p.fifo[0]
		p.fifo = p.fifo[1:]
		// Запись протухла, если объект с тех пор переактивировался
		// или уже неактивен.
		if head.obj.seq == head.seq && head.obj.Active {
			victim = head.obj
			break
		}
	}
	if victim == nil {
		return nil
	}

	p.locked = true
	p.evicting = victim
	victim.Destroy()
	p.evicting = nil
	p.locked = false
	p.evicted++

	delete(p.active, victim.ID)

	// Отложенные запросы выполняются уже вне критической секции.
	pending := p.deferred
	p.deferred = nil
	for _, op := range pending {
		op()
	}
	return victim
}

// ActiveSnapshot возвращает копию списка активных объектов в порядке
// активации. Снимок безопасен для итерации с уничтожением по пути.
func (p *Pool) ActiveSnapshot() []*Object {
	out := make([]*Object, 0, len(p.active))
	for _, e := range p.fifo {
		if e.obj.seq == e.seq && e.obj.Active {
			out = append(out, e.obj)
		}
	}
	return out
}

// ActiveCount возвращает число активных объектов.
func (p *Pool) ActiveCount() int { return len(p.active) }

// Compact отсеивает протухшие записи из очереди активации. Вызывается в
// конце тика, чтобы очередь не росла безгранично.
func (p *Pool) Compact() {
	live := p.fifo[:0]
	for _, e := range p.fifo {
		if e.obj.seq == e.seq && e.obj.Active {
			live = append(live, e)
		}
	}
	p.fifo = live
}

// Stats возвращает счетчики пула.
func (p *Pool) Stats() PoolStats {
	return PoolStats{
		ActiveCount: len(p.active),
		FreeCount:   len(p.free),
		Created:     p.created,
		Reused:      p.reused,
		Evicted:     p.evicted,
		Abandoned:   p.abandoned,
		Deferred:    p.deferredN,
	}
}
