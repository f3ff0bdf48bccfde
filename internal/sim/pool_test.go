package sim

import (
	"testing"

	"go-base-defense/internal/types"
)

func agentInit() InitData {
	return InitData{Kind: types.KindAgent, Health: 10}
}

func TestPoolReusesReleasedObjects(t *testing.T) {
	p := NewPool(types.KindAgent, PoolConfig{InitialSize: 2, MaxSize: 8}, nil)

	a := p.Acquire(agentInit())
	firstID := a.ID
	a.Destroy()
	p.Release(a)

	b := p.Acquire(agentInit())
	if b != a {
		t.Fatal("released object must be reused before allocating new ones")
	}
	if b.ID == firstID {
		t.Fatal("reused object must get a fresh ID")
	}
	if !b.Active || b.Destroyed() {
		t.Fatal("reused object must come back alive")
	}
}

func TestPoolBoundNeverExceeded(t *testing.T) {
	const maxSize = 4
	p := NewPool(types.KindAgent, PoolConfig{InitialSize: 0, MaxSize: maxSize}, nil)

	for i := 0; i < 20; i++ {
		if obj := p.Acquire(agentInit()); obj == nil {
			t.Fatalf("acquire %d returned nil", i)
		}
		if got := p.Stats(); got.ActiveCount+got.FreeCount > maxSize {
			t.Fatalf("pool exceeded bound: %+v", got)
		}
	}
	if p.ActiveCount() != maxSize {
		t.Fatalf("active = %d, want %d", p.ActiveCount(), maxSize)
	}
}

func TestPoolEvictsOldestDeterministically(t *testing.T) {
	p := NewPool(types.KindAgent, PoolConfig{InitialSize: 0, MaxSize: 2}, nil)

	a := p.Acquire(agentInit())
	b := p.Acquire(agentInit())

	c := p.Acquire(agentInit()) // вытесняет a — самого старого
	if a.Active {
		t.Fatal("oldest active object must be evicted first")
	}
	if !b.Active || !c.Active {
		t.Fatal("younger objects must survive the eviction")
	}
	if c != a {
		t.Fatal("evicted object must be recycled for the new acquire")
	}

	d := p.Acquire(agentInit()) // теперь самый старый — b
	if b.Active {
		t.Fatal("second eviction must take the next oldest")
	}
	if d != b {
		t.Fatal("second eviction must recycle b")
	}
}

func TestPoolEvictionRunsDestroyCallbacks(t *testing.T) {
	p := NewPool(types.KindAgent, PoolConfig{InitialSize: 0, MaxSize: 1}, nil)

	a := p.Acquire(agentInit())
	evicted := false
	a.OnDestroy(func(o *Object) { evicted = true })

	p.Acquire(agentInit())
	if !evicted {
		t.Fatal("eviction must run the victim's destroy callbacks")
	}
}

func TestPoolNestedAcquireDuringEvictionRejected(t *testing.T) {
	p := NewPool(types.KindAgent, PoolConfig{InitialSize: 0, MaxSize: 1}, nil)

	a := p.Acquire(agentInit())
	var nested *Object
	a.OnDestroy(func(o *Object) {
		// Внутри вытеснения пул заблокирован: второй acquire, которому
		// самому нужно вытеснение, обязан быть отклонен.
		nested = p.Acquire(agentInit())
	})

	b := p.Acquire(agentInit())
	if nested != nil {
		t.Fatal("nested acquire requiring eviction must return nil")
	}
	if b == nil || !b.Active {
		t.Fatal("outer acquire must still succeed")
	}
	if got := p.Stats(); got.ActiveCount != 1 {
		t.Fatalf("pool must stay consistent, stats: %+v", got)
	}
}

func TestPoolReleaseDuringEvictionDeferred(t *testing.T) {
	p := NewPool(types.KindAgent, PoolConfig{InitialSize: 0, MaxSize: 2}, nil)

	a := p.Acquire(agentInit())
	b := p.Acquire(agentInit())

	a.OnDestroy(func(o *Object) {
		// Колбек жертвы освобождает другой объект: запрос должен быть
		// отложен и выполнен после завершения вытеснения.
		b.Destroy()
		p.Release(b)
	})

	c := p.Acquire(agentInit())
	if c == nil {
		t.Fatal("acquire with deferred release must succeed")
	}
	if got := p.Stats(); got.ActiveCount != 1 {
		t.Fatalf("b must end up released, stats: %+v", got)
	}
	if got := p.Stats(); got.Deferred == 0 {
		t.Fatalf("deferred counter must grow, stats: %+v", got)
	}
}

func TestPoolFreeListSoftCap(t *testing.T) {
	const maxSize = 8
	p := NewPool(types.KindAgent, PoolConfig{InitialSize: 0, MaxSize: maxSize}, nil)

	objs := make([]*Object, 0, maxSize)
	for i := 0; i < maxSize; i++ {
		objs = append(objs, p.Acquire(agentInit()))
	}
	for _, o := range objs {
		o.Destroy()
		p.Release(o)
	}

	got := p.Stats()
	if got.FreeCount > maxSize/2 {
		t.Fatalf("free list must be capped at MaxSize/2, stats: %+v", got)
	}
	if got.Abandoned != maxSize-maxSize/2 {
		t.Fatalf("abandoned = %d, want %d", got.Abandoned, maxSize-maxSize/2)
	}
}

func TestPoolActiveSnapshotOrder(t *testing.T) {
	p := NewPool(types.KindAgent, PoolConfig{InitialSize: 0, MaxSize: 8}, nil)

	a := p.Acquire(agentInit())
	b := p.Acquire(agentInit())
	c := p.Acquire(agentInit())

	b.Destroy()
	p.Release(b)
	p.Compact()

	snap := p.ActiveSnapshot()
	if len(snap) != 2 || snap[0] != a || snap[1] != c {
		t.Fatalf("snapshot must keep activation order, got %d entries", len(snap))
	}
}

func TestPoolIgnoresForeignKind(t *testing.T) {
	p := NewPool(types.KindAgent, PoolConfig{InitialSize: 0, MaxSize: 4}, nil)
	foreign := &Object{Kind: types.KindProjectile}

	p.Release(foreign) // no-op
	if got := p.Stats(); got.FreeCount != 0 {
		t.Fatalf("foreign release must be ignored, stats: %+v", got)
	}
}
