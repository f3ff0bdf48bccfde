package sim

import (
	"testing"

	"go-base-defense/internal/types"
)

type recordingBehavior struct {
	updates   int
	teardowns int
}

func (b *recordingBehavior) Update(o *Object, dt float64) { b.updates++ }
func (b *recordingBehavior) Teardown(o *Object)           { b.teardowns++ }

func TestTakeDamageKillsAtZero(t *testing.T) {
	o := &Object{}
	o.Reset(InitData{Kind: types.KindAgent, Health: 30})
	o.ID = 1

	o.TakeDamage(10, "w1")
	if !o.Active || o.Health != 20 {
		t.Fatalf("after 10 damage: active=%v health=%v", o.Active, o.Health)
	}

	o.TakeDamage(25, "w2")
	if o.Active {
		t.Fatal("object must deactivate the moment health reaches zero")
	}
	if o.Health != 0 {
		t.Fatalf("health must clamp to zero, got %v", o.Health)
	}
	if !o.Killed() {
		t.Fatal("damage death must set killed")
	}
	if o.LastHitBy != "w2" {
		t.Fatalf("LastHitBy = %q, want w2", o.LastHitBy)
	}
}

func TestTakeDamageGuards(t *testing.T) {
	o := &Object{}
	o.Reset(InitData{Kind: types.KindAgent, Health: 30})

	o.TakeDamage(-5, "w")
	o.TakeDamage(0, "w")
	if o.Health != 30 {
		t.Fatalf("non-positive damage must be ignored, health=%v", o.Health)
	}

	o.Destroy()
	o.TakeDamage(10, "w")
	if o.Health != 30 {
		t.Fatal("damage to a destroyed object must be a no-op")
	}
}

func TestDestroyIdempotentAndOrdered(t *testing.T) {
	b := &recordingBehavior{}
	o := &Object{}
	o.Reset(InitData{Kind: types.KindAgent, Health: 10, Behavior: b})

	calls := 0
	o.OnDestroy(func(*Object) { calls++ })

	o.Destroy()
	o.Destroy() // повторный вызов — no-op

	if calls != 1 {
		t.Fatalf("destroy callbacks ran %d times, want 1", calls)
	}
	if b.teardowns != 1 {
		t.Fatalf("teardown ran %d times, want 1", b.teardowns)
	}
}

func TestDestroyWithoutDamageIsNotAKill(t *testing.T) {
	o := &Object{}
	o.Reset(InitData{Kind: types.KindAgent, Health: 10})
	o.Destroy()
	if o.Killed() {
		t.Fatal("forced destroy must not count as a kill")
	}
}

func TestResetClearsPreviousOwner(t *testing.T) {
	o := &Object{}
	o.Reset(InitData{Kind: types.KindAgent, Health: 10})
	o.OnDestroy(func(*Object) { t.Fatal("stale callback fired after reset") })
	o.OnDamage(func(*Object, float64, string) { t.Fatal("stale damage callback fired") })
	o.SpeedScale = 0.5
	o.Age = 3
	o.TakeDamage(10, "w") // killed + destroyed

	o.Reset(InitData{Kind: types.KindAgent, X: 1, Y: 2, Health: 40, Radius: 7})
	if !o.Active || o.Destroyed() || o.Killed() {
		t.Fatalf("reset must revive: active=%v destroyed=%v killed=%v",
			o.Active, o.Destroyed(), o.Killed())
	}
	if o.Age != 0 || o.SpeedScale != 1 || o.LastHitBy != "" {
		t.Fatalf("reset left stale state: age=%v scale=%v hitBy=%q",
			o.Age, o.SpeedScale, o.LastHitBy)
	}
	if o.Health != 40 || o.MaxHealth != 40 {
		t.Fatalf("health = %v/%v, want 40/40", o.Health, o.MaxHealth)
	}

	// Колбеки прошлого владельца не должны пережить Reset.
	o.TakeDamage(40, "w2")
}

func TestUpdateIntegratesVelocity(t *testing.T) {
	b := &recordingBehavior{}
	o := &Object{}
	o.Reset(InitData{Kind: types.KindAgent, Health: 10, VelX: 10, VelY: -20, Behavior: b})

	o.Update(0.5)
	if o.X != 5 || o.Y != -10 {
		t.Fatalf("position = (%v, %v), want (5, -10)", o.X, o.Y)
	}
	if o.Age != 0.5 {
		t.Fatalf("age = %v, want 0.5", o.Age)
	}
	if b.updates != 1 {
		t.Fatalf("behavior updates = %d, want 1", b.updates)
	}

	o.Destroy()
	o.Update(0.5)
	if b.updates != 1 {
		t.Fatal("inactive object must not update")
	}
}
