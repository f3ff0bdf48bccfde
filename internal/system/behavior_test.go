package system

import (
	"testing"

	"go-base-defense/internal/defs"
	"go-base-defense/internal/sim"
	"go-base-defense/internal/types"
)

func newStructure() *sim.Object {
	s := &sim.Object{}
	s.Reset(sim.InitData{Kind: types.KindStructure, X: 0, Y: 0, Health: 500, Radius: 28})
	s.ID = 1
	return s
}

func newBehaviorAgent(class defs.AgentClass, structure *sim.Object, x, y float64) *sim.Object {
	o := &sim.Object{}
	o.Reset(sim.InitData{
		Kind: types.KindAgent, X: x, Y: y, Health: 50, Radius: 10,
		Behavior: newAgentBehavior(class, structure, 10, 40),
	})
	o.ID = 2
	return o
}

func TestWalkerMovesTowardStructure(t *testing.T) {
	s := newStructure()
	o := newBehaviorAgent(defs.ClassBasic, s, 400, 0)

	o.Update(0.1)
	if o.VelX >= 0 {
		t.Fatalf("agent right of the structure must move left, velX=%v", o.VelX)
	}
	if o.VelY != 0 {
		t.Fatalf("straight approach must have no Y drift, velY=%v", o.VelY)
	}
}

func TestContactDamageAndLeak(t *testing.T) {
	s := newStructure()
	o := newBehaviorAgent(defs.ClassBasic, s, 30, 0) // радиусы перекрываются

	o.Update(0.01)

	if s.Health != 490 {
		t.Fatalf("structure health = %v, want 490", s.Health)
	}
	if o.Active {
		t.Fatal("agent must despawn on contact")
	}
	if o.Killed() {
		t.Fatal("reaching the structure is a leak, not a kill")
	}
	r, ok := o.Behavior().(interface{ ReachedStructure() bool })
	if !ok || !r.ReachedStructure() {
		t.Fatal("behavior must report the leak")
	}
}

func TestSlowEffectScalesApproachSpeed(t *testing.T) {
	s := newStructure()
	o := newBehaviorAgent(defs.ClassBasic, s, 400, 0)

	o.Update(0.01)
	full := o.Speed()

	o.SpeedScale = 0.5
	o.Update(0.01)
	if got := o.Speed(); got >= full {
		t.Fatalf("slowed agent speed = %v, full = %v", got, full)
	}
}

func TestSwarmBursts(t *testing.T) {
	s := newStructure()
	o := newBehaviorAgent(defs.ClassSwarm, s, 1000, 0)

	o.Update(0.1)
	calm := o.Speed()

	// Пересекаем порог рывка.
	for i := 0; i < 26; i++ {
		o.Update(0.1)
	}
	if got := o.Speed(); got <= calm*2 {
		t.Fatalf("bursting swarm speed = %v, calm = %v", got, calm)
	}
}

func TestStealthCloakCycles(t *testing.T) {
	s := newStructure()
	o := newBehaviorAgent(defs.ClassStealth, s, 1000, 0)

	if !o.Targetable() {
		t.Fatal("stealth agent starts visible")
	}
	for i := 0; i < 16; i++ { // 1.6с — за порогом видимости
		o.Update(0.1)
	}
	if o.Targetable() {
		t.Fatal("stealth agent must cloak after its visible window")
	}
	for i := 0; i < 21; i++ { // еще 2.1с — маскировка спала
		o.Update(0.1)
	}
	if !o.Targetable() {
		t.Fatal("cloak must wear off")
	}
}

func TestBossRegenerates(t *testing.T) {
	s := newStructure()
	o := newBehaviorAgent(defs.ClassBoss, s, 1000, 0)
	o.TakeDamage(30, "w")

	for i := 0; i < 51; i++ { // 5.1с — интервал регенерации пройден
		o.Update(0.1)
	}
	if o.Health <= 20 {
		t.Fatalf("boss must regenerate, health = %v", o.Health)
	}
	if o.Health > o.MaxHealth {
		t.Fatal("regeneration must clamp at max health")
	}
}

func TestBehaviorFallbackToWalker(t *testing.T) {
	s := newStructure()
	o := newBehaviorAgent(defs.ClassFast, s, 400, 0)
	o2 := newBehaviorAgent(defs.ClassTank, s, 400, 0)

	o.Update(0.1)
	o2.Update(0.1)
	if o.VelX >= 0 || o2.VelX >= 0 {
		t.Fatal("fast and tank classes use plain walker movement")
	}
}
