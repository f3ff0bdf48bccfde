package system

import (
	"math"
	"testing"

	"go-base-defense/internal/defs"
	"go-base-defense/internal/event"
	"go-base-defense/internal/sim"
	"go-base-defense/internal/types"
)

func stubWeaponLibrary() {
	defs.WeaponLibrary = map[string]defs.WeaponDefinition{
		"WEAPON_CANNON": {
			ID: "WEAPON_CANNON", Archetype: defs.ArchetypeProjectile,
			Damage: 20, Range: 300, FireRate: 0.5, ProjectileSpeed: 400,
		},
		"WEAPON_TESLA": {
			ID: "WEAPON_TESLA", Archetype: defs.ArchetypeChain,
			Damage: 15, Range: 300, FireRate: 1, ChainRadius: 120,
		},
		"WEAPON_NOVA": {
			ID: "WEAPON_NOVA", Archetype: defs.ArchetypeBurst,
			Damage: 12, Range: 200, FireRate: 1,
		},
		"WEAPON_LASER": {
			ID: "WEAPON_LASER", Archetype: defs.ArchetypeContinuous,
			Damage: 30, Range: 300, Mode: defs.ModeBeam,
		},
		"WEAPON_AURA": {
			ID: "WEAPON_AURA", Archetype: defs.ArchetypeContinuous,
			Damage: 10, Range: 150, Mode: defs.ModeField,
		},
		"WEAPON_FROST": {
			ID: "WEAPON_FROST", Archetype: defs.ArchetypeChain,
			Damage: 5, Range: 300, FireRate: 1, ChainRadius: 120,
			Effect: &defs.EffectDefinition{Type: defs.EffectSlow, Duration: 2, Factor: 0.5},
		},
	}
}

type combatFixture struct {
	registry  *sim.Registry
	engine    *CombatEngine
	effects   *StatusEffectSystem
	structure *sim.Object
}

func newCombatFixture(t *testing.T) *combatFixture {
	t.Helper()
	stubWeaponLibrary()

	registry := sim.NewRegistry(map[types.Kind]sim.PoolConfig{
		types.KindAgent:      {InitialSize: 0, MaxSize: 64},
		types.KindProjectile: {InitialSize: 0, MaxSize: 64},
	}, 64)
	dispatcher := event.NewDispatcher()
	structure := registry.CreateUnpooled(sim.InitData{
		Kind: types.KindStructure, X: 0, Y: 0, Health: 500, Radius: 10,
	})
	effects := NewStatusEffectSystem()
	projectiles := NewProjectileSystem(registry, dispatcher, effects)
	engine := NewCombatEngine(registry, dispatcher, effects, projectiles,
		structure, types.TargetNearest)
	return &combatFixture{
		registry:  registry,
		engine:    engine,
		effects:   effects,
		structure: structure,
	}
}

func (f *combatFixture) addAgent(x, y, health float64) *sim.Object {
	o := f.registry.Create(sim.InitData{
		Kind: types.KindAgent, X: x, Y: y, Health: health, Radius: 8,
	})
	return o
}

// invisibleBehavior прячет объект от выбора цели.
type invisibleBehavior struct{}

func (invisibleBehavior) Update(*sim.Object, float64) {}
func (invisibleBehavior) Teardown(*sim.Object)        {}
func (invisibleBehavior) Targetable() bool            { return false }

func TestSelectTargetPolicies(t *testing.T) {
	f := newCombatFixture(t)
	near := f.addAgent(50, 0, 100)
	mid := f.addAgent(100, 0, 30)
	far := f.addAgent(150, 0, 200)
	near.VelX, near.VelY = 10, 0
	mid.VelX, mid.VelY = 60, 0
	far.VelX, far.VelY = 30, 0
	f.registry.RefreshIndex()

	cases := []struct {
		mode types.TargetingMode
		want *sim.Object
	}{
		{types.TargetNearest, near},
		{types.TargetFurthest, far},
		{types.TargetWeakest, mid},
		{types.TargetStrongest, far},
		{types.TargetFastest, mid},
		{types.TargetSlowest, near},
	}
	for _, tc := range cases {
		f.engine.SetTargetingMode(tc.mode)
		if got := f.engine.selectTarget(300); got != tc.want {
			t.Errorf("mode %s picked agent at x=%v, want x=%v", tc.mode, got.X, tc.want.X)
		}
	}
}

func TestSelectTargetFirstEncounteredWinsTies(t *testing.T) {
	f := newCombatFixture(t)
	first := f.addAgent(60, 0, 100)
	f.addAgent(0, 60, 100) // та же дистанция

	if got := f.engine.selectTarget(300); got != first {
		t.Fatal("tie must resolve to the first-activated agent")
	}
}

func TestSelectTargetRespectsRangeAndCloak(t *testing.T) {
	f := newCombatFixture(t)
	f.addAgent(500, 0, 100) // вне дальности

	if got := f.engine.selectTarget(300); got != nil {
		t.Fatal("out-of-range agent must not be selected")
	}

	cloaked := f.registry.Create(sim.InitData{
		Kind: types.KindAgent, X: 50, Y: 0, Health: 100, Radius: 8,
		Behavior: invisibleBehavior{},
	})
	if got := f.engine.selectTarget(300); got != nil {
		t.Fatal("cloaked agent must not be selected")
	}
	_ = cloaked
}

func TestFireRateGating(t *testing.T) {
	f := newCombatFixture(t)
	f.addAgent(100, 0, 1e6)
	f.registry.RefreshIndex()

	if err := f.engine.ActivateWeapon("WEAPON_CANNON"); err != nil {
		t.Fatal(err)
	}

	// fire_rate 0.5 — не чаще одного выстрела в 2 секунды.
	for i := 0; i < 30; i++ { // 3.0 секунды
		f.engine.Update(0.1)
	}
	if got := f.engine.Stats().ShotsFired; got != 2 {
		t.Fatalf("shots in 3s = %d, want 2 at 0.5/s", got)
	}
}

func TestFireHoldsWhenNoTarget(t *testing.T) {
	f := newCombatFixture(t)
	if err := f.engine.ActivateWeapon("WEAPON_CANNON"); err != nil {
		t.Fatal(err)
	}

	f.engine.Update(5)
	if got := f.engine.Stats().ShotsFired; got != 0 {
		t.Fatalf("shots with empty field = %d, want 0", got)
	}

	// Цель появилась: готовое оружие стреляет немедленно.
	f.addAgent(100, 0, 100)
	f.registry.RefreshIndex()
	f.engine.Update(0.001)
	if got := f.engine.Stats().ShotsFired; got != 1 {
		t.Fatalf("ready weapon must fire at once, shots = %d", got)
	}
}

func TestChainHitsAtMostFiveDistinct(t *testing.T) {
	f := newCombatFixture(t)
	// Восемь агентов цепочкой с шагом 60 — в радиусе цепи 120 друг от друга.
	agents := make([]*sim.Object, 0, 8)
	for i := 0; i < 8; i++ {
		agents = append(agents, f.addAgent(60+float64(i)*60, 0, 100))
	}
	f.registry.RefreshIndex()

	if err := f.engine.ActivateWeapon("WEAPON_TESLA"); err != nil {
		t.Fatal(err)
	}
	f.engine.Update(0.01)

	damaged := 0
	for _, a := range agents {
		switch a.Health {
		case 100:
		case 85:
			damaged++
		default:
			t.Fatalf("agent hit more than once: health %v", a.Health)
		}
	}
	if damaged != 5 {
		t.Fatalf("chain damaged %d agents, want exactly 5", damaged)
	}
}

func TestChainStopsWhenNoNeighbor(t *testing.T) {
	f := newCombatFixture(t)
	a := f.addAgent(60, 0, 100)
	b := f.addAgent(110, 0, 100)
	lone := f.addAgent(110, 500, 100) // дальше радиуса цепи от обоих
	f.registry.RefreshIndex()

	if err := f.engine.ActivateWeapon("WEAPON_TESLA"); err != nil {
		t.Fatal(err)
	}
	f.engine.Update(0.01)

	if a.Health != 85 || b.Health != 85 {
		t.Fatalf("chain pair must both be hit: %v, %v", a.Health, b.Health)
	}
	if lone.Health != 100 {
		t.Fatal("agent beyond chain radius must be untouched")
	}
}

func TestBurstHitsEveryoneInRangeIncludingCloaked(t *testing.T) {
	f := newCombatFixture(t)
	in := f.addAgent(100, 0, 100)
	out := f.addAgent(400, 0, 100)
	cloaked := f.registry.Create(sim.InitData{
		Kind: types.KindAgent, X: 0, Y: 120, Health: 100, Radius: 8,
		Behavior: invisibleBehavior{},
	})
	f.registry.RefreshIndex()

	if err := f.engine.ActivateWeapon("WEAPON_NOVA"); err != nil {
		t.Fatal(err)
	}
	f.engine.Update(0.01)

	if in.Health != 88 {
		t.Fatalf("in-range agent health = %v, want 88", in.Health)
	}
	if cloaked.Health != 88 {
		t.Fatalf("area damage must reach cloaked agents, health = %v", cloaked.Health)
	}
	if out.Health != 100 {
		t.Fatal("agent outside burst range must be untouched")
	}
}

func TestBeamDamageScalesWithDt(t *testing.T) {
	f := newCombatFixture(t)
	target := f.addAgent(100, 0, 100)
	f.registry.RefreshIndex()

	if err := f.engine.ActivateWeapon("WEAPON_LASER"); err != nil {
		t.Fatal(err)
	}
	f.engine.Update(0.1)

	if math.Abs(target.Health-97) > 1e-9 {
		t.Fatalf("health after 0.1s of 30dps beam = %v, want 97", target.Health)
	}

	// Непрерывное оружие не копит кулдаун: каждый тик наносит damage*dt.
	f.engine.Update(0.1)
	if math.Abs(target.Health-94) > 1e-9 {
		t.Fatalf("health after second tick = %v, want 94", target.Health)
	}
}

func TestFieldBurnsAllInRange(t *testing.T) {
	f := newCombatFixture(t)
	a := f.addAgent(50, 0, 100)
	b := f.addAgent(0, 100, 100)
	far := f.addAgent(300, 0, 100)
	f.registry.RefreshIndex()

	if err := f.engine.ActivateWeapon("WEAPON_AURA"); err != nil {
		t.Fatal(err)
	}
	f.engine.Update(0.5)

	if a.Health != 95 || b.Health != 95 {
		t.Fatalf("field must damage all in range: %v, %v", a.Health, b.Health)
	}
	if far.Health != 100 {
		t.Fatal("field must not reach beyond its range")
	}
}

func TestChainAttachesEffect(t *testing.T) {
	f := newCombatFixture(t)
	target := f.addAgent(100, 0, 100)
	f.registry.RefreshIndex()

	if err := f.engine.ActivateWeapon("WEAPON_FROST"); err != nil {
		t.Fatal(err)
	}
	f.engine.Update(0.01)

	if target.SpeedScale != 0.5 {
		t.Fatalf("slow effect must set SpeedScale, got %v", target.SpeedScale)
	}
}

func TestStrikeAtHitsArea(t *testing.T) {
	f := newCombatFixture(t)
	in := f.addAgent(200, 0, 100)
	out := f.addAgent(260, 0, 100)
	f.registry.RefreshIndex()

	f.engine.StrikeAt(210, 0)

	if in.Health != 40 {
		t.Fatalf("struck agent health = %v, want 40", in.Health)
	}
	if out.Health != 100 {
		t.Fatal("agent outside strike radius must be untouched")
	}
}

func TestWeaponActivation(t *testing.T) {
	f := newCombatFixture(t)

	if err := f.engine.ActivateWeapon("WEAPON_NONSENSE"); err == nil {
		t.Fatal("unknown weapon must be an error")
	}
	if err := f.engine.ActivateWeapon("WEAPON_CANNON"); err != nil {
		t.Fatal(err)
	}
	// Повторная активация — no-op, не дубль.
	if err := f.engine.ActivateWeapon("WEAPON_CANNON"); err != nil {
		t.Fatal(err)
	}
	if got := len(f.engine.Weapons()); got != 1 {
		t.Fatalf("weapons = %d, want 1", got)
	}

	f.engine.DeactivateWeapon("WEAPON_CANNON")
	f.engine.DeactivateWeapon("WEAPON_CANNON") // no-op
	if got := len(f.engine.Weapons()); got != 0 {
		t.Fatalf("weapons after deactivate = %d, want 0", got)
	}
}
