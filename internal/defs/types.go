// internal/defs/types.go
package defs

// WeaponArchetype defines the firing behavior of a weapon.
type WeaponArchetype string

const (
	ArchetypeProjectile WeaponArchetype = "PROJECTILE"
	ArchetypeChain      WeaponArchetype = "CHAIN"
	ArchetypeBurst      WeaponArchetype = "BURST"
	ArchetypeContinuous WeaponArchetype = "CONTINUOUS"
)

// ContinuousMode distinguishes beam weapons (single target) from field
// weapons (everything in range).
type ContinuousMode string

const (
	ModeBeam  ContinuousMode = "BEAM"
	ModeField ContinuousMode = "FIELD"
)

// AgentClass defines the behavior variant of an agent.
type AgentClass string

const (
	ClassBasic   AgentClass = "BASIC"
	ClassFast    AgentClass = "FAST"
	ClassTank    AgentClass = "TANK"
	ClassSwarm   AgentClass = "SWARM"
	ClassStealth AgentClass = "STEALTH"
	ClassBoss    AgentClass = "BOSS"
)

// EffectType defines a status effect a weapon can attach on hit.
type EffectType string

const (
	EffectSlow EffectType = "SLOW"
	EffectBurn EffectType = "BURN"
)

// Visuals holds presentation hints consumed by the debug renderer.
type Visuals struct {
	Color  [4]uint8 `json:"color"`
	Radius float64  `json:"radius"`
}
