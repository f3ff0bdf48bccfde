// internal/defs/weapons.go
package defs

// EffectDefinition describes a status effect attached by direct hits.
type EffectDefinition struct {
	Type     EffectType `json:"type"`
	Duration float64    `json:"duration"`
	Factor   float64    `json:"factor"` // для SLOW: множитель скорости
	Dps      float64    `json:"dps"`    // для BURN: урон в секунду
}

// WeaponDefinition holds all the static data for a weapon module.
// Fields beyond the common block are meaningful only for the matching
// archetype; validation rejects definitions that omit required ones.
type WeaponDefinition struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Archetype WeaponArchetype `json:"archetype"`
	Damage   float64         `json:"damage"`
	Range    float64         `json:"range"`
	FireRate float64         `json:"fire_rate"` // выстрелов в секунду

	// PROJECTILE
	ProjectileSpeed float64 `json:"projectile_speed,omitempty"`
	AreaOfEffect    float64 `json:"area_of_effect,omitempty"`
	Piercing        bool    `json:"piercing,omitempty"`
	Homing          bool    `json:"homing,omitempty"`

	// CHAIN
	ChainRadius float64 `json:"chain_radius,omitempty"`

	// CONTINUOUS
	Mode ContinuousMode `json:"mode,omitempty"`

	Effect  *EffectDefinition `json:"effect,omitempty"`
	Visuals Visuals           `json:"visuals"`
}

// WeaponLibrary is the library of all weapon definitions, mapped by their ID.
var WeaponLibrary map[string]WeaponDefinition
