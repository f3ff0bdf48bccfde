// internal/defs/loader.go
package defs

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadAgentDefinitions reads the agent configuration file and populates the
// AgentLibrary. Validation failures here are fatal configuration errors:
// the simulation must not start with a broken library.
func LoadAgentDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read agent definitions file: %w", err)
	}

	var agentDefs []AgentDefinition
	if err := json.Unmarshal(file, &agentDefs); err != nil {
		return fmt.Errorf("failed to unmarshal agent definitions: %w", err)
	}

	lib := make(map[string]AgentDefinition)
	for _, def := range agentDefs {
		if err := validateAgent(def); err != nil {
			return fmt.Errorf("agent %q: %w", def.ID, err)
		}
		if _, dup := lib[def.ID]; dup {
			return fmt.Errorf("duplicate agent definition %q", def.ID)
		}
		lib[def.ID] = def
	}
	AgentLibrary = lib

	fmt.Printf("Loaded %d agent definitions\n", len(AgentLibrary))
	return nil
}

// LoadWeaponDefinitions reads the weapon configuration file and populates the
// WeaponLibrary.
func LoadWeaponDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read weapon definitions file: %w", err)
	}

	var weaponDefs []WeaponDefinition
	if err := json.Unmarshal(file, &weaponDefs); err != nil {
		return fmt.Errorf("failed to unmarshal weapon definitions: %w", err)
	}

	lib := make(map[string]WeaponDefinition)
	for _, def := range weaponDefs {
		if err := ValidateWeapon(def); err != nil {
			return fmt.Errorf("weapon %q: %w", def.ID, err)
		}
		if _, dup := lib[def.ID]; dup {
			return fmt.Errorf("duplicate weapon definition %q", def.ID)
		}
		lib[def.ID] = def
	}
	WeaponLibrary = lib

	fmt.Printf("Loaded %d weapon definitions\n", len(WeaponLibrary))
	return nil
}

func validateAgent(def AgentDefinition) error {
	switch def.Class {
	case ClassBasic, ClassFast, ClassTank, ClassSwarm, ClassStealth, ClassBoss:
	default:
		return fmt.Errorf("unknown class %q", def.Class)
	}
	if def.Health <= 0 {
		return fmt.Errorf("health must be positive, got %v", def.Health)
	}
	if def.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %v", def.Speed)
	}
	if def.Visuals.Radius <= 0 {
		return fmt.Errorf("visual radius must be positive, got %v", def.Visuals.Radius)
	}
	return nil
}

// ValidateWeapon проверяет согласованность полей определения с его архетипом.
func ValidateWeapon(def WeaponDefinition) error {
	if def.Damage <= 0 {
		return fmt.Errorf("damage must be positive, got %v", def.Damage)
	}
	if def.Range <= 0 {
		return fmt.Errorf("range must be positive, got %v", def.Range)
	}

	switch def.Archetype {
	case ArchetypeProjectile:
		if def.ProjectileSpeed <= 0 {
			return fmt.Errorf("projectile weapon needs positive projectile_speed")
		}
		if def.FireRate <= 0 {
			return fmt.Errorf("fire_rate must be positive, got %v", def.FireRate)
		}
	case ArchetypeChain, ArchetypeBurst:
		if def.FireRate <= 0 {
			return fmt.Errorf("fire_rate must be positive, got %v", def.FireRate)
		}
	case ArchetypeContinuous:
		// Непрерывное оружие не использует кулдаун, fire_rate игнорируется.
		if def.Mode != ModeBeam && def.Mode != ModeField {
			return fmt.Errorf("continuous weapon needs mode BEAM or FIELD, got %q", def.Mode)
		}
	default:
		return fmt.Errorf("unknown archetype %q", def.Archetype)
	}

	if def.Effect != nil {
		switch def.Effect.Type {
		case EffectSlow:
			if def.Effect.Factor <= 0 || def.Effect.Factor >= 1 {
				return fmt.Errorf("slow factor must be in (0,1), got %v", def.Effect.Factor)
			}
		case EffectBurn:
			if def.Effect.Dps <= 0 {
				return fmt.Errorf("burn dps must be positive, got %v", def.Effect.Dps)
			}
		default:
			return fmt.Errorf("unknown effect type %q", def.Effect.Type)
		}
		if def.Effect.Duration <= 0 {
			return fmt.Errorf("effect duration must be positive, got %v", def.Effect.Duration)
		}
	}
	return nil
}
