// internal/defs/agents.go
package defs

// AgentDefinition holds all the static data for a specific type of agent.
type AgentDefinition struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Class   AgentClass `json:"class"`
	Health  float64    `json:"health"`
	Speed   float64    `json:"speed"`
	Damage  float64    `json:"damage"` // контактный урон по структуре
	Reward  float64    `json:"reward"`
	Visuals Visuals    `json:"visuals"`
}

// AgentLibrary is the library of all agent definitions, mapped by their ID.
var AgentLibrary map[string]AgentDefinition

// Идентификаторы, на которые ссылается генератор волн.
const (
	AgentBasic   = "AGENT_BASIC"
	AgentFast    = "AGENT_FAST"
	AgentTank    = "AGENT_TANK"
	AgentSwarm   = "AGENT_SWARM"
	AgentStealth = "AGENT_STEALTH"
	AgentBoss    = "AGENT_BOSS"
)
