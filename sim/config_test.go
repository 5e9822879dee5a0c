package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAgentConfig_FieldEquivalence(t *testing.T) {
	got := NewAgentConfig(100, 2, 0.5)
	want := AgentConfig{MaxHealth: 100, HealthDecayRate: 2, DecisionInterval: 0.5}
	assert.Equal(t, want, got)
}

func TestNewQueenConfig_FieldEquivalence(t *testing.T) {
	got := NewQueenConfig(3, 40, 0.25)
	want := QueenConfig{NestInterval: 3, MinHealthToNest: 40, NestCostFraction: 0.25}
	assert.Equal(t, want, got)
}

func TestNewEvolutionConfig_FieldEquivalence(t *testing.T) {
	got := NewEvolutionConfig(15, 50, 0.3, 0.2, 3)
	want := EvolutionConfig{
		PopulationSize:     15,
		GenerationDuration: 50,
		MutationChance:     0.3,
		MutationAmount:     0.2,
		EliteCount:         3,
	}
	assert.Equal(t, want, got)
}

func TestNewSpawnConfig_FieldEquivalence(t *testing.T) {
	got := NewSpawnConfig(GridPos{X: 1, Z: 2}, 4, 30, 8)
	want := SpawnConfig{NestOrigin: GridPos{X: 1, Z: 2}, WorkerRadius: 4, ScanTop: 30, FallbackY: 8}
	assert.Equal(t, want, got)
}

func TestDefaultColonyConfig_Valid(t *testing.T) {
	cfg := DefaultColonyConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 15, cfg.Evolution.PopulationSize)
	assert.Equal(t, 50.0, cfg.Evolution.GenerationDuration)
	assert.InDelta(t, 1.0/3, cfg.Queen.NestCostFraction, 1e-12)
}

func TestColonyConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ColonyConfig)
		errMsg string
	}{
		{"zero max health", func(c *ColonyConfig) { c.Agent.MaxHealth = 0 }, "max health"},
		{"negative decay", func(c *ColonyConfig) { c.Agent.HealthDecayRate = -1 }, "decay rate"},
		{"negative decision interval", func(c *ColonyConfig) { c.Agent.DecisionInterval = -0.1 }, "decision interval"},
		{"nest cost above one", func(c *ColonyConfig) { c.Queen.NestCostFraction = 1.5 }, "nest cost"},
		{"empty population", func(c *ColonyConfig) { c.Evolution.PopulationSize = 0 }, "population size"},
		{"zero generation", func(c *ColonyConfig) { c.Evolution.GenerationDuration = 0 }, "generation duration"},
		{"mutation chance above one", func(c *ColonyConfig) { c.Evolution.MutationChance = 2 }, "mutation chance"},
		{"negative mutation amount", func(c *ColonyConfig) { c.Evolution.MutationAmount = -0.1 }, "mutation amount"},
		{"elite exceeds population", func(c *ColonyConfig) { c.Evolution.EliteCount = 16 }, "elite count"},
		{"negative radius", func(c *ColonyConfig) { c.Spawn.WorkerRadius = -1 }, "radius"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultColonyConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}
