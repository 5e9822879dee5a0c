package sim

import "fmt"

// AgentConfig groups per-agent physiology and pacing.
type AgentConfig struct {
	MaxHealth        float64 // health ceiling and spawn health (default 100)
	HealthDecayRate  float64 // health lost per time unit, doubled on acidic ground (default 2)
	DecisionInterval float64 // time between priority evaluations; 0 = every step (default 0.5)
}

// QueenConfig groups nest production parameters.
type QueenConfig struct {
	NestInterval     float64 // time between nest attempts (default 3)
	MinHealthToNest  float64 // health must exceed this to attempt a nest (default 40)
	NestCostFraction float64 // fraction of max health spent per nest (default 1/3)
}

// EvolutionConfig groups generation and breeding parameters.
type EvolutionConfig struct {
	PopulationSize     int     // agents per generation, queen included (default 15)
	GenerationDuration float64 // simulated time per generation (default 50)
	MutationChance     float64 // per-gene mutation probability in [0,1] (default 0.3)
	MutationAmount     float64 // half-width of the additive mutation interval (default 0.2)
	EliteCount         int     // top gene sets copied unmutated (default 3)
}

// SpawnConfig groups population placement parameters.
type SpawnConfig struct {
	NestOrigin   GridPos // queen spawn column; Y is ignored and discovered
	WorkerRadius float64 // radius of the worker spawn circle (default 5)
	ScanTop      int     // highest Y probed when discovering a spawn surface (default 50)
	FallbackY    int     // spawn height used when a column has no surface (default 10)
}

// ColonyConfig groups everything the evolution engine needs.
type ColonyConfig struct {
	Agent     AgentConfig
	Queen     QueenConfig
	Evolution EvolutionConfig
	Spawn     SpawnConfig
}

// NewAgentConfig creates an AgentConfig. Zero values are kept as given.
func NewAgentConfig(maxHealth, decayRate, decisionInterval float64) AgentConfig {
	return AgentConfig{
		MaxHealth:        maxHealth,
		HealthDecayRate:  decayRate,
		DecisionInterval: decisionInterval,
	}
}

// NewQueenConfig creates a QueenConfig.
func NewQueenConfig(nestInterval, minHealthToNest, nestCostFraction float64) QueenConfig {
	return QueenConfig{
		NestInterval:     nestInterval,
		MinHealthToNest:  minHealthToNest,
		NestCostFraction: nestCostFraction,
	}
}

// NewEvolutionConfig creates an EvolutionConfig.
func NewEvolutionConfig(populationSize int, generationDuration, mutationChance, mutationAmount float64, eliteCount int) EvolutionConfig {
	return EvolutionConfig{
		PopulationSize:     populationSize,
		GenerationDuration: generationDuration,
		MutationChance:     mutationChance,
		MutationAmount:     mutationAmount,
		EliteCount:         eliteCount,
	}
}

// NewSpawnConfig creates a SpawnConfig.
func NewSpawnConfig(origin GridPos, workerRadius float64, scanTop, fallbackY int) SpawnConfig {
	return SpawnConfig{
		NestOrigin:   origin,
		WorkerRadius: workerRadius,
		ScanTop:      scanTop,
		FallbackY:    fallbackY,
	}
}

func DefaultAgentConfig() AgentConfig {
	return NewAgentConfig(100, 2, 0.5)
}

func DefaultQueenConfig() QueenConfig {
	return NewQueenConfig(3, 40, 1.0/3.0)
}

func DefaultEvolutionConfig() EvolutionConfig {
	return NewEvolutionConfig(15, 50, 0.3, 0.2, 3)
}

func DefaultSpawnConfig() SpawnConfig {
	return NewSpawnConfig(GridPos{X: 20, Z: 20}, 5, 50, 10)
}

// DefaultColonyConfig returns the reference colony parameters.
func DefaultColonyConfig() ColonyConfig {
	return ColonyConfig{
		Agent:     DefaultAgentConfig(),
		Queen:     DefaultQueenConfig(),
		Evolution: DefaultEvolutionConfig(),
		Spawn:     DefaultSpawnConfig(),
	}
}

// Validate reports the first out-of-range parameter, if any.
func (c ColonyConfig) Validate() error {
	switch {
	case c.Agent.MaxHealth <= 0:
		return fmt.Errorf("max health must be > 0, got %v", c.Agent.MaxHealth)
	case c.Agent.HealthDecayRate < 0:
		return fmt.Errorf("health decay rate must be >= 0, got %v", c.Agent.HealthDecayRate)
	case c.Agent.DecisionInterval < 0:
		return fmt.Errorf("decision interval must be >= 0, got %v", c.Agent.DecisionInterval)
	case c.Queen.NestInterval < 0:
		return fmt.Errorf("nest interval must be >= 0, got %v", c.Queen.NestInterval)
	case c.Queen.NestCostFraction < 0 || c.Queen.NestCostFraction > 1:
		return fmt.Errorf("nest cost fraction must be in [0,1], got %v", c.Queen.NestCostFraction)
	case c.Evolution.PopulationSize < 1:
		return fmt.Errorf("population size must be >= 1, got %d", c.Evolution.PopulationSize)
	case c.Evolution.GenerationDuration <= 0:
		return fmt.Errorf("generation duration must be > 0, got %v", c.Evolution.GenerationDuration)
	case c.Evolution.MutationChance < 0 || c.Evolution.MutationChance > 1:
		return fmt.Errorf("mutation chance must be in [0,1], got %v", c.Evolution.MutationChance)
	case c.Evolution.MutationAmount < 0:
		return fmt.Errorf("mutation amount must be >= 0, got %v", c.Evolution.MutationAmount)
	case c.Evolution.EliteCount < 0 || c.Evolution.EliteCount > c.Evolution.PopulationSize:
		return fmt.Errorf("elite count must be in [0,%d], got %d", c.Evolution.PopulationSize, c.Evolution.EliteCount)
	case c.Spawn.WorkerRadius < 0:
		return fmt.Errorf("worker spawn radius must be >= 0, got %v", c.Spawn.WorkerRadius)
	}
	return nil
}
