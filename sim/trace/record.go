// Package trace provides decision and generation recording for colony analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// DecisionRecord captures a single action taken by an agent.
type DecisionRecord struct {
	AgentID    int     `json:"agent_id"`
	Role       string  `json:"role"`
	Generation int     `json:"generation"`
	Clock      float64 `json:"clock"`
	Action     string  `json:"action"`
	Health     float64 `json:"health"`
}

// GeneRecord captures one ranked gene set and the fitness that earned its rank.
type GeneRecord struct {
	Fitness            float64
	ExplorationRate    float64
	DiggingProbability float64
	FoodSeekingWeight  float64
}

// GenerationRecord captures the outcome of one generation at scoring time.
type GenerationRecord struct {
	Generation  int
	Clock       float64
	Population  int
	Alive       int
	QueenAlive  bool
	QueenNests  int
	BestFitness float64
	AvgFitness  float64
	Best        GeneRecord   // top-ranked gene set
	Elites      []GeneRecord // carried unmutated into the next generation
}
