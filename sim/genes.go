package sim

// GeneRange is a closed interval a gene value is kept inside.
type GeneRange struct {
	Min, Max float64
}

// Clamp returns v limited to [r.Min, r.Max].
func (r GeneRange) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Contains reports whether v lies inside the range.
func (r GeneRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Sample draws a value uniformly from the range.
func (r GeneRange) Sample(rng RandSource) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Declared gene bounds. Every gene is clamped back into these after mutation.
var (
	ExplorationRateRange    = GeneRange{Min: 0.1, Max: 1.0}
	DiggingProbabilityRange = GeneRange{Min: 0.0, Max: 0.5}
	FoodSeekingWeightRange  = GeneRange{Min: 0.3, Max: 2.0}
)

// GeneSet holds the three heritable behavior parameters of an agent.
type GeneSet struct {
	// ExplorationRate is the chance an idle agent wanders each decision.
	ExplorationRate float64 `json:"exploration_rate"`
	// DiggingProbability is the chance to dig while near the queen.
	DiggingProbability float64 `json:"digging_probability"`
	// FoodSeekingWeight scales the hunger threshold; higher eats earlier.
	FoodSeekingWeight float64 `json:"food_seeking_weight"`
}

// Clamp returns g with every gene limited to its declared range.
func (g GeneSet) Clamp() GeneSet {
	return GeneSet{
		ExplorationRate:    ExplorationRateRange.Clamp(g.ExplorationRate),
		DiggingProbability: DiggingProbabilityRange.Clamp(g.DiggingProbability),
		FoodSeekingWeight:  FoodSeekingWeightRange.Clamp(g.FoodSeekingWeight),
	}
}

// InRange reports whether every gene lies inside its declared range.
func (g GeneSet) InRange() bool {
	return ExplorationRateRange.Contains(g.ExplorationRate) &&
		DiggingProbabilityRange.Contains(g.DiggingProbability) &&
		FoodSeekingWeightRange.Contains(g.FoodSeekingWeight)
}

// GeneSpawnRanges are the intervals first-generation genes are drawn from.
type GeneSpawnRanges struct {
	ExplorationRate    GeneRange
	DiggingProbability GeneRange
	FoodSeekingWeight  GeneRange
}

// Sample draws a random gene set from the spawn ranges.
func (s GeneSpawnRanges) Sample(rng RandSource) GeneSet {
	return GeneSet{
		ExplorationRate:    s.ExplorationRate.Sample(rng),
		DiggingProbability: s.DiggingProbability.Sample(rng),
		FoodSeekingWeight:  s.FoodSeekingWeight.Sample(rng),
	}
}

// WorkerSpawnRanges is the wide first-generation range for workers.
var WorkerSpawnRanges = GeneSpawnRanges{
	ExplorationRate:    GeneRange{Min: 0.3, Max: 0.8},
	DiggingProbability: GeneRange{Min: 0.05, Max: 0.3},
	FoodSeekingWeight:  GeneRange{Min: 0.5, Max: 1.5},
}

// QueenSpawnRanges keeps the queen close to the nest: low exploration and digging.
var QueenSpawnRanges = GeneSpawnRanges{
	ExplorationRate:    GeneRange{Min: 0.1, Max: 0.2},
	DiggingProbability: GeneRange{Min: 0.01, Max: 0.05},
	FoodSeekingWeight:  GeneRange{Min: 0.8, Max: 1.2},
}
