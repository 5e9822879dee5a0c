package trace

import "maps"

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions     int            `json:"total_decisions"`
	ActionDistribution map[string]int `json:"action_distribution"` // action name → count
	Deaths             int            `json:"deaths"`
	Generations        int            `json:"generations"`
	TotalNests         int            `json:"total_nests"`
	BestFitness        float64        `json:"best_fitness"`    // best fitness over all generations
	BestGeneration     int            `json:"best_generation"` // generation that produced BestFitness
	MeanBestFitness    float64        `json:"mean_best_fitness"`
	MeanAlive          float64        `json:"mean_alive"`
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ActionDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}
	summary.AddDecisions(st.Decisions)
	summary.SetGenerations(st.Generations)
	return summary
}

// AddDecisions folds decision records into the running decision counts.
func (s *TraceSummary) AddDecisions(records []DecisionRecord) {
	if s.ActionDistribution == nil {
		s.ActionDistribution = make(map[string]int)
	}
	s.TotalDecisions += len(records)
	for _, d := range records {
		s.ActionDistribution[d.Action]++
		if d.Action == "die" {
			s.Deaths++
		}
	}
}

// SetGenerations recomputes the generation statistics from records,
// replacing any previous values. Decision counts are left untouched.
func (s *TraceSummary) SetGenerations(records []GenerationRecord) {
	s.Generations = len(records)
	s.TotalNests = 0
	s.BestFitness, s.BestGeneration = 0, 0
	s.MeanBestFitness, s.MeanAlive = 0, 0
	if len(records) == 0 {
		return
	}
	totalBest, totalAlive := 0.0, 0
	for i, g := range records {
		s.TotalNests += g.QueenNests
		totalBest += g.BestFitness
		totalAlive += g.Alive
		if i == 0 || g.BestFitness > s.BestFitness {
			s.BestFitness = g.BestFitness
			s.BestGeneration = g.Generation
		}
	}
	s.MeanBestFitness = totalBest / float64(len(records))
	s.MeanAlive = float64(totalAlive) / float64(len(records))
}

// Clone returns a deep copy of the summary.
func (s *TraceSummary) Clone() *TraceSummary {
	c := *s
	c.ActionDistribution = maps.Clone(s.ActionDistribution)
	return &c
}
