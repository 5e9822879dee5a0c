// Tracks per-generation colony outcomes such as fitness, survival and nests.

package sim

import (
	"fmt"
	"io"
)

// GenerationStats summarizes one generation at scoring time.
type GenerationStats struct {
	Generation  int     `json:"generation"`
	Clock       float64 `json:"clock"`
	Population  int     `json:"population"`
	Alive       int     `json:"alive"`
	QueenAlive  bool    `json:"queen_alive"`
	QueenHealth float64 `json:"queen_health"`
	QueenNests  int     `json:"queen_nests"`
	BestFitness float64 `json:"best_fitness"`
	AvgFitness  float64 `json:"avg_fitness"`
	NewRecord   bool    `json:"new_record"`
	BestGenes   GeneSet `json:"best_genes"`
}

// Metrics aggregates statistics about the colony across generations
// for final reporting.
type Metrics struct {
	Generations     []GenerationStats
	BestFitnessEver float64
	TotalNests      int
}

// NewMetrics returns empty metrics.
func NewMetrics() *Metrics {
	return &Metrics{Generations: make([]GenerationStats, 0)}
}

// Record appends a generation and updates the running totals.
// NewRecord is set when the generation beats every earlier one.
func (m *Metrics) Record(s GenerationStats) GenerationStats {
	if s.BestFitness > m.BestFitnessEver {
		m.BestFitnessEver = s.BestFitness
		s.NewRecord = true
	}
	m.TotalNests += s.QueenNests
	m.Generations = append(m.Generations, s)
	return s
}

// Last returns the most recent generation, if any.
func (m *Metrics) Last() (GenerationStats, bool) {
	if len(m.Generations) == 0 {
		return GenerationStats{}, false
	}
	return m.Generations[len(m.Generations)-1], true
}

// Print displays the generation table and run totals.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Colony Metrics ===")
	fmt.Fprintf(w, "Generations Completed : %d\n", len(m.Generations))
	if len(m.Generations) == 0 {
		return
	}
	fmt.Fprintf(w, "Best Fitness Ever     : %.1f\n", m.BestFitnessEver)
	fmt.Fprintf(w, "Total Nests           : %d\n", m.TotalNests)
	fmt.Fprintf(w, "%-5s %8s %8s %7s %6s %-6s %6s %6s %6s\n",
		"gen", "best", "avg", "alive", "nests", "queen", "expl", "dig", "food")
	for _, g := range m.Generations {
		queen := "dead"
		if g.QueenAlive {
			queen = "alive"
		}
		marker := ""
		if g.NewRecord {
			marker = " *"
		}
		fmt.Fprintf(w, "%-5d %8.1f %8.1f %3d/%-3d %6d %-6s %6.3f %6.3f %6.3f%s\n",
			g.Generation, g.BestFitness, g.AvgFitness, g.Alive, g.Population, g.QueenNests, queen,
			g.BestGenes.ExplorationRate, g.BestGenes.DiggingProbability, g.BestGenes.FoodSeekingWeight, marker)
	}
}
