package sim

import "sort"

// Fitness rewards.
const (
	nestFitness         = 100.0 // per nest the queen produced
	queenSurvivalBonus  = 50.0
	workerSurvivalBonus = 20.0
)

// FitnessEntry pairs an agent's final genes with its score.
type FitnessEntry struct {
	AgentID int
	Role    Role
	Alive   bool
	Fitness float64
	Genes   GeneSet
}

// Fitness scores an agent at the end of a generation.
//   - queen: 100 per nest, +50 if still alive
//   - worker: health + 20 if alive, 0 if dead
func Fitness(a *Agent) float64 {
	if a.IsQueen() {
		f := float64(a.NestsProduced) * nestFitness
		if a.Alive {
			f += queenSurvivalBonus
		}
		return f
	}
	if !a.Alive {
		return 0
	}
	return a.Health + workerSurvivalBonus
}

// RankByFitness scores every agent, dead or alive, and sorts the entries by
// descending fitness. Equal scores keep registry order.
func RankByFitness(agents []*Agent) []FitnessEntry {
	ranked := make([]FitnessEntry, 0, len(agents))
	for _, a := range agents {
		if a == nil {
			continue
		}
		ranked = append(ranked, FitnessEntry{
			AgentID: a.ID,
			Role:    a.Role,
			Alive:   a.Alive,
			Fitness: Fitness(a),
			Genes:   a.Genes,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness > ranked[j].Fitness
	})
	return ranked
}

// meanFitness returns the average score of the ranking, 0 when empty.
func meanFitness(ranked []FitnessEntry) float64 {
	if len(ranked) == 0 {
		return 0
	}
	total := 0.0
	for _, e := range ranked {
		total += e.Fitness
	}
	return total / float64(len(ranked))
}
