package sim

import "github.com/sirupsen/logrus"

// Breed builds the next generation's gene list from a fitness ranking:
// the top EliteCount entries are copied verbatim, and the remaining slots up
// to PopulationSize are filled with mutated uniform-crossover children of two
// parents drawn from the top half of the ranking.
//
// Breed never fails. An undersized ranking shrinks the elite and breeding
// pools; an empty ranking reseeds from the first-generation ranges.
func Breed(ranked []FitnessEntry, cfg EvolutionConfig, rng RandSource) []GeneSet {
	genes := make([]GeneSet, 0, cfg.PopulationSize)

	if len(ranked) == 0 {
		logrus.Warnf("breeding from an empty ranking, reseeding %d random gene sets", cfg.PopulationSize)
		for len(genes) < cfg.PopulationSize {
			ranges := WorkerSpawnRanges
			if len(genes) == 0 {
				ranges = QueenSpawnRanges
			}
			genes = append(genes, ranges.Sample(rng))
		}
		return genes
	}

	elites := min(cfg.EliteCount, len(ranked), cfg.PopulationSize)
	for i := 0; i < elites; i++ {
		genes = append(genes, ranked[i].Genes)
	}

	pool := breedingPoolSize(len(ranked))
	for len(genes) < cfg.PopulationSize {
		p1 := ranked[rng.Intn(pool)]
		p2 := ranked[rng.Intn(pool)]
		child := Crossover(p1.Genes, p2.Genes, rng)
		genes = append(genes, Mutate(child, cfg.MutationChance, cfg.MutationAmount, rng))
	}
	return genes
}

// breedingPoolSize is the number of top-ranked entries eligible as parents:
// half the ranking, at least 2, never more than the ranking holds.
func breedingPoolSize(n int) int {
	pool := max(2, n/2)
	if pool > n {
		logrus.Warnf("breeding pool clamped to %d candidate(s)", n)
		pool = n
	}
	return pool
}

// Crossover inherits each gene from one parent or the other with equal odds.
func Crossover(a, b GeneSet, rng RandSource) GeneSet {
	pick := func(x, y float64) float64 {
		if rng.Float64() < 0.5 {
			return x
		}
		return y
	}
	return GeneSet{
		ExplorationRate:    pick(a.ExplorationRate, b.ExplorationRate),
		DiggingProbability: pick(a.DiggingProbability, b.DiggingProbability),
		FoodSeekingWeight:  pick(a.FoodSeekingWeight, b.FoodSeekingWeight),
	}
}

// Mutate perturbs each gene independently with probability chance by a
// uniform offset in [-amount, amount], then clamps every gene to its range.
func Mutate(g GeneSet, chance, amount float64, rng RandSource) GeneSet {
	perturb := func(v float64) float64 {
		if rng.Float64() < chance {
			v += (rng.Float64()*2 - 1) * amount
		}
		return v
	}
	g.ExplorationRate = perturb(g.ExplorationRate)
	g.DiggingProbability = perturb(g.DiggingProbability)
	g.FoodSeekingWeight = perturb(g.FoodSeekingWeight)
	return g.Clamp()
}
