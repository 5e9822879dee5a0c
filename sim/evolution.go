package sim

import (
	"fmt"
	"math"

	"github.com/antymology/antsim/sim/trace"
	"github.com/sirupsen/logrus"
)

// Phase is the evolution engine's position in the generation cycle.
type Phase int

const (
	PhaseSpawning Phase = iota
	PhaseRunning
	PhaseScoring
	PhaseBreeding
	PhaseRespawning
)

func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseRunning:
		return "running"
	case PhaseScoring:
		return "scoring"
	case PhaseBreeding:
		return "breeding"
	case PhaseRespawning:
		return "respawning"
	}
	return "unknown"
}

// Engine owns the population and the generation clock. Every tick it steps
// each agent once in registry order; when the generation timer expires it
// scores, breeds and respawns the whole population synchronously.
// The cycle never terminates on its own.
type Engine struct {
	cfg      ColonyConfig
	grid     WorldGrid
	spawner  Spawner
	registry *Registry
	policy   *Policy
	spawnRNG RandSource
	breedRNG RandSource
	trace    *trace.SimulationTrace
	metrics  *Metrics

	phase      Phase
	generation int
	timer      float64
	clock      float64
}

// NewEngine creates an Engine. The population is not spawned until Start.
// Panics on an invalid configuration or a nil grid, as these are programming
// errors. spawner may be nil to use an AgentFactory; st may be nil to disable
// tracing.
func NewEngine(cfg ColonyConfig, grid WorldGrid, rng *PartitionedRNG, spawner Spawner, st *trace.SimulationTrace) *Engine {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("NewEngine: %v", err))
	}
	if grid == nil {
		panic("NewEngine: grid must be non-nil")
	}
	if spawner == nil {
		spawner = NewAgentFactory(cfg.Agent)
	}
	registry := NewRegistry()
	e := &Engine{
		cfg:      cfg,
		grid:     grid,
		spawner:  spawner,
		registry: registry,
		policy:   NewPolicy(grid, registry, rng.ForSubsystem(SubsystemPolicy), cfg.Agent, cfg.Queen),
		spawnRNG: rng.ForSubsystem(SubsystemSpawn),
		breedRNG: rng.ForSubsystem(SubsystemBreeding),
		trace:    st,
		metrics:  NewMetrics(),
		phase:    PhaseSpawning,
	}
	if st != nil && st.Config.RecordsDecisions() {
		e.policy.Observer = e.recordDecision
	}
	return e
}

// Start spawns the first generation with random genes: one queen from the
// narrow queen ranges and PopulationSize-1 workers from the worker ranges.
// Calling Start again has no effect.
func (e *Engine) Start() {
	if e.generation > 0 {
		return
	}
	e.generation = 1
	logrus.Infof("%s === Starting Generation 1 ===", e.logPrefix())

	genes := make([]GeneSet, e.cfg.Evolution.PopulationSize)
	genes[0] = QueenSpawnRanges.Sample(e.spawnRNG)
	for i := 1; i < len(genes); i++ {
		genes[i] = WorkerSpawnRanges.Sample(e.spawnRNG)
	}
	e.spawnPopulation(genes)
	e.phase = PhaseRunning
}

// Tick advances the colony by dt: every agent steps once, then the
// generation timer advances and, on expiry, the population is replaced.
func (e *Engine) Tick(dt float64) {
	if e.generation == 0 {
		e.Start()
	}
	for _, a := range e.registry.Agents() {
		e.policy.Step(a, dt)
	}
	e.clock += dt
	e.timer += dt
	if e.timer >= e.cfg.Evolution.GenerationDuration {
		e.Evolve()
	}
}

// Evolve ends the current generation immediately: score, breed, respawn.
func (e *Engine) Evolve() {
	if e.generation == 0 {
		e.Start()
	}
	e.phase = PhaseScoring
	ranked := RankByFitness(e.registry.Agents())
	e.recordGeneration(ranked)

	e.phase = PhaseBreeding
	genes := Breed(ranked, e.cfg.Evolution, e.breedRNG)

	e.phase = PhaseRespawning
	e.respawn(genes)
	e.phase = PhaseRunning
}

// respawn destroys every agent regardless of status and spawns genes as the
// next generation; genes[0] becomes the queen.
func (e *Engine) respawn(genes []GeneSet) {
	for _, a := range e.registry.Clear() {
		e.spawner.DestroyAgent(a)
	}
	e.generation++
	e.timer = 0
	logrus.Infof("%s === Starting Generation %d ===", e.logPrefix(), e.generation)
	e.spawnPopulation(genes)
}

// spawnPopulation places genes[0] as queen on the nest origin column and the
// rest as workers evenly spaced on the spawn circle, then initializes them.
func (e *Engine) spawnPopulation(genes []GeneSet) {
	if len(genes) == 0 {
		return
	}
	spawn := e.cfg.Spawn
	origin := spawn.NestOrigin
	queenY := FindColumnSurface(e.grid, origin.X, origin.Z, spawn.ScanTop, spawn.FallbackY)
	e.registry.Add(e.spawner.SpawnAgent(RoleQueen, genes[0], GridPos{X: origin.X, Y: queenY, Z: origin.Z}))

	workers := len(genes) - 1
	for i := 1; i < len(genes); i++ {
		angle := float64(i-1) / float64(workers) * 2 * math.Pi
		x := int(math.Round(float64(origin.X) + math.Cos(angle)*spawn.WorkerRadius))
		z := int(math.Round(float64(origin.Z) + math.Sin(angle)*spawn.WorkerRadius))
		y := FindColumnSurface(e.grid, x, z, spawn.ScanTop, spawn.FallbackY)
		e.registry.Add(e.spawner.SpawnAgent(RoleWorker, genes[i], GridPos{X: x, Y: y, Z: z}))
	}

	for _, a := range e.registry.Agents() {
		a.Initialize(e.grid, a.Position)
	}
}

func (e *Engine) recordGeneration(ranked []FitnessEntry) {
	alive, _ := e.registry.AliveCount()
	stats := GenerationStats{
		Generation: e.generation,
		Clock:      e.clock,
		Population: len(ranked),
		Alive:      alive,
		AvgFitness: meanFitness(ranked),
	}
	if len(ranked) > 0 {
		stats.BestFitness = ranked[0].Fitness
		stats.BestGenes = ranked[0].Genes
	}
	if q := e.registry.CurrentQueen(); q != nil {
		stats.QueenAlive = q.Alive
		stats.QueenHealth = q.Health
		stats.QueenNests = q.NestsProduced
	}
	stats = e.metrics.Record(stats)

	prefix := e.logPrefix()
	logrus.Infof("%s === Generation %d Complete ===", prefix, e.generation)
	logrus.Infof("%s Nests Produced: %d", prefix, stats.QueenNests)
	logrus.Infof("%s Queen Status: %s - Health: %.1f", prefix, aliveLabel(stats.QueenAlive), stats.QueenHealth)
	logrus.Infof("%s Best Fitness: %.1f", prefix, stats.BestFitness)
	logrus.Infof("%s Avg Fitness: %.1f", prefix, stats.AvgFitness)
	logrus.Infof("%s Alive: %d/%d", prefix, stats.Alive, stats.Population)
	if stats.NewRecord {
		logrus.Infof("%s *** NEW RECORD: %.1f ***", prefix, stats.BestFitness)
	}

	if e.trace != nil && e.trace.Config.RecordsGenerations() {
		record := trace.GenerationRecord{
			Generation:  stats.Generation,
			Clock:       stats.Clock,
			Population:  stats.Population,
			Alive:       stats.Alive,
			QueenAlive:  stats.QueenAlive,
			QueenNests:  stats.QueenNests,
			BestFitness: stats.BestFitness,
			AvgFitness:  stats.AvgFitness,
		}
		if len(ranked) > 0 {
			record.Best = geneRecord(ranked[0])
		}
		for i := 0; i < min(e.cfg.Evolution.EliteCount, len(ranked)); i++ {
			record.Elites = append(record.Elites, geneRecord(ranked[i]))
		}
		e.trace.RecordGeneration(record)
	}
}

func (e *Engine) recordDecision(a *Agent, action Action) {
	e.trace.RecordDecision(trace.DecisionRecord{
		AgentID:    a.ID,
		Role:       a.Role.String(),
		Generation: e.generation,
		Clock:      e.clock,
		Action:     action.String(),
		Health:     a.Health,
	})
}

func geneRecord(entry FitnessEntry) trace.GeneRecord {
	return trace.GeneRecord{
		Fitness:            entry.Fitness,
		ExplorationRate:    entry.Genes.ExplorationRate,
		DiggingProbability: entry.Genes.DiggingProbability,
		FoodSeekingWeight:  entry.Genes.FoodSeekingWeight,
	}
}

func (e *Engine) logPrefix() string {
	return fmt.Sprintf("[gen %04d t=%07.2f]", e.generation, e.clock)
}

func aliveLabel(alive bool) string {
	if alive {
		return "ALIVE"
	}
	return "DEAD"
}

// Generation returns the current generation number (1-based, 0 before Start).
func (e *Engine) Generation() int { return e.generation }

// Phase returns the current position in the generation cycle.
func (e *Engine) Phase() Phase { return e.phase }

// Clock returns the total simulated time.
func (e *Engine) Clock() float64 { return e.clock }

// Elapsed returns the time spent in the current generation.
func (e *Engine) Elapsed() float64 { return e.timer }

// TimeRemaining returns the time left in the current generation, never negative.
func (e *Engine) TimeRemaining() float64 {
	return math.Max(0, e.cfg.Evolution.GenerationDuration-e.timer)
}

// Registry returns the live population registry.
func (e *Engine) Registry() *Registry { return e.registry }

// Policy returns the decision policy shared by all agents.
func (e *Engine) Policy() *Policy { return e.policy }

// Metrics returns the per-generation statistics collected so far.
func (e *Engine) Metrics() *Metrics { return e.metrics }

// Config returns the colony configuration.
func (e *Engine) Config() ColonyConfig { return e.cfg }
