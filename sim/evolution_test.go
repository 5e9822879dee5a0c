package sim

import (
	"testing"

	"github.com/antymology/antsim/sim/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testColonyConfig centers the nest on the origin so a small fake grid fits.
func testColonyConfig() ColonyConfig {
	cfg := DefaultColonyConfig()
	cfg.Spawn.NestOrigin = GridPos{}
	cfg.Evolution.GenerationDuration = 2
	return cfg
}

func newTestEngine(cfg ColonyConfig, seed int64, st *trace.SimulationTrace) (*Engine, *fakeGrid) {
	grid := newFakeGrid().flat(8, 2)
	return NewEngine(cfg, grid, NewPartitionedRNG(NewSimulationKey(seed)), nil, st), grid
}

func TestEngine_Start_SpawnsQueenFirst(t *testing.T) {
	// GIVEN a fresh engine
	e, _ := newTestEngine(testColonyConfig(), 42, nil)
	assert.Equal(t, 0, e.Generation())
	assert.Equal(t, PhaseSpawning, e.Phase())

	// WHEN started
	e.Start()

	// THEN the population is one queen followed by workers, all ready
	agents := e.Registry().Agents()
	require.Len(t, agents, 15)
	assert.True(t, agents[0].IsQueen())
	assert.Len(t, e.Registry().Workers(), 14)
	assert.Same(t, agents[0], e.Registry().CurrentQueen())
	for _, a := range agents {
		assert.True(t, a.Alive)
		assert.True(t, a.Initialized)
		assert.Equal(t, 3, a.Position.Y, "agent %d not on the surface", a.ID)
		assert.True(t, a.Genes.InRange())
	}
	assert.Equal(t, GridPos{X: 0, Y: 3, Z: 0}, agents[0].Position)
	assert.Equal(t, GridPos{X: 5, Y: 3, Z: 0}, agents[1].Position, "first worker at angle zero")
	assert.Equal(t, 1, e.Generation())
	assert.Equal(t, PhaseRunning, e.Phase())

	// AND a second Start is ignored
	e.Start()
	assert.Len(t, e.Registry().Agents(), 15)
}

func TestEngine_Start_QueenGenesFromQueenRanges(t *testing.T) {
	e, _ := newTestEngine(testColonyConfig(), 7, nil)
	e.Start()

	q := e.Registry().CurrentQueen()
	require.NotNil(t, q)
	assert.True(t, QueenSpawnRanges.ExplorationRate.Contains(q.Genes.ExplorationRate))
	assert.True(t, QueenSpawnRanges.DiggingProbability.Contains(q.Genes.DiggingProbability))
}

func TestEngine_Tick_GenerationBoundaryReplacesPopulation(t *testing.T) {
	// GIVEN a running first generation
	e, _ := newTestEngine(testColonyConfig(), 42, nil)
	e.Start()
	old := append([]*Agent(nil), e.Registry().Agents()...)

	// WHEN the generation duration elapses
	for i := 0; i < 4; i++ {
		e.Tick(0.5)
	}

	// THEN every old agent is destroyed and a fresh generation is running
	for _, a := range old {
		assert.False(t, a.Alive)
		assert.False(t, a.Initialized)
	}
	agents := e.Registry().Agents()
	require.Len(t, agents, 15)
	assert.True(t, agents[0].IsQueen())
	for _, a := range agents {
		assert.GreaterOrEqual(t, a.ID, 15, "IDs are never reused")
		assert.True(t, a.Alive)
		assert.True(t, a.Initialized)
	}
	assert.Equal(t, 2, e.Generation())
	assert.Equal(t, 0.0, e.Elapsed())
	assert.Equal(t, 2.0, e.TimeRemaining())
	assert.InDelta(t, 2.0, e.Clock(), 1e-9)
	require.Len(t, e.Metrics().Generations, 1)
	assert.Equal(t, 1, e.Metrics().Generations[0].Generation)
}

func TestEngine_Tick_AutoStarts(t *testing.T) {
	e, _ := newTestEngine(testColonyConfig(), 1, nil)
	e.Tick(0.5)
	assert.Equal(t, 1, e.Generation())
	assert.Equal(t, 15, e.Registry().Len())
}

func TestEngine_Evolve_ElitesSurvive(t *testing.T) {
	// GIVEN a generation scored with mutation disabled
	cfg := testColonyConfig()
	cfg.Evolution.MutationChance = 0
	e, _ := newTestEngine(cfg, 9, nil)
	e.Start()
	ranked := RankByFitness(e.Registry().Agents())

	// WHEN evolving
	e.Evolve()

	// THEN the top gene sets lead the new generation, the best becoming queen
	agents := e.Registry().Agents()
	for i := 0; i < cfg.Evolution.EliteCount; i++ {
		assert.Equal(t, ranked[i].Genes, agents[i].Genes)
	}
	assert.True(t, agents[0].IsQueen())
}

func TestEngine_SinglePopulation(t *testing.T) {
	cfg := testColonyConfig()
	cfg.Evolution.PopulationSize = 1
	cfg.Evolution.EliteCount = 1
	e, _ := newTestEngine(cfg, 3, nil)

	for i := 0; i < 10; i++ {
		e.Tick(0.5)
	}

	assert.Equal(t, 1, e.Registry().Len())
	assert.True(t, e.Registry().Agents()[0].IsQueen())
	assert.Equal(t, 3, e.Generation())
}

func TestEngine_Deterministic(t *testing.T) {
	// GIVEN two engines with the same seed
	a, _ := newTestEngine(testColonyConfig(), 77, nil)
	b, _ := newTestEngine(testColonyConfig(), 77, nil)

	// WHEN both run across several generations
	for i := 0; i < 20; i++ {
		a.Tick(0.5)
		b.Tick(0.5)
	}

	// THEN their colonies are identical
	assert.Equal(t, a.Snapshot(), b.Snapshot())
	assert.Equal(t, a.Metrics().Generations, b.Metrics().Generations)
}

func TestEngine_Trace(t *testing.T) {
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
	e, _ := newTestEngine(testColonyConfig(), 5, st)

	for i := 0; i < 4; i++ {
		e.Tick(0.5)
	}

	assert.NotEmpty(t, st.Decisions)
	require.Len(t, st.Generations, 1)
	assert.Len(t, st.Generations[0].Elites, 3)
	assert.Equal(t, st.Generations[0].BestFitness, st.Generations[0].Best.Fitness)
}

func TestNewEngine_Panics(t *testing.T) {
	bad := testColonyConfig()
	bad.Evolution.PopulationSize = 0
	assert.Panics(t, func() { NewEngine(bad, newFakeGrid(), NewPartitionedRNG(1), nil, nil) })
	assert.Panics(t, func() { NewEngine(testColonyConfig(), nil, NewPartitionedRNG(1), nil, nil) })
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "breeding", PhaseBreeding.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
