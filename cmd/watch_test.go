package cmd

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antymology/antsim/sim"
	"github.com/antymology/antsim/sim/trace"
	"github.com/antymology/antsim/sim/world"
)

func newTestViewer(t *testing.T) (*viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 30)

	wcfg := world.DefaultConfig()
	wcfg.SizeX, wcfg.SizeY, wcfg.SizeZ = 24, 16, 24
	grid := world.Generate(wcfg, sim.NewPartitionedRNG(1).ForSubsystem(sim.SubsystemTerrain))
	colony := sim.DefaultColonyConfig()
	colony.Spawn.NestOrigin = sim.GridPos{X: 12, Z: 12}
	colony.Evolution.GenerationDuration = 2
	s := sim.NewSimulator(colony, grid, sim.NewPartitionedRNG(1), 0.5, 0, trace.TraceConfig{})
	s.Engine.Start()
	return newViewer(screen, s, grid, 1), screen
}

func TestViewer_HandleKey(t *testing.T) {
	// GIVEN a running viewer
	v, screen := newTestViewer(t)
	defer screen.Fini()

	// WHEN pause is toggled and single-stepped
	assert.True(t, v.handleKey(tcell.KeyRune, 'p'))
	assert.True(t, v.paused)
	assert.True(t, v.handleKey(tcell.KeyRune, 'n'))
	assert.Equal(t, 1, v.sim.Steps)

	// AND a forced evolution is requested
	assert.True(t, v.handleKey(tcell.KeyRune, 'e'))
	assert.Equal(t, 2, v.sim.Engine.Generation())

	// THEN quit keys stop the viewer
	assert.False(t, v.handleKey(tcell.KeyRune, 'q'))
	assert.False(t, v.handleKey(tcell.KeyEscape, 0))
}

func TestViewer_StepOnlyWhilePaused(t *testing.T) {
	v, screen := newTestViewer(t)
	defer screen.Fini()

	v.handleKey(tcell.KeyRune, 'n')

	assert.Equal(t, 0, v.sim.Steps)
}

func TestViewer_DrawAcrossGenerations(t *testing.T) {
	v, screen := newTestViewer(t)
	defer screen.Fini()

	// drawing must survive generation turnover and a tiny terminal
	for i := 0; i < 10; i++ {
		v.advance(1)
		v.draw()
	}
	screen.SetSize(10, 5)
	v.draw()

	assert.Equal(t, 3, v.sim.Engine.Generation())
}

func TestStatusLines(t *testing.T) {
	snap := sim.Snapshot{
		Generation:      4,
		Phase:           "running",
		TimeRemaining:   12.5,
		Population:      15,
		Alive:           11,
		AliveWorkers:    10,
		BestFitnessEver: 250,
		Queen:           &sim.QueenTelemetry{ID: 45, HealthPercent: 50, Band: sim.HealthBandWarning, NestsProduced: 2},
	}

	lines := statusLines(snap, true)

	assert.Contains(t, lines, "Generation   4")
	assert.Contains(t, lines, "Alive        11/15")
	assert.Contains(t, lines, "Queen #45     warning")
	assert.Contains(t, lines, "  nests      2")
	assert.Equal(t, "PAUSED", lines[len(lines)-1])

	lines = statusLines(sim.Snapshot{}, false)
	assert.Contains(t, lines, "Queen        none")
	assert.NotContains(t, lines, "PAUSED")
}

func TestBlockGlyph(t *testing.T) {
	r, color := blockGlyph(sim.BlockMulch, 5)
	assert.Equal(t, '%', r)
	assert.Equal(t, tcell.ColorGreen, color)

	r, _ = blockGlyph(sim.BlockSolid, 1)
	assert.Equal(t, '.', r)
	r, _ = blockGlyph(sim.BlockSolid, 100)
	assert.Equal(t, '*', r)
}

func TestAgentGlyph(t *testing.T) {
	r, color := agentGlyph(sim.AgentTelemetry{Role: "queen", Health: 100, MaxHealth: 100})
	assert.Equal(t, 'Q', r)
	assert.Equal(t, tcell.ColorAqua, color)

	r, color = agentGlyph(sim.AgentTelemetry{Role: "worker", Health: 10, MaxHealth: 100})
	assert.Equal(t, 'a', r)
	assert.Equal(t, tcell.ColorRed, color)
}
