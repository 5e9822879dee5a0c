package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/antymology/antsim/sim"
	"github.com/antymology/antsim/sim/trace"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFlagCommand returns a throwaway command with the colony flags registered,
// which also resets the flag variables to their defaults.
func newFlagCommand(t *testing.T) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	addColonyFlags(c)
	require.NoError(t, c.Flags().Set("defaults-file", repoDefaultsPath(t)))
	return c
}

func TestResolveConfig_PresetThenFlags(t *testing.T) {
	// GIVEN the small preset and an explicit population flag
	c := newFlagCommand(t)
	require.NoError(t, c.Flags().Set("preset", "small"))
	require.NoError(t, c.Flags().Set("population", "6"))

	// WHEN resolved
	colony, w, err := resolveConfig(c)
	require.NoError(t, err)

	// THEN the flag wins over the preset, and untouched flags keep preset values
	assert.Equal(t, 6, colony.Evolution.PopulationSize)
	assert.Equal(t, 2, colony.Evolution.EliteCount)
	assert.Equal(t, 30.0, colony.Evolution.GenerationDuration)
	assert.Equal(t, 24, w.SizeX)
	assert.Equal(t, sim.GridPos{X: 12, Z: 12}, colony.Spawn.NestOrigin)
}

func TestResolveConfig_UnchangedFlagsDoNotOverride(t *testing.T) {
	// GIVEN the harsh preset, whose elite count differs from the flag default
	c := newFlagCommand(t)
	require.NoError(t, c.Flags().Set("preset", "harsh"))

	colony, _, err := resolveConfig(c)
	require.NoError(t, err)

	assert.Equal(t, 4, colony.Evolution.EliteCount)
	assert.Equal(t, 20, colony.Evolution.PopulationSize)
}

func TestResolveConfig_Errors(t *testing.T) {
	tests := []struct {
		name  string
		flags map[string]string
	}{
		{"unknown preset", map[string]string{"preset": "nope"}},
		{"elite exceeds population", map[string]string{"population": "2", "elite": "3"}},
		{"non-positive step", map[string]string{"dt": "0"}},
		{"explicit missing defaults file", map[string]string{"defaults-file": filepath.Join("no", "such.yaml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newFlagCommand(t)
			for k, v := range tt.flags {
				require.NoError(t, c.Flags().Set(k, v))
			}
			_, _, err := resolveConfig(c)
			assert.Error(t, err)
		})
	}
}

func TestBuildSimulator_SameSeedSameRun(t *testing.T) {
	// GIVEN two simulators built from the same seed
	c := newFlagCommand(t)
	require.NoError(t, c.Flags().Set("preset", "small"))
	require.NoError(t, c.Flags().Set("generation-duration", "5"))
	require.NoError(t, c.Flags().Set("dt", "0.5"))
	colony, w, err := resolveConfig(c)
	require.NoError(t, err)

	a, gridA := buildSimulator(colony, w, trace.TraceConfig{Level: trace.TraceLevelGenerations})
	b, gridB := buildSimulator(colony, w, trace.TraceConfig{Level: trace.TraceLevelGenerations})

	// WHEN both run two generations
	a.RunGenerations(2)
	b.RunGenerations(2)

	// THEN terrain and outcomes match
	assert.Equal(t, gridA.Count(sim.BlockNest), gridB.Count(sim.BlockNest))
	assert.Equal(t, a.Engine.Metrics().Generations, b.Engine.Metrics().Generations)
	assert.Equal(t, a.Trace.Generations, b.Trace.Generations)
}

func TestPrintTraceSummary(t *testing.T) {
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
	st.RecordDecision(trace.DecisionRecord{AgentID: 1, Action: "eat"})
	st.RecordDecision(trace.DecisionRecord{AgentID: 2, Action: "die"})
	st.RecordGeneration(trace.GenerationRecord{Generation: 1, BestFitness: 150, QueenNests: 1, Alive: 9})

	var buf bytes.Buffer
	printTraceSummary(&buf, trace.Summarize(st))

	out := buf.String()
	assert.Contains(t, out, "=== Trace Summary ===")
	assert.Contains(t, out, "Best Fitness    : 150.0 (generation 1)")
	assert.Contains(t, out, "Decisions       : 2 (1 deaths)")
	assert.Contains(t, out, "eat")
}

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["run"])
	assert.True(t, names["watch"])
	assert.True(t, names["serve"])
}
