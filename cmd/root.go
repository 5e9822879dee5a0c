package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/antymology/antsim/sim"
	"github.com/antymology/antsim/sim/trace"
	"github.com/antymology/antsim/sim/world"
)

var (
	// Run control
	seed        int64   // Seed for terrain, spawning, decisions and breeding
	logLevel    string  // Log verbosity level
	dt          float64 // Fixed step size in simulated time units
	generations int     // Generations to complete before stopping (run only)
	horizon     float64 // Simulated time limit; 0 = none
	traceLevel  string  // Trace verbosity: none, generations, decisions

	// Configuration sources
	presetName       string // Preset in defaults.yaml
	defaultsFilePath string // Path to defaults.yaml

	// Colony overrides; applied only when the flag is set explicitly
	populationSize     int
	generationDuration float64
	mutationChance     float64
	mutationAmount     float64
	eliteCount         int
	decisionInterval   float64
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "antsim",
	Short: "Evolving ant colony simulator on a voxel grid",
}

// runCmd runs the colony headless and reports each generation
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the colony headless for a number of generations",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if generations <= 0 && horizon <= 0 {
			logrus.Fatalf("Nothing to run: set --generations or --horizon")
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}
		colonyCfg, worldCfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		logrus.Infof("Starting colony: seed=%d population=%d generation=%.1f dt=%.2f world=%dx%dx%d",
			seed, colonyCfg.Evolution.PopulationSize, colonyCfg.Evolution.GenerationDuration, dt,
			worldCfg.SizeX, worldCfg.SizeY, worldCfg.SizeZ)

		startTime := time.Now()
		s, _ := buildSimulator(colonyCfg, worldCfg, trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		if generations > 0 {
			s.RunGenerations(generations)
		} else {
			s.Run()
		}

		s.Engine.Metrics().Print(os.Stdout)
		if s.Trace != nil {
			printTraceSummary(os.Stdout, trace.Summarize(s.Trace))
		}
		logrus.Infof("Simulation complete in %v.", time.Since(startTime).Round(time.Millisecond))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveConfig layers built-in defaults, the selected preset and explicitly
// set flags, in that order. A missing defaults file is tolerated unless its
// path was given explicitly.
func resolveConfig(cmd *cobra.Command) (sim.ColonyConfig, world.Config, error) {
	colonyCfg := sim.DefaultColonyConfig()
	worldCfg := world.DefaultConfig()

	defaults, err := loadDefaultsConfig(defaultsFilePath)
	switch {
	case err == nil:
		preset, err := defaults.Preset(presetName)
		if err != nil {
			return colonyCfg, worldCfg, err
		}
		preset.Apply(&colonyCfg, &worldCfg)
	case errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("defaults-file"):
		logrus.Warnf("%s not found, using built-in defaults", defaultsFilePath)
	default:
		return colonyCfg, worldCfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("population") {
		colonyCfg.Evolution.PopulationSize = populationSize
	}
	if flags.Changed("generation-duration") {
		colonyCfg.Evolution.GenerationDuration = generationDuration
	}
	if flags.Changed("mutation-chance") {
		colonyCfg.Evolution.MutationChance = mutationChance
	}
	if flags.Changed("mutation-amount") {
		colonyCfg.Evolution.MutationAmount = mutationAmount
	}
	if flags.Changed("elite") {
		colonyCfg.Evolution.EliteCount = eliteCount
	}
	if flags.Changed("decision-interval") {
		colonyCfg.Agent.DecisionInterval = decisionInterval
	}

	// The nest sits in the middle of the map.
	colonyCfg.Spawn.NestOrigin = sim.GridPos{X: worldCfg.SizeX / 2, Z: worldCfg.SizeZ / 2}

	if dt <= 0 {
		return colonyCfg, worldCfg, fmt.Errorf("dt must be > 0, got %v", dt)
	}
	return colonyCfg, worldCfg, colonyCfg.Validate()
}

// buildSimulator generates terrain from the seed and wraps it in a simulator.
func buildSimulator(colonyCfg sim.ColonyConfig, worldCfg world.Config, traceCfg trace.TraceConfig) (*sim.Simulator, *world.Grid) {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed))
	grid := world.Generate(worldCfg, rng.ForSubsystem(sim.SubsystemTerrain))
	logrus.Debugf("terrain: %d mulch, %d acidic blocks", grid.Count(sim.BlockMulch), grid.Count(sim.BlockAcidic))
	return sim.NewSimulator(colonyCfg, grid, rng, dt, horizon, traceCfg), grid
}

func printTraceSummary(w io.Writer, summary *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Generations     : %d\n", summary.Generations)
	fmt.Fprintf(w, "Total Nests     : %d\n", summary.TotalNests)
	fmt.Fprintf(w, "Best Fitness    : %.1f (generation %d)\n", summary.BestFitness, summary.BestGeneration)
	fmt.Fprintf(w, "Mean Best       : %.1f\n", summary.MeanBestFitness)
	fmt.Fprintf(w, "Mean Alive      : %.1f\n", summary.MeanAlive)
	if summary.TotalDecisions == 0 {
		return
	}
	fmt.Fprintf(w, "Decisions       : %d (%d deaths)\n", summary.TotalDecisions, summary.Deaths)
	actions := make([]string, 0, len(summary.ActionDistribution))
	for a := range summary.ActionDistribution {
		actions = append(actions, a)
	}
	sort.Strings(actions)
	for _, a := range actions {
		fmt.Fprintf(w, "  %-15s %d\n", a, summary.ActionDistribution[a])
	}
}

// addColonyFlags registers the configuration flags shared by run, watch and serve.
func addColonyFlags(c *cobra.Command) {
	c.Flags().Int64Var(&seed, "seed", 42, "Seed for terrain, spawning, decisions and breeding")
	c.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	c.Flags().Float64Var(&dt, "dt", 0.1, "Simulation step size in time units")
	c.Flags().Float64Var(&horizon, "horizon", 0, "Stop after this much simulated time (0 = no limit)")
	c.Flags().StringVar(&presetName, "preset", "default", "Colony preset from the defaults file")
	c.Flags().StringVar(&defaultsFilePath, "defaults-file", "defaults.yaml", "Path to the presets file")

	c.Flags().IntVar(&populationSize, "population", 15, "Agents per generation, queen included")
	c.Flags().Float64Var(&generationDuration, "generation-duration", 50, "Simulated time per generation")
	c.Flags().Float64Var(&mutationChance, "mutation-chance", 0.3, "Per-gene mutation probability")
	c.Flags().Float64Var(&mutationAmount, "mutation-amount", 0.2, "Maximum additive mutation")
	c.Flags().IntVar(&eliteCount, "elite", 3, "Top gene sets carried over unmutated")
	c.Flags().Float64Var(&decisionInterval, "decision-interval", 0.5, "Time between agent decisions (0 = every step)")
}

// init sets up CLI flags and subcommands
func init() {
	addColonyFlags(runCmd)
	runCmd.Flags().IntVar(&generations, "generations", 10, "Generations to complete (0 = run to --horizon)")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Trace level (none, generations, decisions)")

	addColonyFlags(watchCmd)
	watchCmd.Flags().IntVar(&watchFPS, "fps", 20, "Frames drawn per second")
	watchCmd.Flags().IntVar(&watchStepsPerFrame, "steps-per-frame", 2, "Simulation steps advanced per frame")

	addColonyFlags(serveCmd)
	serveCmd.Flags().StringVar(&serveTraceLevel, "trace", "generations", "Trace level (none, generations, decisions)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Telemetry listen address")
	serveCmd.Flags().Float64Var(&serveSpeed, "speed", 1, "Simulated time units per wall-clock second")

	rootCmd.AddCommand(runCmd, watchCmd, serveCmd)
}
