// sim/simulator.go
package sim

import (
	"github.com/antymology/antsim/sim/trace"
	"github.com/sirupsen/logrus"
)

// Simulator is the fixed-step driver loop around an Engine: it holds the
// clock, the step size and the optional horizon.
type Simulator struct {
	Clock   float64
	Horizon float64 // 0 = unbounded
	Dt      float64
	Steps   int
	Engine  *Engine
	Grid    WorldGrid
	Trace   *trace.SimulationTrace
}

// NewSimulator creates a Simulator with a fresh Engine over grid.
// Panics if dt is not positive.
func NewSimulator(cfg ColonyConfig, grid WorldGrid, rng *PartitionedRNG, dt, horizon float64, traceCfg trace.TraceConfig) *Simulator {
	if dt <= 0 {
		panic("NewSimulator: dt must be > 0")
	}
	var st *trace.SimulationTrace
	if traceCfg.Level != trace.TraceLevelNone && traceCfg.Level != "" {
		st = trace.NewSimulationTrace(traceCfg)
	}
	return &Simulator{
		Horizon: horizon,
		Dt:      dt,
		Engine:  NewEngine(cfg, grid, rng, nil, st),
		Grid:    grid,
		Trace:   st,
	}
}

// Tick advances the whole colony by one step of Dt.
func (s *Simulator) Tick() {
	s.Engine.Tick(s.Dt)
	s.Steps++
	s.Clock += s.Dt
}

func (s *Simulator) pastHorizon() bool {
	return s.Horizon > 0 && s.Clock >= s.Horizon
}

// Run steps until the horizon. An unbounded simulator runs forever, so Run
// requires Horizon > 0 and returns immediately otherwise.
func (s *Simulator) Run() {
	if s.Horizon <= 0 {
		logrus.Warnf("Run called without a horizon; use RunGenerations")
		return
	}
	s.Engine.Start()
	for !s.pastHorizon() {
		s.Tick()
	}
	logrus.Infof("[t=%07.2f] Simulation ended after %d steps", s.Clock, s.Steps)
}

// RunGenerations steps until n generations have been scored, or the horizon
// is reached first.
func (s *Simulator) RunGenerations(n int) {
	s.Engine.Start()
	for len(s.Engine.Metrics().Generations) < n && !s.pastHorizon() {
		s.Tick()
	}
	logrus.Infof("[t=%07.2f] Simulation ended after %d steps, %d generation(s)",
		s.Clock, s.Steps, len(s.Engine.Metrics().Generations))
}
