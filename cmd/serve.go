package cmd

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/antymology/antsim/sim"
	"github.com/antymology/antsim/sim/trace"
)

var (
	serveAddr       string  // Telemetry listen address
	serveSpeed      float64 // Simulated time units per wall-clock second
	serveTraceLevel string  // Trace level for the served simulation
)

// Decision records kept for /api/trace.
const (
	traceTailCap      = 1000
	traceDefaultLimit = 100
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the colony in real time and serve telemetry over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if serveSpeed <= 0 {
			logrus.Fatalf("--speed must be > 0")
		}
		if !trace.IsValidTraceLevel(serveTraceLevel) {
			logrus.Fatalf("Invalid trace level: %s", serveTraceLevel)
		}
		colonyCfg, worldCfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		s, _ := buildSimulator(colonyCfg, worldCfg, trace.TraceConfig{Level: trace.TraceLevel(serveTraceLevel)})

		board := newTelemetryBoard()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go runRealtime(ctx, s, board, serveSpeed)

		h := Handler{Board: board}
		srv := server.Default(server.WithHostPorts(serveAddr))
		h.RegisterRoutes(srv)
		logrus.Infof("telemetry server listening on %s", serveAddr)
		srv.Spin()
	},
}

// runRealtime ticks the simulator at wall-clock pace and publishes telemetry
// after every tick. It owns the simulator; nothing else may touch it.
func runRealtime(ctx context.Context, s *sim.Simulator, board *telemetryBoard, speed float64) {
	interval := time.Duration(float64(time.Second) * s.Dt / speed)
	ticker := time.NewTicker(max(interval, time.Millisecond))
	defer ticker.Stop()

	s.Engine.Start()
	board.publish(s)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.Horizon > 0 && s.Clock >= s.Horizon {
				logrus.Infof("[t=%07.2f] horizon reached, simulation paused", s.Clock)
				return
			}
			s.Tick()
			board.publish(s)
		}
	}
}

// telemetryBoard holds the latest copy of colony state for HTTP readers.
type telemetryBoard struct {
	mu              sync.RWMutex
	snapshot        sim.Snapshot
	generations     []sim.GenerationStats
	bestFitnessEver float64
	tracing         bool
	summary         *trace.TraceSummary
	decisions       []trace.DecisionRecord
}

func newTelemetryBoard() *telemetryBoard {
	return &telemetryBoard{summary: trace.Summarize(nil)}
}

// publish copies the simulator's state onto the board. Decision records are
// drained from the simulator's trace into a running summary and a bounded
// tail, so a long-running server holds at most traceTailCap of them.
func (b *telemetryBoard) publish(s *sim.Simulator) {
	snap := s.Engine.Snapshot()
	metrics := s.Engine.Metrics()
	gens := append([]sim.GenerationStats(nil), metrics.Generations...)

	var fresh []trace.DecisionRecord
	var genRecords []trace.GenerationRecord
	if s.Trace != nil {
		fresh = s.Trace.DrainDecisions()
		genRecords = s.Trace.Generations
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshot = snap
	b.generations = gens
	b.bestFitnessEver = metrics.BestFitnessEver
	b.tracing = s.Trace != nil
	if !b.tracing {
		return
	}
	b.summary.AddDecisions(fresh)
	b.summary.SetGenerations(genRecords)
	b.decisions = append(b.decisions, fresh...)
	if over := len(b.decisions) - traceTailCap; over > 0 {
		b.decisions = append([]trace.DecisionRecord(nil), b.decisions[over:]...)
	}
}

func (b *telemetryBoard) Snapshot() sim.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot
}

// Handler serves colony telemetry.
type Handler struct {
	Board *telemetryBoard
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	api := s.Group("/api")
	api.GET("/telemetry", h.telemetry)
	api.GET("/generations", h.generations)
	api.GET("/trace", h.trace)
}

type generationsResponse struct {
	BestFitnessEver float64               `json:"best_fitness_ever"`
	Generations     []sim.GenerationStats `json:"generations"`
}

type traceResponse struct {
	Summary   *trace.TraceSummary    `json:"summary"`
	Decisions []trace.DecisionRecord `json:"decisions"`
}

func (h Handler) telemetry(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, h.Board.Snapshot())
}

func (h Handler) generations(_ context.Context, ctx *app.RequestContext) {
	h.Board.mu.RLock()
	resp := generationsResponse{
		BestFitnessEver: h.Board.bestFitnessEver,
		Generations:     h.Board.generations,
	}
	h.Board.mu.RUnlock()
	if resp.Generations == nil {
		resp.Generations = []sim.GenerationStats{}
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) trace(_ context.Context, ctx *app.RequestContext) {
	limit := traceDefaultLimit
	if raw := string(ctx.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeErrorBody(ctx, consts.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	h.Board.mu.RLock()
	tracing := h.Board.tracing
	resp := traceResponse{Summary: h.Board.summary.Clone()}
	decisions := h.Board.decisions
	resp.Decisions = append([]trace.DecisionRecord{}, decisions[max(0, len(decisions)-limit):]...)
	h.Board.mu.RUnlock()

	if !tracing {
		writeErrorBody(ctx, consts.StatusNotFound, "trace_disabled", "tracing is disabled; restart with --trace")
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}
