package sim

// HealthBand classifies queen health for presentation.
type HealthBand string

const (
	HealthBandGood     HealthBand = "good"     // above 66%
	HealthBandWarning  HealthBand = "warning"  // above 33%
	HealthBandCritical HealthBand = "critical" // 33% or less
	HealthBandDead     HealthBand = "dead"
	HealthBandNone     HealthBand = "none" // no queen
)

// AgentTelemetry is the read-only view of one agent.
type AgentTelemetry struct {
	ID        int     `json:"id"`
	Role      string  `json:"role"`
	Alive     bool    `json:"alive"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"max_health"`
	Position  GridPos `json:"position"`
}

// QueenTelemetry is the read-only view of the queen.
type QueenTelemetry struct {
	ID            int        `json:"id"`
	Alive         bool       `json:"alive"`
	Health        float64    `json:"health"`
	MaxHealth     float64    `json:"max_health"`
	HealthPercent float64    `json:"health_percent"`
	Band          HealthBand `json:"band"`
	NestsProduced int        `json:"nests_produced"`
	Position      GridPos    `json:"position"`
}

// Snapshot is a point-in-time copy of everything presentation layers may read.
// It shares no memory with the live simulation.
type Snapshot struct {
	Generation      int              `json:"generation"`
	Phase           string           `json:"phase"`
	Clock           float64          `json:"clock"`
	TimeRemaining   float64          `json:"time_remaining"`
	Population      int              `json:"population"`
	Alive           int              `json:"alive"`
	AliveWorkers    int              `json:"alive_workers"`
	BestFitnessEver float64          `json:"best_fitness_ever"`
	Queen           *QueenTelemetry  `json:"queen,omitempty"`
	Agents          []AgentTelemetry `json:"agents"`
}

// QueenHealthBand maps a queen's state to a presentation band.
func QueenHealthBand(q *Agent) HealthBand {
	switch {
	case q == nil:
		return HealthBandNone
	case !q.Alive:
		return HealthBandDead
	}
	pct := q.HealthFraction() * 100
	switch {
	case pct > 66:
		return HealthBandGood
	case pct > 33:
		return HealthBandWarning
	}
	return HealthBandCritical
}

// Snapshot copies the engine's current telemetry.
func (e *Engine) Snapshot() Snapshot {
	agents := e.registry.Agents()
	alive, workers := e.registry.AliveCount()
	snap := Snapshot{
		Generation:      e.generation,
		Phase:           e.phase.String(),
		Clock:           e.clock,
		TimeRemaining:   e.TimeRemaining(),
		Population:      len(agents),
		Alive:           alive,
		AliveWorkers:    workers,
		BestFitnessEver: e.metrics.BestFitnessEver,
		Agents:          make([]AgentTelemetry, 0, len(agents)),
	}
	for _, a := range agents {
		snap.Agents = append(snap.Agents, AgentTelemetry{
			ID:        a.ID,
			Role:      a.Role.String(),
			Alive:     a.Alive,
			Health:    a.Health,
			MaxHealth: a.MaxHealth,
			Position:  a.Position,
		})
	}
	if q := e.registry.CurrentQueen(); q != nil {
		snap.Queen = &QueenTelemetry{
			ID:            q.ID,
			Alive:         q.Alive,
			Health:        q.Health,
			MaxHealth:     q.MaxHealth,
			HealthPercent: q.HealthFraction() * 100,
			Band:          QueenHealthBand(q),
			NestsProduced: q.NestsProduced,
			Position:      q.Position,
		}
	}
	return snap
}
