package sim

import "github.com/sirupsen/logrus"

// Role distinguishes the single queen from her workers.
type Role int

const (
	RoleWorker Role = iota
	RoleQueen
)

func (r Role) String() string {
	if r == RoleQueen {
		return "queen"
	}
	return "worker"
}

// Agent is the mutable state of one colony member.
//
// Lifecycle: spawned (Initialized=false) → Initialize → stepped every tick →
// optionally dead (terminal) → destroyed at the generation boundary.
type Agent struct {
	ID          int
	Role        Role
	Position    GridPos
	Health      float64
	MaxHealth   float64
	DecayRate   float64
	Alive       bool
	Initialized bool
	Genes       GeneSet

	// NestsProduced only grows; it is meaningful for the queen.
	NestsProduced int

	decisionTimer float64
	nestTimer     float64
}

// NewAgent creates a living, uninitialized agent at full health.
func NewAgent(id int, role Role, genes GeneSet, cfg AgentConfig) *Agent {
	return &Agent{
		ID:        id,
		Role:      role,
		Health:    cfg.MaxHealth,
		MaxHealth: cfg.MaxHealth,
		DecayRate: cfg.HealthDecayRate,
		Alive:     true,
		Genes:     genes,
	}
}

// IsQueen reports whether the agent holds the queen role.
func (a *Agent) IsQueen() bool {
	return a.Role == RoleQueen
}

// Initialize snaps the agent onto the surface near spawn and marks it ready
// to act. It must run before the agent's first step; later calls are ignored.
func (a *Agent) Initialize(grid WorldGrid, spawn GridPos) {
	if a.Initialized {
		return
	}
	if y, ok := FindSurface(grid, spawn.X, spawn.Z, spawn.Y); ok {
		a.Position = GridPos{X: spawn.X, Y: y, Z: spawn.Z}
	} else {
		a.Position = spawn
	}
	a.Initialized = true
}

// setHealth stores v clamped to [0, MaxHealth].
func (a *Agent) setHealth(v float64) {
	switch {
	case v < 0:
		a.Health = 0
	case v > a.MaxHealth:
		a.Health = a.MaxHealth
	default:
		a.Health = v
	}
}

// Die moves the agent into the terminal dead state. Calling it again has no
// effect.
func (a *Agent) Die() {
	if !a.Alive {
		return
	}
	a.Alive = false
	a.setHealth(0)
	logrus.Debugf("agent %d (%s) died at %v", a.ID, a.Role, a.Position)
}

// HungerThreshold is the health below which the agent looks for food.
func (a *Agent) HungerThreshold() float64 {
	return a.MaxHealth * 0.6 * a.Genes.FoodSeekingWeight
}

// HealthFraction returns health as a fraction of max health.
func (a *Agent) HealthFraction() float64 {
	if a.MaxHealth <= 0 {
		return 0
	}
	return a.Health / a.MaxHealth
}
