package sim

import (
	"math"

	"github.com/sirupsen/logrus"
)

// Action is the outcome of one policy evaluation.
type Action int

const (
	ActionNone          Action = iota // agent did not act (dead or not due)
	ActionDie                         // health ran out this step
	ActionDonate                      // gave health to the queen
	ActionApproachQueen               // moved (or tried to) toward the queen
	ActionEat                         // consumed the mulch beneath it
	ActionSeekFood                    // stepped toward visible mulch
	ActionDig                         // removed the block beneath it
	ActionDigBlocked                  // wanted to dig but the block is forbidden
	ActionExplore                     // wandered one cell
	ActionIdle                        // exploration draw failed or no surface
	ActionNest                        // queen placed a nest block
)

var actionNames = map[Action]string{
	ActionNone:          "none",
	ActionDie:           "die",
	ActionDonate:        "donate",
	ActionApproachQueen: "approach-queen",
	ActionEat:           "eat",
	ActionSeekFood:      "seek-food",
	ActionDig:           "dig",
	ActionDigBlocked:    "dig-blocked",
	ActionExplore:       "explore",
	ActionIdle:          "idle",
	ActionNest:          "nest",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Policy thresholds, as fractions of max health unless noted.
const (
	donateMinOwnHealth     = 0.7
	donateMaxQueenHealth   = 0.8
	donationFraction       = 0.25
	approachMinOwnHealth   = 0.6
	approachMaxQueenHealth = 0.7
	approachMinDistance    = 3.0 // grid units
	digMaxQueenDistance    = 5.0 // grid units
	mulchSearchRadius      = 3   // columns in X and Z
	mulchSearchDepth       = 2   // layers above and below
	maxClimb               = 2   // largest height change of a single step
)

// exploreOffsets are the eight unit moves in the XZ plane.
var exploreOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// ActionObserver receives every action taken by an agent.
type ActionObserver func(a *Agent, action Action)

// Policy runs the per-agent decision pipeline against a shared grid and
// colony. It is not safe for concurrent use: agents are stepped one at a time
// and each step is atomic with respect to the others.
type Policy struct {
	Grid             WorldGrid
	Colony           Colony
	Rand             RandSource
	DecisionInterval float64
	Queen            QueenConfig
	Observer         ActionObserver
}

// NewPolicy creates a Policy. Panics if grid, colony or rng is nil.
func NewPolicy(grid WorldGrid, colony Colony, rng RandSource, agentCfg AgentConfig, queenCfg QueenConfig) *Policy {
	if grid == nil || colony == nil || rng == nil {
		panic("NewPolicy: grid, colony and rng must be non-nil")
	}
	return &Policy{
		Grid:             grid,
		Colony:           colony,
		Rand:             rng,
		DecisionInterval: agentCfg.DecisionInterval,
		Queen:            queenCfg,
	}
}

func (p *Policy) observe(a *Agent, action Action) {
	if p.Observer != nil && action != ActionNone {
		p.Observer(a, action)
	}
}

// Step advances one agent by dt: health decay, then a priority decision when
// the decision timer is due, then (queen only) nest production.
// Dead or uninitialized agents are left untouched.
func (p *Policy) Step(a *Agent, dt float64) {
	if !a.Alive || !a.Initialized {
		return
	}
	if p.decay(a, dt) {
		p.observe(a, ActionDie)
		return
	}

	a.decisionTimer += dt
	if a.decisionTimer >= p.DecisionInterval {
		a.decisionTimer = 0
		p.observe(a, p.Decide(a))
	}

	if a.IsQueen() && p.tickNest(a, dt) {
		p.observe(a, ActionNest)
	}
}

// decay applies health loss for dt and reports whether the agent died.
func (p *Policy) decay(a *Agent, dt float64) bool {
	amount := a.DecayRate * dt
	if blockAt(p.Grid, a.Position.Below()) == BlockAcidic {
		amount *= 2
	}
	a.setHealth(a.Health - amount)
	if a.Health <= 0 {
		a.Die()
		return true
	}
	return false
}

// Decide evaluates priorities in order and performs the first applicable
// action: donate, approach queen, eat or seek food, dig, explore.
func (p *Policy) Decide(a *Agent) Action {
	if !a.Alive {
		return ActionNone
	}
	queen := p.Colony.CurrentQueen()

	// A queen never helps herself; the transfer would cancel out.
	if queen != nil && queen != a && queen.Alive && queen.Initialized {
		if a.Position == queen.Position &&
			a.Health > a.MaxHealth*donateMinOwnHealth &&
			queen.Health < queen.MaxHealth*donateMaxQueenHealth {
			p.donate(a, queen)
			return ActionDonate
		}
		if a.Position.Distance(queen.Position) > approachMinDistance &&
			a.Health > a.MaxHealth*approachMinOwnHealth &&
			queen.Health < queen.MaxHealth*approachMaxQueenHealth {
			p.stepToward(a, queen.Position)
			return ActionApproachQueen
		}
	}

	if a.Health < a.HungerThreshold() {
		if p.tryEat(a) {
			return ActionEat
		}
		if p.seekFood(a) {
			return ActionSeekFood
		}
	}

	if queen != nil && queen.Initialized &&
		a.Position.Distance(queen.Position) < digMaxQueenDistance &&
		p.Rand.Float64() < a.Genes.DiggingProbability {
		if p.tryDig(a) {
			return ActionDig
		}
		return ActionDigBlocked
	}

	return p.explore(a)
}

func (p *Policy) donate(a, queen *Agent) {
	amount := a.MaxHealth * donationFraction
	if a.Health <= amount {
		return
	}
	a.setHealth(a.Health - amount)
	queen.setHealth(queen.Health + amount)
}

// tryEat consumes the mulch beneath a. Co-located agents compete for the
// block by scanning the colony: the agent yields when another living, hungry
// agent with a lower ID stands on the same cell. Sated agents never claim
// the block. Whoever eats drops into the hole, so the block cannot be
// consumed twice.
func (p *Policy) tryEat(a *Agent) bool {
	below := a.Position.Below()
	if blockAt(p.Grid, below) != BlockMulch {
		return false
	}
	for _, other := range p.Colony.Agents() {
		if other == a || !other.Alive || !other.Initialized {
			continue
		}
		if other.Position.Below() == below && other.ID < a.ID && other.Health < other.HungerThreshold() {
			return false
		}
	}
	a.setHealth(a.MaxHealth)
	setBlockAt(p.Grid, below, BlockEmpty)
	a.Position = below
	return true
}

// seekFood steps toward the nearest mulch block in the search window.
func (p *Policy) seekFood(a *Agent) bool {
	mulch, ok := p.nearestMulch(a.Position)
	if !ok {
		return false
	}
	return p.stepToward(a, GridPos{X: mulch.X, Y: mulch.Y + 1, Z: mulch.Z})
}

// nearestMulch searches ±3 columns and ±2 layers around pos, excluding its
// own column. Ties keep the first block found.
func (p *Policy) nearestMulch(pos GridPos) (GridPos, bool) {
	var best GridPos
	bestDist := math.MaxFloat64
	found := false
	for dx := -mulchSearchRadius; dx <= mulchSearchRadius; dx++ {
		for dz := -mulchSearchRadius; dz <= mulchSearchRadius; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}
			for dy := -mulchSearchDepth; dy <= mulchSearchDepth; dy++ {
				cell := GridPos{X: pos.X + dx, Y: pos.Y + dy, Z: pos.Z + dz}
				if blockAt(p.Grid, cell) != BlockMulch {
					continue
				}
				if d := pos.Distance(cell); d < bestDist {
					best, bestDist, found = cell, d, true
				}
			}
		}
	}
	return best, found
}

func (p *Policy) tryDig(a *Agent) bool {
	below := a.Position.Below()
	if !blockAt(p.Grid, below).Diggable() {
		return false
	}
	setBlockAt(p.Grid, below, BlockEmpty)
	a.Position = below
	return true
}

func (p *Policy) explore(a *Agent) Action {
	if p.Rand.Float64() > a.Genes.ExplorationRate {
		return ActionIdle
	}
	off := exploreOffsets[p.Rand.Intn(len(exploreOffsets))]
	if p.tryMove(a, off[0], off[1]) {
		return ActionExplore
	}
	return ActionIdle
}

// stepToward moves one cell along the axis with the larger offset to target,
// preferring Z on ties. Returns false when already in target's column or the
// step is not walkable.
func (p *Policy) stepToward(a *Agent, target GridPos) bool {
	offX := target.X - a.Position.X
	offZ := target.Z - a.Position.Z
	var dx, dz int
	switch {
	case abs(offX) > abs(offZ):
		dx = sign(offX)
	case offZ != 0:
		dz = sign(offZ)
	default:
		return false
	}
	return p.tryMove(a, dx, dz)
}

// tryMove commits a unit move in the XZ plane if the destination column has
// a surface within reach.
func (p *Policy) tryMove(a *Agent, dx, dz int) bool {
	x, z := a.Position.X+dx, a.Position.Z+dz
	y, ok := FindSurface(p.Grid, x, z, a.Position.Y)
	if !ok || abs(y-a.Position.Y) > maxClimb {
		logrus.Tracef("agent %d: no surface at column (%d,%d) near y=%d", a.ID, x, z, a.Position.Y)
		return false
	}
	a.Position = GridPos{X: x, Y: y, Z: z}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
