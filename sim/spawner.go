package sim

// Spawner creates and destroys agents on behalf of the evolution engine.
type Spawner interface {
	SpawnAgent(role Role, genes GeneSet, pos GridPos) *Agent
	DestroyAgent(a *Agent)
}

// AgentFactory is the in-process Spawner. IDs increase monotonically across
// generations, so an ID is never reused within a run.
type AgentFactory struct {
	cfg    AgentConfig
	nextID int
	live   int
}

// NewAgentFactory creates a factory producing agents with cfg physiology.
func NewAgentFactory(cfg AgentConfig) *AgentFactory {
	return &AgentFactory{cfg: cfg}
}

// SpawnAgent creates an uninitialized agent placed at pos.
func (f *AgentFactory) SpawnAgent(role Role, genes GeneSet, pos GridPos) *Agent {
	a := NewAgent(f.nextID, role, genes, f.cfg)
	a.Position = pos
	f.nextID++
	f.live++
	return a
}

// DestroyAgent retires an agent. A destroyed agent never acts again.
func (f *AgentFactory) DestroyAgent(a *Agent) {
	if a == nil {
		return
	}
	a.Alive = false
	a.Initialized = false
	f.live--
}

// Live returns the number of spawned agents not yet destroyed.
func (f *AgentFactory) Live() int {
	return f.live
}
