package sim

// Colony is the read-only population view a policy decides against.
type Colony interface {
	// CurrentQueen returns the queen, alive or dead, or nil if none exists.
	CurrentQueen() *Agent
	// Agents returns every tracked agent in registry order.
	Agents() []*Agent
}

// Registry is the ordered population of one generation. The queen is
// conventionally first. Membership changes only through the evolution engine.
type Registry struct {
	agents []*Agent
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{agents: make([]*Agent, 0)}
}

// Add appends an agent in spawn order.
func (r *Registry) Add(a *Agent) {
	r.agents = append(r.agents, a)
}

// Clear forgets every agent and returns the previous members.
func (r *Registry) Clear() []*Agent {
	old := r.agents
	r.agents = make([]*Agent, 0, len(old))
	return old
}

// Agents returns all tracked agents, dead or alive.
func (r *Registry) Agents() []*Agent {
	return r.agents
}

// Len returns the number of tracked agents.
func (r *Registry) Len() int {
	return len(r.agents)
}

// CurrentQueen returns the first queen in registry order.
// With several queens the later ones are never returned.
func (r *Registry) CurrentQueen() *Agent {
	for _, a := range r.agents {
		if a.IsQueen() {
			return a
		}
	}
	return nil
}

// Workers returns the non-queen agents in registry order.
func (r *Registry) Workers() []*Agent {
	workers := make([]*Agent, 0, len(r.agents))
	for _, a := range r.agents {
		if !a.IsQueen() {
			workers = append(workers, a)
		}
	}
	return workers
}

// AliveCount returns the number of living agents and how many are workers.
func (r *Registry) AliveCount() (alive, workers int) {
	for _, a := range r.agents {
		if !a.Alive {
			continue
		}
		alive++
		if !a.IsQueen() {
			workers++
		}
	}
	return alive, workers
}
