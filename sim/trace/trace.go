package trace

// TraceLevel controls the verbosity of colony tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelGenerations captures one record per completed generation.
	TraceLevelGenerations TraceLevel = "generations"
	// TraceLevelDecisions captures generations plus every agent action.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:        true,
	TraceLevelGenerations: true,
	TraceLevelDecisions:   true,
	"":                    true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// RecordsDecisions reports whether per-action records are kept.
func (c TraceConfig) RecordsDecisions() bool {
	return c.Level == TraceLevelDecisions
}

// RecordsGenerations reports whether per-generation records are kept.
func (c TraceConfig) RecordsGenerations() bool {
	return c.Level == TraceLevelDecisions || c.Level == TraceLevelGenerations
}

// SimulationTrace collects records during a colony simulation.
type SimulationTrace struct {
	Config      TraceConfig
	Decisions   []DecisionRecord
	Generations []GenerationRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:      config,
		Decisions:   make([]DecisionRecord, 0),
		Generations: make([]GenerationRecord, 0),
	}
}

// RecordDecision appends an agent action record.
func (st *SimulationTrace) RecordDecision(record DecisionRecord) {
	st.Decisions = append(st.Decisions, record)
}

// RecordGeneration appends a completed-generation record.
func (st *SimulationTrace) RecordGeneration(record GenerationRecord) {
	st.Generations = append(st.Generations, record)
}

// DrainDecisions returns the decision records collected since the last drain
// and empties the buffer.
func (st *SimulationTrace) DrainDecisions() []DecisionRecord {
	drained := st.Decisions
	st.Decisions = make([]DecisionRecord, 0)
	return drained
}
