package trace

// Level controls the verbosity of decision tracing.
type Level string

const (
	// LevelNone disables tracing (zero overhead).
	LevelNone Level = "none"
	// LevelDecisions captures every per-location decision.
	LevelDecisions Level = "decisions"
)

// validLevels maps accepted trace level strings.
var validLevels = map[Level]bool{
	LevelNone:      true,
	LevelDecisions: true,
	"":             true, // empty defaults to none
}

// IsValidLevel returns true if the given level string is a recognized trace level.
func IsValidLevel(level string) bool {
	return validLevels[Level(level)]
}

// Config controls trace collection behavior.
type Config struct {
	Level Level
}

// Enabled reports whether records should be collected.
func (c Config) Enabled() bool { return c.Level == LevelDecisions }

// SimulationTrace collects decision records during a simulation run.
type SimulationTrace struct {
	Config    Config
	Locations []LocationRecord
}

// New creates a SimulationTrace ready for recording.
func New(config Config) *SimulationTrace {
	return &SimulationTrace{
		Config:    config,
		Locations: make([]LocationRecord, 0),
	}
}

// RecordLocation appends a per-location decision record. No-op when
// tracing is disabled, so callers need not guard the call.
func (st *SimulationTrace) RecordLocation(record LocationRecord) {
	if st == nil || !st.Config.Enabled() {
		return
	}
	st.Locations = append(st.Locations, record)
}

// ForVariable returns the records belonging to one variable, in visit order.
func (st *SimulationTrace) ForVariable(name string) []LocationRecord {
	if st == nil {
		return nil
	}
	var out []LocationRecord
	for _, r := range st.Locations {
		if r.Variable == name {
			out = append(out, r)
		}
	}
	return out
}
