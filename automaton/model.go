package automaton

// Metrics summarizes the effect of minimization on the state model.
type Metrics struct {
	OriginalStateCount  int     `json:"original_state_count"`
	MinimizedStateCount int     `json:"minimized_state_count"`
	OptimizationRatio   float64 `json:"optimization_ratio"`
}

// Model owns one instance of the parse-phase automaton together with its
// minimization result. Every Model is an independent per-invocation
// context: nothing is cached at package level, so concurrent parses never
// share state.
//
// The model's current state is not advanced by token consumption. The
// equivalence class it reports is descriptive metadata stamped onto tree
// nodes, not a reflection of parse progress.
type Model struct {
	states  []*State
	current *State
	classes []EquivalenceClass
	classOf map[*State]int
}

// NewModel builds a fresh model positioned on the Initial state, not yet
// minimized.
func NewModel() *Model {
	states := ParsePhases()
	return &Model{states: states, current: states[0]}
}

// States returns the model's states in their fixed order.
func (m *Model) States() []*State {
	return m.states
}

// Minimize computes the model's equivalence classes and returns them.
// Calling it again recomputes from scratch.
func (m *Model) Minimize() []EquivalenceClass {
	m.classes = Minimize(m.states)

	m.classOf = make(map[*State]int, len(m.states))
	for _, c := range m.classes {
		for _, st := range c.States {
			m.classOf[st] = c.ID
		}
	}

	return m.classes
}

// Minimized reports whether Minimize has run.
func (m *Model) Minimized() bool {
	return m.classes != nil
}

// CurrentClass returns the minimized class id of the model's current state.
// The second result is false when the model has not been minimized yet.
func (m *Model) CurrentClass() (int, bool) {
	if m.classOf == nil {
		return 0, false
	}

	id, ok := m.classOf[m.current]
	return id, ok
}

// Metrics reports the state counts before and after minimization. The
// ratio is minimized over original.
func (m *Model) Metrics() Metrics {
	original := len(m.states)
	minimized := len(m.classes)

	var ratio float64
	if original > 0 {
		ratio = float64(minimized) / float64(original)
	}

	return Metrics{
		OriginalStateCount:  original,
		MinimizedStateCount: minimized,
		OptimizationRatio:   ratio,
	}
}
