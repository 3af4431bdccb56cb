package lifecycle

// State is the lifecycle state of a [Service].
type State string

const (
	// StateNew is the state of a built service that was never started.
	StateNew State = "new"

	// StateStarting is set while start hooks run.
	StateStarting State = "starting"

	// StateRunning is the only state in which [Service.Health] can pass.
	StateRunning State = "running"

	// StateStopping is set while stop hooks run.
	StateStopping State = "stopping"

	// StateStopped follows a clean shutdown. The service may be started
	// again.
	StateStopped State = "stopped"

	// StateFailed follows a failed hook. The service may be started again.
	StateFailed State = "failed"
)

func (s State) String() string {
	return string(s)
}

// Valid reports whether s is a known state.
func (s State) Valid() bool {
	switch s {
	case StateNew, StateStarting, StateRunning, StateStopping, StateStopped, StateFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether s ends a run of the service.
func (s State) IsTerminal() bool {
	return s == StateStopped || s == StateFailed
}

var validTransitions = map[State][]State{
	StateNew:      {StateStarting, StateFailed},
	StateStarting: {StateRunning, StateFailed, StateStopping},
	StateRunning:  {StateStopping, StateFailed},
	StateStopping: {StateStopped, StateFailed},
	StateStopped:  {StateStarting},
	StateFailed:   {StateStarting},
}

// ValidTransition reports whether the state machine allows from -> to.
// Self-transitions are never allowed.
func ValidTransition(from, to State) bool {
	if from == to {
		return false
	}
	for _, t := range validTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}
