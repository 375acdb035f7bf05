package booth

// StateType represents the current state of the recording booth.
type StateType int

const (
	// StateIdle indicates no capture is active.
	StateIdle StateType = iota
	// StateRequesting indicates a microphone request is pending.
	StateRequesting
	// StateCapturing indicates audio is being captured.
	StateCapturing
	// StateStopping indicates capture is winding down into a take.
	StateStopping
)

// String returns the string representation of the state.
func (s StateType) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateCapturing:
		return "capturing"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// StateMachine manages booth state transitions. A failed microphone
// request transitions Requesting back to Idle; only a successful start
// reaches Capturing.
type StateMachine struct {
	current     StateType
	transitions map[StateType][]StateType
	onEnter     map[StateType]func()
}

// NewStateMachine creates a state machine with the valid booth
// transitions.
func NewStateMachine() *StateMachine {
	return &StateMachine{
		current: StateIdle,
		transitions: map[StateType][]StateType{
			StateIdle:       {StateRequesting},
			StateRequesting: {StateCapturing, StateIdle},
			StateCapturing:  {StateStopping},
			StateStopping:   {StateIdle},
		},
		onEnter: make(map[StateType]func()),
	}
}

// Transition attempts to move to the given state, returning false when
// the transition is not valid from the current state.
func (sm *StateMachine) Transition(to StateType) bool {
	valid := false
	for _, state := range sm.transitions[sm.current] {
		if state == to {
			valid = true
			break
		}
	}
	if !valid {
		return false
	}

	sm.current = to
	if fn, ok := sm.onEnter[to]; ok && fn != nil {
		fn()
	}
	return true
}

// Current returns the current state.
func (sm *StateMachine) Current() StateType {
	return sm.current
}

// OnEnter registers a callback for entering a state.
func (sm *StateMachine) OnEnter(state StateType, fn func()) {
	sm.onEnter[state] = fn
}
