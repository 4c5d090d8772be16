package handler

// State is the lifecycle state of a handler.
type State int

const (
	// Running handlers process their payloads. It is the zero value.
	Running State = iota
	// Halted handlers ignore their payloads until resumed.
	Halted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	}
	return "unknown"
}

// Lifecycle holds the State of a handler. Its zero value is Running.
// Embed it in a handler type to get the State and SetState methods
// required by the Handler interface.
type Lifecycle struct {
	state State
}

// State returns the current state.
func (l *Lifecycle) State() State {
	return l.state
}

// SetState sets the current state.
func (l *Lifecycle) SetState(s State) {
	l.state = s
}

// Halt sets the state to Halted. Halting a halted handler does nothing.
func (l *Lifecycle) Halt() {
	l.SetState(Halted)
}

// Resume sets the state to Running. Resuming a running handler does nothing.
func (l *Lifecycle) Resume() {
	l.SetState(Running)
}

// IsRunning reports whether the state is Running.
func (l *Lifecycle) IsRunning() bool {
	return l.State() == Running
}

// IsHalted reports whether the state is Halted.
func (l *Lifecycle) IsHalted() bool {
	return !l.IsRunning()
}
