package handler

import (
	"context"

	"github.com/heetch/relay/message"
)

// Handler is the interface for processing the payloads of a topic.
// You can either embed a Lifecycle in some type and add a Process
// method by hand, or make use of Func and JSONFunc.
type Handler interface {
	// Process processes a payload received on the topic the handler
	// is registered for. It returns false when there is nothing to
	// do, which must be the case whenever the handler is halted.
	// Otherwise it returns true and the replies to publish, each on
	// its own topic. An error means the payload could not be
	// processed and must be surfaced by the caller.
	Process(ctx context.Context, payload string) ([]message.Message, bool, error)

	State() State
	SetState(State)
}

// Halt halts h.
func Halt(h Handler) {
	h.SetState(Halted)
}

// Resume resumes h.
func Resume(h Handler) {
	h.SetState(Running)
}

// IsRunning reports whether h is running.
func IsRunning(h Handler) bool {
	return h.State() == Running
}

// IsHalted reports whether h is halted.
func IsHalted(h Handler) bool {
	return !IsRunning(h)
}
