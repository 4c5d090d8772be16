package router

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"sort"

	"github.com/heetch/relay/handler"
	"github.com/heetch/relay/message"
)

// A Router is a set of handlers, keyed by topic. Only one handler may
// exist per topic, but any number of topics may be registered. It is
// not currently possible to remove a topic.
type Router struct {
	handlers map[string]handler.Handler

	// Logger, if set, receives a line for every registration and
	// every state change.
	Logger *log.Logger
}

// New returns an empty Router.
func New() *Router {
	return new(Router)
}

// Register associates h with topic. If a handler was already
// associated with the topic, that association is replaced. Register
// panics if h is nil, including a nil pointer wrapped in the interface.
func (r *Router) Register(topic string, h handler.Handler) {
	if isNil(h) {
		panic(fmt.Sprintf("router: nil handler for topic %q", topic))
	}
	if r.handlers == nil {
		r.handlers = make(map[string]handler.Handler)
	}
	if _, ok := r.handlers[topic]; ok {
		r.logf("Replaced handler. topic=%q", topic)
	} else {
		r.logf("Registered handler. topic=%q", topic)
	}
	r.handlers[topic] = h
}

// Get returns the handler associated with topic, and a boolean
// reporting whether there is one.
func (r *Router) Get(topic string) (h handler.Handler, ok bool) {
	h, ok = r.handlers[topic]
	return
}

// Topics returns the sorted list of topics with a handler.
func (r *Router) Topics() []string {
	topics := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics
}

// Len returns the number of registered topics.
func (r *Router) Len() int {
	return len(r.handlers)
}

// State returns the state of the handler registered for topic.
func (r *Router) State(topic string) (handler.State, bool) {
	h, ok := r.handlers[topic]
	if !ok {
		return 0, false
	}
	return h.State(), true
}

// Halt halts the handler registered for topic. It does nothing if
// there is none, or if it is already halted.
func (r *Router) Halt(topic string) {
	if h, ok := r.handlers[topic]; ok {
		handler.Halt(h)
		r.logf("Halted handler. topic=%q", topic)
	}
}

// Resume resumes the handler registered for topic. It does nothing if
// there is none, or if it is already running.
func (r *Router) Resume(topic string) {
	if h, ok := r.handlers[topic]; ok {
		handler.Resume(h)
		r.logf("Resumed handler. topic=%q", topic)
	}
}

// Process hands the payload of m to the handler registered for its
// topic and returns the handler's result, error included, as is.
// It returns false if no handler is registered for the topic or if
// that handler is halted.
func (r *Router) Process(ctx context.Context, m message.Message) ([]message.Message, bool, error) {
	h, ok := r.handlers[m.Topic]
	if !ok || !handler.IsRunning(h) {
		return nil, false, nil
	}
	return h.Process(ctx, m.Payload)
}

func (r *Router) logf(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}

func isNil(h handler.Handler) bool {
	if h == nil {
		return true
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
