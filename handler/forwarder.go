package handler

import (
	"context"

	"github.com/heetch/relay/message"
)

// Forwarder republishes every payload it receives, unchanged, on
// another topic.
type Forwarder struct {
	Lifecycle
	topic string
}

// NewForwarder creates a running Forwarder replying on topic.
func NewForwarder(topic string) *Forwarder {
	return &Forwarder{topic: topic}
}

// Topic returns the topic replies are sent to.
func (f *Forwarder) Topic() string {
	return f.topic
}

// Process returns the payload unchanged, addressed to the forwarder's
// topic. It returns no result while the forwarder is halted.
func (f *Forwarder) Process(_ context.Context, payload string) ([]message.Message, bool, error) {
	if !f.IsRunning() {
		return nil, false, nil
	}
	return []message.Message{message.New(f.topic, payload)}, true, nil
}
