package message

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/heetch/relay/codec"
)

// Message is a payload travelling on a topic.
type Message struct {
	// Topic the message was received on, or is destined for.
	Topic string

	// Payload of the message. It is never modified once the
	// message has been created.
	Payload string
}

// New creates a message for the given topic and payload.
func New(topic, payload string) Message {
	return Message{
		Topic:   topic,
		Payload: payload,
	}
}

// NewJSON creates a message for topic whose payload is v encoded
// as JSON.
func NewJSON(topic string, v interface{}) (Message, error) {
	m, err := Encode(codec.JSON(), topic, v)
	if err != nil {
		return Message{}, errors.Wrap(err, "json encode error")
	}
	return m, nil
}

// Encode creates a message for topic whose payload is v encoded with c.
func Encode(c codec.Codec, topic string, v interface{}) (Message, error) {
	data, err := c.Encode(v)
	if err != nil {
		return Message{}, err
	}
	return New(topic, string(data)), nil
}

// Decode decodes the payload as JSON into target.
func (m Message) Decode(target interface{}) error {
	if err := m.DecodeWith(codec.JSON(), target); err != nil {
		return errors.Wrapf(err, "json decode error in %s", m.Payload)
	}
	return nil
}

// DecodeWith decodes the payload into target using c.
func (m Message) DecodeWith(c codec.Codec, target interface{}) error {
	return c.Decode([]byte(m.Payload), target)
}

func (m Message) String() string {
	return fmt.Sprintf("topic=%q payload=%q", m.Topic, m.Payload)
}
