package kafka

import (
	"context"
	"time"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
	"github.com/rogpeppe/fastuuid"
	"gopkg.in/retry.v1"

	"github.com/heetch/relay/message"
)

var uuids = fastuuid.MustNewGenerator()

// MessagePublisher sends replies to the outside world. A nil key
// means the replies are not keyed.
type MessagePublisher interface {
	Publish(ctx context.Context, key []byte, msgs ...message.Message) error
}

// Publisher sends messages to Kafka.
// It embeds the sarama.SyncProducer type.
type Publisher struct {
	sarama.SyncProducer

	config Config
}

// NewPublisher creates a Publisher.
// This Publisher is synchronous, this means that it will wait for all the replicas to
// acknowledge the messages.
func NewPublisher(config Config) (*Publisher, error) {
	p, err := sarama.NewSyncProducer(config.KafkaAddrs, config.Config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create a producer")
	}

	return NewPublisherFrom(p, config), nil
}

// NewPublisherFrom creates a Publisher using the given SyncProducer. Useful when
// wanting to share the same underlying connection.
func NewPublisherFrom(producer sarama.SyncProducer, config Config) *Publisher {
	return &Publisher{SyncProducer: producer, config: config}
}

// Publish sends msgs to Kafka synchronously, in a single batch. Messages
// that could not be sent are retried until they are, until
// MaxPublishAttempts is reached, or until ctx is done.
func (p *Publisher) Publish(ctx context.Context, key []byte, msgs ...message.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "failed to publish messages")
	}

	pending := make([]*sarama.ProducerMessage, len(msgs))
	for i, m := range msgs {
		pending[i] = p.producerMessage(key, m)
	}

	var err error
	for a := retry.StartWithCancel(p.config.retryStrategy(), nil, ctx.Done()); a.Next(); {
		err = p.SyncProducer.SendMessages(pending)
		if err == nil {
			return nil
		}
		pending = unsent(pending, err)
		if a.More() {
			p.config.logger().Printf("Failed to publish replies, retrying. count=%d err=%v\n", len(pending), err)
		}
	}
	if err == nil {
		err = ctx.Err()
	}
	return errors.Wrap(err, "failed to publish messages")
}

func (p *Publisher) producerMessage(key []byte, m message.Message) *sarama.ProducerMessage {
	pm := &sarama.ProducerMessage{
		Topic: m.Topic,
		Value: sarama.StringEncoder(m.Payload),
		Headers: []sarama.RecordHeader{{
			Key:   []byte("Message-Id"),
			Value: []byte(uuids.Hex128()),
		}, {
			Key:   []byte("Produced-At"),
			Value: []byte(time.Now().UTC().Format(time.RFC3339Nano)),
		}},
	}
	if key != nil {
		pm.Key = sarama.ByteEncoder(key)
	}
	return pm
}

// unsent returns the messages of a failed batch that must be sent
// again. When sarama does not tell which ones failed, the whole batch
// is.
func unsent(batch []*sarama.ProducerMessage, err error) []*sarama.ProducerMessage {
	var perrs sarama.ProducerErrors
	if !errors.As(err, &perrs) {
		return batch
	}
	failed := make([]*sarama.ProducerMessage, 0, len(perrs))
	for _, perr := range perrs {
		failed = append(failed, perr.Msg)
	}
	return failed
}
