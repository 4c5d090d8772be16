package kafka_test

import (
	"bytes"
	"context"
	"log"
	"sync"

	"github.com/Shopify/sarama"

	"github.com/heetch/relay/kafka"
	"github.com/heetch/relay/message"
)

// consumerGroupClaim implements sarama.ConsumerGroupClaim interface.
type consumerGroupClaim struct {
	ch    chan *sarama.ConsumerMessage
	topic string
}

// newClaim returns a claim holding msgs, and nothing else.
func newClaim(topic string, msgs ...*sarama.ConsumerMessage) consumerGroupClaim {
	ch := make(chan *sarama.ConsumerMessage, len(msgs))
	for _, m := range msgs {
		ch <- m
	}
	close(ch)
	return consumerGroupClaim{ch: ch, topic: topic}
}

func (c consumerGroupClaim) Topic() string {
	return c.topic
}

func (consumerGroupClaim) Partition() int32 {
	return int32(0)
}

func (consumerGroupClaim) InitialOffset() int64 {
	return int64(0)
}

func (consumerGroupClaim) HighWaterMarkOffset() int64 {
	return int64(10)
}

func (c consumerGroupClaim) Messages() <-chan *sarama.ConsumerMessage {
	return c.ch
}

// consumerGroupSession implements sarama.ConsumerGroupSession interface.
// It records the marked messages.
type consumerGroupSession struct {
	ctx    context.Context
	marked []*sarama.ConsumerMessage
}

func newSession() *consumerGroupSession {
	return &consumerGroupSession{ctx: context.Background()}
}

func (*consumerGroupSession) Claims() map[string][]int32 {
	return nil
}

func (*consumerGroupSession) MemberID() string {
	return ""
}

func (*consumerGroupSession) GenerationID() int32 {
	return int32(0)
}

func (*consumerGroupSession) MarkOffset(topic string, partition int32, offset int64, metadata string) {
}

func (*consumerGroupSession) Commit() {}

func (*consumerGroupSession) ResetOffset(topic string, partition int32, offset int64, metadata string) {
}

func (s *consumerGroupSession) MarkMessage(msg *sarama.ConsumerMessage, metadata string) {
	s.marked = append(s.marked, msg)
}

func (s *consumerGroupSession) Context() context.Context {
	return s.ctx
}

type publishCall struct {
	Key  []byte
	Msgs []message.Message
}

// testPublisher implements kafka.MessagePublisher by recording its
// calls and returning err.
type testPublisher struct {
	mu    sync.Mutex
	calls []publishCall
	err   error
}

func (p *testPublisher) Publish(ctx context.Context, key []byte, msgs ...message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, publishCall{Key: key, Msgs: msgs})
	return p.err
}

type report struct {
	Msg     message.Message
	Metrics kafka.Metrics
}

// metricsReporterFunc implements kafka.MetricsReporter by calling the underlying function.
type metricsReporterFunc func(m message.Message, metrics *kafka.Metrics)

func (f metricsReporterFunc) Report(m message.Message, metrics *kafka.Metrics) {
	f(m, metrics)
}

type discardedCall struct {
	ctx context.Context
	msg *sarama.ConsumerMessage
	err error
}

func newLogger(buf *bytes.Buffer) *log.Logger {
	return log.New(buf, "[Relay] ", 0)
}

func record(topic string, offset int64, key, value string) *sarama.ConsumerMessage {
	return &sarama.ConsumerMessage{
		Topic:  topic,
		Offset: offset,
		Key:    []byte(key),
		Value:  []byte(value),
	}
}
