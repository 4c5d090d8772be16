package kafka

import (
	"context"
	"sync"
	"time"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"

	"github.com/heetch/relay/handler"
	"github.com/heetch/relay/message"
	"github.com/heetch/relay/router"
)

// Consumer feeds the records of a Kafka consumer group to a router
// and publishes the replies. It implements sarama.ConsumerGroupHandler.
type Consumer struct {
	config    Config
	publisher MessagePublisher

	// mu serializes every access to router.
	mu     sync.Mutex
	router *router.Router

	closeMu sync.Mutex
	closed  bool
	cancel  context.CancelFunc
	group   sarama.ConsumerGroup
}

// New creates a Consumer routing records with r and sending replies
// with p. The consumer owns r from now on: use the Consumer's
// Register, Halt and Resume methods rather than the router's.
func New(config Config, r *router.Router, p MessagePublisher) (*Consumer, error) {
	if r == nil {
		return nil, errors.New("kafka: nil router")
	}
	if p == nil {
		return nil, errors.New("kafka: nil publisher")
	}
	if config.Config == nil {
		return nil, errors.New("kafka: missing sarama configuration, use NewConfig")
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid sarama configuration")
	}
	config.logger()

	return &Consumer{
		config:    config,
		publisher: p,
		router:    r,
	}, nil
}

// Register registers h for topic on the router. Topics registered
// after Serve has been called are only consumed from the next
// rebalance onwards.
func (c *Consumer) Register(topic string, h handler.Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.router.Register(topic, h)
}

// Halt halts the handler registered for topic.
func (c *Consumer) Halt(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.router.Halt(topic)
}

// Resume resumes the handler registered for topic.
func (c *Consumer) Resume(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.router.Resume(topic)
}

// State returns the state of the handler registered for topic.
func (c *Consumer) State(topic string) (handler.State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.router.State(topic)
}

// Topics returns the topics registered on the router.
func (c *Consumer) Topics() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.router.Topics()
}

// Serve joins the consumer group and routes records until Close is
// called or ctx is done, in which case it returns nil.
func (c *Consumer) Serve(ctx context.Context) error {
	if len(c.Topics()) == 0 {
		return errors.New("kafka: no topic registered")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, err := c.start(cancel)
	if err != nil {
		return err
	}
	defer c.Close()

	go func() {
		for err := range group.Errors() {
			c.config.Logger.Printf("Consumer group error: %v\n", err)
		}
	}()

	for {
		topics := c.Topics()
		if len(topics) == 0 {
			return errors.New("kafka: no topic registered")
		}
		err := group.Consume(ctx, topics, c)
		if ctx.Err() != nil || errors.Is(err, sarama.ErrClosedConsumerGroup) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "consumer group error")
		}
	}
}

func (c *Consumer) start(cancel context.CancelFunc) (sarama.ConsumerGroup, error) {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if c.closed {
		return nil, errors.New("kafka: consumer is closed")
	}
	if c.group != nil {
		return nil, errors.New("kafka: Serve called twice")
	}
	group, err := sarama.NewConsumerGroup(c.config.KafkaAddrs, c.config.ClientID, c.config.Config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create consumer group")
	}
	c.group = group
	c.cancel = cancel
	return group, nil
}

// Close stops the consumer. It is safe to call it more than once, and
// before Serve.
func (c *Consumer) Close() error {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.group == nil {
		return nil
	}
	c.cancel()
	return errors.Wrap(c.group.Close(), "failed to close consumer group")
}

// Setup implements sarama.ConsumerGroupHandler.
func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

// Cleanup implements sarama.ConsumerGroupHandler.
func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim implements sarama.ConsumerGroupHandler. It routes the
// records of the claim one by one and marks them.
func (c *Consumer) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ctx := sess.Context()
	for {
		select {
		case cm, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if c.handle(ctx, cm, claim) {
				sess.MarkMessage(cm, "")
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// handle routes cm and publishes the replies. It returns whether the
// record offset should be marked.
func (c *Consumer) handle(ctx context.Context, cm *sarama.ConsumerMessage, claim sarama.ConsumerGroupClaim) bool {
	start := time.Now()
	m := message.New(cm.Topic, string(cm.Value))

	c.mu.Lock()
	replies, ok, err := c.router.Process(ctx, m)
	c.mu.Unlock()

	metrics := Metrics{
		Outcome:         Skipped,
		Partition:       cm.Partition,
		Offset:          cm.Offset,
		RemainingOffset: claim.HighWaterMarkOffset() - cm.Offset,
	}
	switch {
	case err != nil:
		metrics.Outcome = Failed
	case ok && len(replies) > 0:
		err = c.publisher.Publish(ctx, cm.Key, replies...)
		if err != nil {
			metrics.Outcome = Failed
		} else {
			metrics.Outcome = Processed
			metrics.Replies = len(replies)
		}
	case ok:
		metrics.Outcome = Processed
	}
	metrics.Elapsed = time.Since(start)

	if c.config.Metrics != nil {
		c.config.Metrics.Report(m, &metrics)
	}

	if err == nil {
		return true
	}
	if c.config.Discarded != nil {
		return c.config.Discarded(ctx, cm, err)
	}
	c.config.Logger.Printf("Discarded record. topic=%q partition=%d offset=%d err=%v\n", cm.Topic, cm.Partition, cm.Offset, err)
	return true
}
