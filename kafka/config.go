package kafka

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/Shopify/sarama"
	"gopkg.in/retry.v1"
)

// Config is used to configure the Consumer and the Publisher.
type Config struct {
	*sarama.Config

	// KafkaAddrs holds kafka brokers addresses. There must be at least
	// one entry in the slice.
	// Default to localhost:9092.
	KafkaAddrs []string

	// Metrics stores a type that implements the MetricsReporter interface.
	// If you provide an implementation, then its Report function will be
	// called every time a record has been routed.
	Metrics MetricsReporter

	// Discarded is called when a handler returns an error, or when its
	// replies cannot be published. It returns whether the record
	// offset should be marked. If nil, the error is logged and the
	// offset marked.
	Discarded func(ctx context.Context, m *sarama.ConsumerMessage, err error) bool

	// If you wish to provide a different value for the Logger, you must
	// do this prior to calling Consumer.Serve.
	Logger *log.Logger

	// MaxRetryInterval controls the maximum length of time that
	// the Publisher will wait before trying to publish replies
	// that failed the first time around.
	// Default to 5 seconds.
	MaxRetryInterval time.Duration

	// MaxPublishAttempts is the number of times the Publisher tries
	// to send replies before giving up.
	// Default to 5.
	MaxPublishAttempts int
}

// NewConfig creates a config with sane defaults.
func NewConfig(clientID string, addrs ...string) Config {
	var c Config

	c.Config = sarama.NewConfig()
	c.ClientID = clientID
	// Specify that we are using at least Kafka v1.0
	c.Version = sarama.V1_0_0_0

	c.Consumer.Return.Errors = true
	// Distribute load across instances using round robin strategy
	c.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin

	c.Producer.RequiredAcks = sarama.WaitForAll // Wait for all in-sync replicas to ack the replies
	c.Producer.Retry.Max = 3                    // Retry up to 3 times to produce the replies
	// required for the SyncProducer, see https://godoc.org/github.com/Shopify/sarama#SyncProducer
	c.Producer.Return.Successes = true
	c.Producer.Return.Errors = true
	// Replies to the same record key land on the same partition
	c.Producer.Partitioner = sarama.NewHashPartitioner

	c.KafkaAddrs = addrs
	if len(c.KafkaAddrs) == 0 {
		c.KafkaAddrs = []string{"localhost:9092"}
	}

	c.MaxRetryInterval = 5 * time.Second
	c.MaxPublishAttempts = 5

	c.Logger = log.New(io.Discard, "[Relay] ", log.LstdFlags)

	return c
}

func (c *Config) retryStrategy() retry.Strategy {
	attempts := c.MaxPublishAttempts
	if attempts < 1 {
		attempts = 1
	}
	return retry.LimitCount(attempts, retry.Exponential{
		Initial:  time.Millisecond,
		Factor:   2,
		MaxDelay: c.MaxRetryInterval,
		Jitter:   true,
	})
}

func (c *Config) logger() *log.Logger {
	if c.Logger == nil {
		c.Logger = log.New(io.Discard, "[Relay] ", log.LstdFlags)
	}
	return c.Logger
}
