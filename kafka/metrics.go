package kafka

import (
	"time"

	"github.com/heetch/relay/message"
)

// MetricsReporter is an interface that can be passed to set metrics hook to receive metrics
// from the consumer as it routes records.
type MetricsReporter interface {
	Report(message.Message, *Metrics)
}

// Outcome tells what became of a routed record.
type Outcome int

const (
	// Processed records were handled and their replies, if any, published.
	Processed Outcome = iota
	// Skipped records had no handler, or a halted one.
	Skipped
	// Failed records made their handler fail, or their replies could
	// not be published.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Processed:
		return "processed"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Metrics contains information about the routing of a record.
type Metrics struct {
	Outcome Outcome
	// Replies is the number of replies published.
	Replies int
	// Elapsed is the time spent routing the record and publishing
	// its replies.
	Elapsed time.Duration
	// Partition and Offset of the record.
	Partition int32
	Offset    int64
	// RemainingOffset is the difference between the high water mark
	// and the record offset.
	RemainingOffset int64
}
