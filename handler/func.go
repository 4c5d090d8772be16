package handler

import (
	"context"

	"github.com/heetch/relay/message"
)

// Func returns a Handler that calls fn for every payload it processes
// while running. The replies returned by fn are always reported as
// processed, even when there are none.
func Func(fn func(ctx context.Context, payload string) ([]message.Message, error)) Handler {
	return &funcHandler{fn: fn}
}

type funcHandler struct {
	Lifecycle
	fn func(ctx context.Context, payload string) ([]message.Message, error)
}

func (h *funcHandler) Process(ctx context.Context, payload string) ([]message.Message, bool, error) {
	if h.IsHalted() {
		return nil, false, nil
	}
	msgs, err := h.fn(ctx, payload)
	if err != nil {
		return nil, false, err
	}
	return msgs, true, nil
}

// JSONFunc returns a Handler that decodes each payload as JSON into
// a T and passes it to fn. A payload that cannot be decoded is a
// processing error.
func JSONFunc[T any](fn func(ctx context.Context, v T) ([]message.Message, error)) Handler {
	return Func(func(ctx context.Context, payload string) ([]message.Message, error) {
		var v T
		if err := message.New("", payload).Decode(&v); err != nil {
			return nil, err
		}
		return fn(ctx, v)
	})
}
