package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeReader hands out queued messages and blocks once they run out.
type fakeReader struct {
	mu        sync.Mutex
	pending   []kafkago.Message
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	if len(r.pending) > 0 {
		msg := r.pending[0]
		r.pending = r.pending[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafkago.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func (r *fakeReader) commits() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

func newTestConsumer(r messageReader) *Consumer {
	return &Consumer{reader: r, logger: zap.NewNop(), minBackoff: time.Millisecond, maxBackoff: 4 * time.Millisecond}
}

func TestConsume_RetriesFailedMessageBeforeMovingOn(t *testing.T) {
	reader := &fakeReader{pending: []kafkago.Message{{Offset: 0}, {Offset: 1}}}
	c := newTestConsumer(reader)

	var mu sync.Mutex
	var handled []int64
	failures := 2
	handler := func(_ context.Context, msg kafkago.Message) error {
		mu.Lock()
		defer mu.Unlock()
		handled = append(handled, msg.Offset)
		if msg.Offset == 0 && failures > 0 {
			failures--
			return errors.New("store down")
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Consume(ctx, handler) }()

	require.Eventually(t, func() bool { return len(reader.commits()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	assert.Equal(t, []int64{0, 1}, reader.commits())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int64{0, 0, 0, 1}, handled)
}

func TestConsume_CancelDuringRetryCommitsNothing(t *testing.T) {
	reader := &fakeReader{pending: []kafkago.Message{{Offset: 7}}}
	c := newTestConsumer(reader)

	ctx, cancel := context.WithCancel(context.Background())
	attempts := make(chan struct{}, 16)
	handler := func(context.Context, kafkago.Message) error {
		select {
		case attempts <- struct{}{}:
		default:
		}
		return errors.New("store down")
	}

	done := make(chan error, 1)
	go func() { done <- c.Consume(ctx, handler) }()

	<-attempts
	<-attempts
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Empty(t, reader.commits())
}
