package room_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/roomcast/core/room"
)

type recordingSink struct {
	chunks [][]byte
	failAt int // fail the write with this zero-based index; -1 never fails
	writes int
	closed bool
}

func newRecordingSink() *recordingSink {
	return &recordingSink{failAt: -1}
}

func (s *recordingSink) Write(chunk []byte) error {
	idx := s.writes
	s.writes++
	if s.failAt >= 0 && idx >= s.failAt {
		return errors.New("sink: broken pipe")
	}
	s.chunks = append(s.chunks, chunk)
	return nil
}

func (s *recordingSink) Close() error {
	s.closed = true
	return nil
}

func TestClientQueue(t *testing.T) {
	t.Parallel()

	t.Run("drains in FIFO order", func(t *testing.T) {
		t.Parallel()

		sink := newRecordingSink()
		client := room.NewQueueClient(sink, 100)

		client.Push([]byte("a"))
		client.Push([]byte("b"))
		client.Push([]byte("c"))
		require.NoError(t, client.Drain())

		require.Len(t, sink.chunks, 3)
		assert.Equal(t, "a", string(sink.chunks[0]))
		assert.Equal(t, "b", string(sink.chunks[1]))
		assert.Equal(t, "c", string(sink.chunks[2]))
	})

	t.Run("overflow drops the oldest, keeps the most recent", func(t *testing.T) {
		t.Parallel()

		sink := newRecordingSink()
		client := room.NewQueueClient(sink, 100)

		for i := 0; i < 250; i++ {
			client.Push(fmt.Appendf(nil, "chunk-%03d", i))
		}
		require.NoError(t, client.Drain())

		require.Len(t, sink.chunks, 100)
		assert.Equal(t, "chunk-150", string(sink.chunks[0]))
		assert.Equal(t, "chunk-249", string(sink.chunks[99]))
	})

	t.Run("write failure kills the channel and discards the rest", func(t *testing.T) {
		t.Parallel()

		sink := newRecordingSink()
		sink.failAt = 1
		client := room.NewQueueClient(sink, 100)

		client.Push([]byte("a"))
		client.Push([]byte("b"))
		client.Push([]byte("c"))

		require.Error(t, client.Drain())
		assert.False(t, client.Alive())
		assert.Len(t, sink.chunks, 1, "only the write before the failure lands")

		// A dead channel ignores further traffic.
		client.Push([]byte("d"))
		require.NoError(t, client.Drain())
		assert.Len(t, sink.chunks, 1)
	})

	t.Run("close releases the sink", func(t *testing.T) {
		t.Parallel()

		sink := newRecordingSink()
		client := room.NewQueueClient(sink, 100)
		client.Close()

		assert.True(t, sink.closed)
		assert.False(t, client.Alive())
	})
}
