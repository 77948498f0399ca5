package replay_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/roomcast/core/replay"
)

func raw(s string) json.RawMessage {
	return json.RawMessage(s)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	t.Run("load of unknown room is empty, not an error", func(t *testing.T) {
		t.Parallel()

		store := replay.NewMemoryStore()
		entries, err := store.Load(context.Background(), "nowhere")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("save then load round-trips in order", func(t *testing.T) {
		t.Parallel()

		store := replay.NewMemoryStore()
		want := []json.RawMessage{raw(`{"n":1}`), raw(`{"n":2}`), raw(`{"n":3}`)}

		require.NoError(t, store.Save(context.Background(), "r1", want))

		got, err := store.Load(context.Background(), "r1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("save replaces previous history", func(t *testing.T) {
		t.Parallel()

		store := replay.NewMemoryStore()
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, "r1", []json.RawMessage{raw(`{"n":1}`)}))
		require.NoError(t, store.Save(ctx, "r1", []json.RawMessage{raw(`{"n":2}`)}))

		got, err := store.Load(ctx, "r1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.JSONEq(t, `{"n":2}`, string(got[0]))
	})

	t.Run("rooms are independent", func(t *testing.T) {
		t.Parallel()

		store := replay.NewMemoryStore()
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, "a", []json.RawMessage{raw(`{"room":"a"}`)}))
		require.NoError(t, store.Save(ctx, "b", []json.RawMessage{raw(`{"room":"b"}`)}))

		gotA, err := store.Load(ctx, "a")
		require.NoError(t, err)
		gotB, err := store.Load(ctx, "b")
		require.NoError(t, err)

		assert.JSONEq(t, `{"room":"a"}`, string(gotA[0]))
		assert.JSONEq(t, `{"room":"b"}`, string(gotB[0]))
	})

	t.Run("loaded slice is a copy", func(t *testing.T) {
		t.Parallel()

		store := replay.NewMemoryStore()
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, "r1", []json.RawMessage{raw(`{"n":1}`)}))

		got, err := store.Load(ctx, "r1")
		require.NoError(t, err)
		got[0] = raw(`{"mutated":true}`)

		again, err := store.Load(ctx, "r1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"n":1}`, string(again[0]))
	})

	t.Run("honors canceled context", func(t *testing.T) {
		t.Parallel()

		store := replay.NewMemoryStore()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.ErrorIs(t, store.Save(ctx, "r1", nil), context.Canceled)
		_, err := store.Load(ctx, "r1")
		require.ErrorIs(t, err, context.Canceled)
	})
}
