package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventStore_Append(t *testing.T) {
	es := NewEventStore(nil)

	event, err := es.Append(context.Background(), "sess-1", "Cart", "ItemAddedToCart", map[string]string{"product_id": "1"})

	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "sess-1", event.SessionID)
	assert.Equal(t, 1, event.Version)

	var data map[string]string
	require.NoError(t, json.Unmarshal(event.Data, &data))
	assert.Equal(t, "1", data["product_id"])
}

func TestEventStore_VersionsArePerSession(t *testing.T) {
	es := NewEventStore(nil)
	ctx := context.Background()

	_, _ = es.Append(ctx, "a", "Cart", "ItemAddedToCart", nil)
	_, _ = es.Append(ctx, "a", "Cart", "ItemAddedToCart", nil)
	b, err := es.Append(ctx, "b", "Chat", "ChatMessageSent", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, b.Version)
	events := es.GetEvents("a")
	require.Len(t, events, 2)
	assert.Equal(t, 2, events[1].Version)
	assert.Len(t, es.GetEvents("b"), 1)
}

func TestEventStore_HistoryIsBounded(t *testing.T) {
	es := NewEventStore(nil)
	es.perSession = 3

	for i := 0; i < 5; i++ {
		_, err := es.Append(context.Background(), "a", "Cart", "ItemAddedToCart", i)
		require.NoError(t, err)
	}

	events := es.GetEvents("a")
	require.Len(t, events, 3)
	assert.Equal(t, 3, events[0].Version)
	assert.Equal(t, 5, events[2].Version)
}

func TestEventStore_UnmarshalableData(t *testing.T) {
	es := NewEventStore(nil)

	_, err := es.Append(context.Background(), "a", "Cart", "Bad", make(chan int))

	assert.Error(t, err)
	assert.Empty(t, es.GetEvents("a"))
}

func TestEventStore_Forget(t *testing.T) {
	es := NewEventStore(nil)
	_, _ = es.Append(context.Background(), "a", "Cart", "ItemAddedToCart", nil)

	es.Forget("a")

	assert.Empty(t, es.GetEvents("a"))
	e, err := es.Append(context.Background(), "a", "Cart", "ItemAddedToCart", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, e.Version)
}
