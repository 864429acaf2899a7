package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/everest-shop/internal/infrastructure/store/mocks"
)

func TestRecorder_Record(t *testing.T) {
	es := mocks.NewMockEventStore()
	r := NewRecorder(es, nil)

	r.Session("sess-1").Record(context.Background(), AggregateCart, "ItemAddedToCart", map[string]string{"product_id": "1"})

	require.Len(t, es.AppendCalls, 1)
	call := es.AppendCalls[0]
	assert.Equal(t, "sess-1", call.SessionID)
	assert.Equal(t, AggregateCart, call.AggregateType)
	assert.Equal(t, "ItemAddedToCart", call.EventType)
}

func TestRecorder_StoreErrorIsSwallowed(t *testing.T) {
	es := mocks.NewMockEventStore()
	es.AppendErr = errors.New("broker down")
	r := NewRecorder(es, nil)

	assert.NotPanics(t, func() {
		r.Record(context.Background(), "sess-1", AggregateChat, "ChatMessageSent", nil)
	})
	assert.Len(t, es.AppendCalls, 1)
}

func TestRecorder_CancelledContextStillRecords(t *testing.T) {
	es := mocks.NewMockEventStore()
	r := NewRecorder(es, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r.Record(ctx, "sess-1", AggregateChat, "ChatReplyReceived", nil)

	assert.Len(t, es.GetEvents("sess-1"), 1)
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.Session("x").Record(context.Background(), AggregateCart, "ItemAddedToCart", nil)
	})
}
