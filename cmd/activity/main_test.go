package main

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/everest-shop/internal/infrastructure/kafka"
	"github.com/example/everest-shop/internal/infrastructure/store"
	"github.com/example/everest-shop/internal/projection"
	"github.com/example/everest-shop/internal/session"
)

type blockingSink struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSink) Save(ctx context.Context, event store.Event) error {
	close(b.entered)
	<-b.release
	return nil
}

func quietLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func TestRun_WaitsForInFlightEvent(t *testing.T) {
	sink := &blockingSink{entered: make(chan struct{}), release: make(chan struct{})}
	projector := projection.NewProjector(sink)
	value, err := json.Marshal(store.Event{ID: "e1", SessionID: "s1", AggregateType: "Session", EventType: session.EventSessionStarted})
	require.NoError(t, err)

	consume := func(ctx context.Context, handler kafka.MessageHandler) error {
		_ = handler(ctx, []byte("s1"), value)
		<-ctx.Done()
		return ctx.Err()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		run(ctx, consume, projector, time.Hour, quietLogger())
	}()

	<-sink.entered
	cancel()

	select {
	case <-done:
		t.Fatal("run returned while an event was still being saved")
	case <-time.After(50 * time.Millisecond):
	}

	close(sink.release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run did not return after the save finished")
	}
	assert.Equal(t, 1, projector.Stats().Sessions)
}

func TestRun_StopsOnCancel(t *testing.T) {
	projector := projection.NewProjector(nil)
	consume := func(ctx context.Context, handler kafka.MessageHandler) error {
		<-ctx.Done()
		return ctx.Err()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		run(ctx, consume, projector, time.Millisecond, quietLogger())
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run did not stop")
	}
}
