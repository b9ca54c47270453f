package pipeline

import (
	"sync"
	"testing"

	"github.com/ripplica/ripplica/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDeliversToSubscribers(t *testing.T) {
	r := NewRegistry()
	runID := core.RunID(42)

	events, cancel := r.Subscribe(runID)
	defer cancel()

	r.Publish(StepEvent{RunID: runID, Step: StepValidating})
	r.Publish(StepEvent{RunID: runID, Step: StepSearching, Detail: "3 urls"})

	first := <-events
	assert.Equal(t, StepValidating, first.Step)
	assert.False(t, first.At.IsZero(), "publish stamps the event time")

	second := <-events
	assert.Equal(t, StepSearching, second.Step)
	assert.Equal(t, "3 urls", second.Detail)
}

func TestRegistryIsolatesRuns(t *testing.T) {
	r := NewRegistry()

	a, cancelA := r.Subscribe(core.RunID(1))
	defer cancelA()
	b, cancelB := r.Subscribe(core.RunID(2))
	defer cancelB()

	r.Publish(StepEvent{RunID: 1, Step: StepValidating})

	assert.Equal(t, StepValidating, (<-a).Step)
	select {
	case ev := <-b:
		t.Fatalf("run 2 subscriber received foreign event %v", ev)
	default:
	}
}

func TestRegistryTerminalEventClosesChannel(t *testing.T) {
	r := NewRegistry()
	runID := core.RunID(7)

	events, cancel := r.Subscribe(runID)
	defer cancel()

	r.Publish(StepEvent{RunID: runID, Step: StepDone})

	ev, ok := <-events
	require.True(t, ok)
	assert.Equal(t, StepDone, ev.Step)

	_, ok = <-events
	assert.False(t, ok, "channel must close after a terminal event")
	assert.Zero(t, r.SubscriberCount(runID))
}

func TestRegistryCancelIsIdempotentAfterTerminal(t *testing.T) {
	r := NewRegistry()
	runID := core.RunID(9)

	_, cancel := r.Subscribe(runID)
	r.Publish(StepEvent{RunID: runID, Step: StepFailed})

	// The terminal event already removed the subscription; cancelling
	// afterwards must be a no-op, not a double close.
	assert.NotPanics(t, cancel)
}

func TestRegistryNonBlockingPublish(t *testing.T) {
	r := NewRegistry()
	runID := core.RunID(3)

	// Never read from the channel; publishing past the buffer must not
	// block.
	_, cancel := r.Subscribe(runID)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer*3; i++ {
			r.Publish(StepEvent{RunID: runID, Step: StepScraping})
		}
	}()
	<-done
}

func TestRegistryPublishWithoutSubscribers(t *testing.T) {
	r := NewRegistry()
	assert.NotPanics(t, func() {
		r.Publish(StepEvent{RunID: 99, Step: StepDone})
	})
}

func TestRegistryConcurrentSubscribePublish(t *testing.T) {
	r := NewRegistry()
	runID := core.RunID(5)

	// Subscribe before publishing so every reader sees the terminal
	// event and exits.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		events, cancel := r.Subscribe(runID)
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer cancel()
			for range events {
			}
		}()
	}

	for i := 0; i < 50; i++ {
		r.Publish(StepEvent{RunID: runID, Step: StepScraping})
	}
	r.Publish(StepEvent{RunID: runID, Step: StepDone})
	wg.Wait()
}
