// Copyright 2025 Ripplica Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package pipeline

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ripplica/ripplica/core"
)

// Step names a pipeline stage as reported to observers.
type Step string

const (
	StepValidating  Step = "validating"
	StepSimilarity  Step = "similarity"
	StepCacheHit    Step = "cache_hit"
	StepSearching   Step = "searching"
	StepScraping    Step = "scraping"
	StepSummarizing Step = "summarizing"
	StepDone        Step = "done"
	StepInvalid     Step = "invalid"
	StepFailed      Step = "failed"
)

// StepEvent is a progress notification for one pipeline run.
type StepEvent struct {
	RunID  core.RunID `json:"run_id"`
	Step   Step       `json:"step"`
	Detail string     `json:"detail,omitempty"`
	At     time.Time  `json:"at"`
}

// terminal reports whether the step ends a run. The registry drops a
// run's subscribers after delivering a terminal event.
func (s Step) terminal() bool {
	return s == StepDone || s == StepInvalid || s == StepFailed
}

const subscriberBuffer = 16

// Registry delivers step events to per-run subscribers. Publishing is
// fire-and-forget: a subscriber that falls behind its channel buffer
// loses events rather than stalling the pipeline.
type Registry struct {
	mu     sync.Mutex
	subs   map[core.RunID][]chan StepEvent
	logger *slog.Logger
}

// NewRegistry creates an empty observer registry.
func NewRegistry() *Registry {
	return &Registry{
		subs:   make(map[core.RunID][]chan StepEvent),
		logger: slog.Default().With("component", "event-registry"),
	}
}

// Subscribe registers an observer for the given run. The returned
// channel closes after the run's terminal event or when the cancel
// function is called, whichever comes first.
func (r *Registry) Subscribe(runID core.RunID) (<-chan StepEvent, func()) {
	ch := make(chan StepEvent, subscriberBuffer)

	r.mu.Lock()
	r.subs[runID] = append(r.subs[runID], ch)
	r.mu.Unlock()

	cancel := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		chans := r.subs[runID]
		for i, c := range chans {
			if c == ch {
				r.subs[runID] = append(chans[:i], chans[i+1:]...)
				close(c)
				break
			}
		}
		if len(r.subs[runID]) == 0 {
			delete(r.subs, runID)
		}
	}
	return ch, cancel
}

// Publish delivers an event to the run's subscribers without blocking.
// Terminal events close and remove the run's subscriptions.
func (r *Registry) Publish(event StepEvent) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ch := range r.subs[event.RunID] {
		select {
		case ch <- event:
		default:
			r.logger.Debug("dropping event for slow subscriber",
				"run_id", event.RunID, "step", event.Step)
		}
	}

	if event.Step.terminal() {
		for _, ch := range r.subs[event.RunID] {
			close(ch)
		}
		delete(r.subs, event.RunID)
	}
}

// SubscriberCount returns the number of observers for a run.
func (r *Registry) SubscriberCount(runID core.RunID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs[runID])
}
