package notify

import (
	"runtime/debug"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
	"github.com/custodia-labs/foresight/internal/core/ports/driving"
	"github.com/custodia-labs/foresight/internal/logger"
)

// Ensure Bus implements the interfaces.
var (
	_ driven.Notifier      = (*Bus)(nil)
	_ driving.ProgressFeed = (*Bus)(nil)
)

// allJobs is the subscription key for handlers that see every job.
const allJobs = "*"

// Handler receives one progress event for a job.
type Handler = func(jobID string, event domain.ProgressEvent)

type subscription struct {
	id      string
	handler Handler
}

// Bus is a synchronous pub-sub bus keyed by job ID.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscribe registers handler for one job's events and returns its subscription ID.
func (b *Bus) Subscribe(jobID string, handler Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New().String()
	b.subs[jobID] = append(b.subs[jobID], subscription{id: id, handler: handler})
	return id
}

// SubscribeAll registers handler for every job's events.
func (b *Bus) SubscribeAll(handler Handler) string {
	return b.Subscribe(allJobs, handler)
}

// Unsubscribe removes a subscription. It reports whether one was removed.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, subs := range b.subs {
		for i, sub := range subs {
			if sub.id != id {
				continue
			}
			rest := append(append([]subscription{}, subs[:i]...), subs[i+1:]...)
			if len(rest) == 0 {
				delete(b.subs, key)
			} else {
				b.subs[key] = rest
			}
			return true
		}
	}
	return false
}

// Publish calls the job's handlers, then the all-jobs handlers, each group
// in registration order. A panicking handler is logged and skipped.
func (b *Bus) Publish(jobID string, event domain.ProgressEvent) {
	b.mu.RLock()
	targeted := append([]subscription{}, b.subs[jobID]...)
	wildcard := append([]subscription{}, b.subs[allJobs]...)
	b.mu.RUnlock()

	for _, sub := range targeted {
		b.safeCall(sub.handler, jobID, event)
	}
	for _, sub := range wildcard {
		b.safeCall(sub.handler, jobID, event)
	}
}

func (b *Bus) safeCall(handler Handler, jobID string, event domain.ProgressEvent) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("notify: handler panicked on %s for job %s: %v\n%s",
				event.Status, jobID, r, debug.Stack())
		}
	}()
	handler(jobID, event)
}

// SubscriptionCount returns the number of active subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, subs := range b.subs {
		count += len(subs)
	}
	return count
}
