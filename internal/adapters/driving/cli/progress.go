package cli

import (
	"context"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driving"
	"github.com/custodia-labs/foresight/internal/logger"
)

type jobEvent struct {
	jobID string
	event domain.ProgressEvent
}

// follower buffers progress events from the moment it subscribes, so
// events published before a job ID is known are not lost.
// Intermediate events may be dropped when the buffer is full; terminal ones never are.
type follower struct {
	feed  driving.ProgressFeed
	subID string
	raw   chan jobEvent
	done  chan struct{}
}

func follow(feed driving.ProgressFeed) *follower {
	f := &follower{feed: feed, raw: make(chan jobEvent, 64), done: make(chan struct{})}
	f.subID = feed.SubscribeAll(func(jobID string, event domain.ProgressEvent) {
		je := jobEvent{jobID: jobID, event: event}
		if event.Status.Terminal() {
			select {
			case f.raw <- je:
			case <-f.done:
			}
			return
		}
		select {
		case f.raw <- je:
		default:
			logger.Warn("progress: dropped %s event for job %s", event.Status, jobID)
		}
	})
	return f
}

// events streams jobID's events, closing after the terminal one or when ctx ends.
func (f *follower) events(ctx context.Context, jobID string) <-chan domain.ProgressEvent {
	out := make(chan domain.ProgressEvent, cap(f.raw))
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case je := <-f.raw:
				if je.jobID != jobID {
					continue
				}
				select {
				case out <- je.event:
				case <-ctx.Done():
					return
				}
				if je.event.Status.Terminal() {
					return
				}
			}
		}
	}()
	return out
}

// stop unsubscribes and releases any publisher blocked on a terminal event.
func (f *follower) stop() {
	f.feed.Unsubscribe(f.subID)
	close(f.done)
}
