package certificate

import "context"

// Event is one message from a background generation run. Exactly one event
// with Done set is sent last, also after ctx is cancelled.
type Event struct {
	Progress Progress
	Done     bool
	Result   Result
	Err      error
}

// Stream runs Generate on its own goroutine and reports progress on the
// returned channel, which is closed after the final event. Progress events
// are dropped once ctx is cancelled; the final event never is, so callers
// must read until the channel is closed.
func (g *Generator) Stream(ctx context.Context, req Request) <-chan Event {
	events := make(chan Event, 1)
	go func() {
		defer close(events)
		res, err := g.Generate(ctx, req, func(p Progress) {
			select {
			case events <- Event{Progress: p}:
			case <-ctx.Done():
			}
		})
		events <- Event{Done: true, Result: res, Err: err}
	}()
	return events
}
