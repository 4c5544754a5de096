package clock

import "context"

const queueBufferSize = 256

// Queue is a headless serialized callback queue. Its Dispatch method is a
// Dispatcher; Run executes the dispatched callbacks one at a time.
type Queue struct {
	jobs chan func()
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	return &Queue{jobs: make(chan func(), queueBufferSize)}
}

// Dispatch enqueues fn. It blocks while the buffer is full.
func (q *Queue) Dispatch(fn func()) {
	q.jobs <- fn
}

// Post is an alias of Dispatch for callers that are not timers, such as
// input readers forwarding user events onto the queue.
func (q *Queue) Post(fn func()) {
	q.Dispatch(fn)
}

// Run drains the queue until ctx is cancelled.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-q.jobs:
			fn()
		}
	}
}
