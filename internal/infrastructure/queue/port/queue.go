package port

import (
	"context"
	"time"
)

// Task is one background job: a stable type name plus an opaque payload.
// Encoding of the payload is up to the producer and its handler.
type Task struct {
	Type    string
	Payload []byte
}

// Handler processes a Task. A non-nil error requeues the task under the
// adapter's retry policy, so handlers must be idempotent.
type Handler func(ctx context.Context, task Task) error

// EnqueueOption tunes a single enqueue. Zero values mean "adapter default";
// fields the backend cannot express are ignored.
type EnqueueOption struct {
	Queue     string        // logical queue name
	ProcessIn time.Duration // delay before the task becomes runnable
	MaxRetry  int           // retry budget before the task is parked
	UniqueTTL time.Duration // suppress duplicate enqueues within this window
}

// Client hands tasks to the queue.
type Client interface {
	Enqueue(ctx context.Context, t Task, opts ...EnqueueOption) (id string, err error)
	Close() error
}

// Server consumes tasks. Run blocks until the context is canceled or Stop is
// called; handlers must be registered before Run.
type Server interface {
	Register(taskType string, h Handler)
	Run(ctx context.Context) error
	Stop(ctx context.Context) error
}
