package converter

import "time"

// Event is the lifecycle stream a running batch reports to its consumer.
// Events from the same worker arrive in the order they were sent; no order
// is guaranteed across different files.
type Event interface{ event() }

// MessageEvent carries human-readable batch narration.
type MessageEvent struct {
	Text string
}

// StartProcessingEvent marks a unit of work being picked up by a worker.
type StartProcessingEvent struct {
	Path string
}

// FinishedProcessingEvent reports the outcome of one unit of work. It is
// only ever sent for units that emitted a StartProcessingEvent.
type FinishedProcessingEvent struct {
	Path     string
	Success  bool
	Duration time.Duration
}

// QueueCompletedEvent is sent exactly once per batch, after every dispatched
// unit has returned, whether the batch ran out naturally or was stopped.
type QueueCompletedEvent struct {
	Duration time.Duration
}

func (MessageEvent) event()            {}
func (StartProcessingEvent) event()    {}
func (FinishedProcessingEvent) event() {}
func (QueueCompletedEvent) event()     {}

// Emitter fans events from many workers into a single consumer. A batch
// must not keep reporting into the void, so Emit reports delivery failure
// instead of blocking forever once the consumer is gone.
type Emitter struct {
	ch   chan Event
	done chan struct{}
}

func NewEmitter(buffer int) *Emitter {
	return &Emitter{
		ch:   make(chan Event, buffer),
		done: make(chan struct{}),
	}
}

// Events is the consumer side of the stream.
func (e *Emitter) Events() <-chan Event { return e.ch }

// CloseConsumer marks the consumer as gone. Call at most once.
func (e *Emitter) CloseConsumer() { close(e.done) }

// Close ends the stream. Only the batch calls this, after all workers have
// returned.
func (e *Emitter) Close() { close(e.ch) }

// Emit delivers ev unless the consumer has gone away. A false return means
// delivery failed and the batch should abort its unstarted remainder.
func (e *Emitter) Emit(ev Event) bool {
	select {
	case <-e.done:
		return false
	default:
	}

	select {
	case e.ch <- ev:
		return true
	case <-e.done:
		return false
	}
}
