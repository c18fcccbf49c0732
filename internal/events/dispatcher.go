package events

import (
	"context"
	"sync"
	"sync/atomic"
)

// Config controls whether session events are forwarded and how the
// queue behaves under pressure.
type Config struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// Dispatcher decouples session mutations from sink delivery: Emit hands
// the event to a single forwarding goroutine, so a slow sink never
// stalls a login or logout path.
type Dispatcher struct {
	sink       Sink
	queue      chan Event
	quit       chan struct{}
	idle       chan struct{} // closed once the forwarder has drained and exited
	dropIfFull bool

	dropped atomic.Uint64
	closing atomic.Bool
	once    sync.Once
}

// NewDispatcher starts the forwarding goroutine. A disabled config
// yields a nil dispatcher; every method tolerates a nil receiver, so
// callers emit unconditionally.
func NewDispatcher(cfg Config, sink Sink) *Dispatcher {
	if !cfg.Enabled {
		return nil
	}
	buffer := cfg.BufferSize
	if buffer <= 0 {
		buffer = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	d := &Dispatcher{
		sink:       sink,
		queue:      make(chan Event, buffer),
		quit:       make(chan struct{}),
		idle:       make(chan struct{}),
		dropIfFull: cfg.DropIfFull,
	}
	go d.forward()
	return d
}

// forward is the single consumer. On shutdown it flushes whatever is
// still queued before exiting, so Close never loses buffered events.
func (d *Dispatcher) forward() {
	defer close(d.idle)
	for {
		select {
		case event := <-d.queue:
			d.sink.Emit(context.Background(), event)
		case <-d.quit:
			d.flush()
			return
		}
	}
}

func (d *Dispatcher) flush() {
	for {
		select {
		case event := <-d.queue:
			d.sink.Emit(context.Background(), event)
		default:
			return
		}
	}
}

// Emit queues one event. With DropIfFull set, a full queue increments
// the drop counter instead of blocking; otherwise Emit waits until a
// slot frees, ctx is done, or the dispatcher shuts down.
func (d *Dispatcher) Emit(ctx context.Context, event Event) {
	if d == nil || d.closing.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if d.dropIfFull {
		select {
		case d.queue <- event:
		case <-d.quit:
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.queue <- event:
	case <-ctx.Done():
	case <-d.quit:
	}
}

// Close stops the forwarder and waits for queued events to reach the
// sink. Safe to call more than once.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		d.closing.Store(true)
		close(d.quit)
		<-d.idle
	})
}

// Dropped reports how many events DropIfFull mode discarded.
func (d *Dispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
