package events

import (
	"bytes"
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"
)

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) Emit(context.Context, Event) {
	s.count.Add(1)
}

type gateSink struct {
	gate chan struct{}
}

func (s *gateSink) Emit(context.Context, Event) {
	<-s.gate
}

func TestDisabledDispatcherIsNil(t *testing.T) {
	d := NewDispatcher(Config{Enabled: false}, &countingSink{})
	if d != nil {
		t.Fatal("disabled dispatcher must be nil")
	}

	// Nil receivers are safe on every method.
	d.Emit(context.Background(), Event{EventType: "login"})
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher dropped count")
	}
	d.Close()
}

func TestDispatcherDeliversAndDrainsOnClose(t *testing.T) {
	sink := &countingSink{}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 16}, sink)

	for i := 0; i < 10; i++ {
		d.Emit(context.Background(), Event{EventType: "login", Timestamp: time.Now()})
	}
	d.Close()

	if got := sink.count.Load(); got != 10 {
		t.Fatalf("delivered = %d, want 10", got)
	}

	// Emit after Close is a silent no-op.
	d.Emit(context.Background(), Event{EventType: "logout"})
	if got := sink.count.Load(); got != 10 {
		t.Fatalf("delivered after close = %d, want 10", got)
	}
}

func TestDropIfFullCountsOverflow(t *testing.T) {
	sink := &gateSink{gate: make(chan struct{})}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	// One event occupies the sink, one fills the buffer, the rest drop.
	for i := 0; i < 10; i++ {
		d.Emit(context.Background(), Event{EventType: "login"})
	}

	if d.Dropped() == 0 {
		t.Fatal("expected dropped events")
	}

	close(sink.gate)
	d.Close()
}

func TestBlockingEmitHonorsContext(t *testing.T) {
	sink := &gateSink{gate: make(chan struct{})}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 2, DropIfFull: false}, sink)

	// Fill the buffer; the gated sink never frees a slot.
	d.Emit(context.Background(), Event{EventType: "login"})
	d.Emit(context.Background(), Event{EventType: "login"})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		d.Emit(ctx, Event{EventType: "login"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Emit did not honor context cancellation")
	}

	close(sink.gate)
	d.Close()
}

func TestJSONWriterSinkWritesLines(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), Event{EventType: "login", UserID: "u1", Success: true})
	sink.Emit(context.Background(), Event{EventType: "logout", UserID: "u1", Success: true})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}

	var event Event
	if err := json.Unmarshal(lines[0], &event); err != nil {
		t.Fatalf("unmarshal line: %v", err)
	}
	if event.EventType != "login" || event.UserID != "u1" {
		t.Fatalf("unexpected event: %+v", event)
	}
}
