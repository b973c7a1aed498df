package engine

import (
	"testing"
	"time"
)

func TestTraceCollector_CollectsEvents(t *testing.T) {
	tc := &TraceCollector{}

	tc.OnEvent(Event{Type: EventAlgorithmStarted, Algorithm: "pagerank"})
	tc.OnEvent(Event{Type: EventAlgorithmCompleted, Algorithm: "pagerank", Success: true, Duration: 5 * time.Millisecond})
	tc.OnEvent(Event{Type: EventPipelineCompleted, Pipeline: "rank", StepCount: 1, FailedStep: -1})

	events := tc.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Type != EventAlgorithmStarted {
		t.Errorf("events[0].Type = %q, want %q", events[0].Type, EventAlgorithmStarted)
	}
	if events[1].Duration != 5*time.Millisecond {
		t.Errorf("events[1].Duration = %v, want 5ms", events[1].Duration)
	}
	if events[2].Pipeline != "rank" {
		t.Errorf("events[2].Pipeline = %q, want rank", events[2].Pipeline)
	}
}

func TestTraceCollector_EventsOfType(t *testing.T) {
	tc := &TraceCollector{}
	tc.OnEvent(Event{Type: EventAlgorithmStarted, Algorithm: "a"})
	tc.OnEvent(Event{Type: EventAlgorithmCompleted, Algorithm: "a"})
	tc.OnEvent(Event{Type: EventAlgorithmStarted, Algorithm: "b"})

	starts := tc.EventsOfType(EventAlgorithmStarted)
	if len(starts) != 2 {
		t.Fatalf("expected 2 started events, got %d", len(starts))
	}
	if starts[0].Algorithm != "a" || starts[1].Algorithm != "b" {
		t.Errorf("unexpected algorithms: %v, %v", starts[0].Algorithm, starts[1].Algorithm)
	}
}

func TestTraceCollector_EventsReturnsCopy(t *testing.T) {
	tc := &TraceCollector{}
	tc.OnEvent(Event{Type: EventAlgorithmStarted, Algorithm: "a"})

	events := tc.Events()
	events[0].Algorithm = "mutated"

	if tc.Events()[0].Algorithm != "a" {
		t.Error("Events() did not return a copy — mutation leaked")
	}
}

func TestTraceCollector_Reset(t *testing.T) {
	tc := &TraceCollector{}
	tc.OnEvent(Event{Type: EventAlgorithmStarted})
	tc.Reset()
	if len(tc.Events()) != 0 {
		t.Errorf("expected 0 events after reset, got %d", len(tc.Events()))
	}
}

func TestObserverFunc(t *testing.T) {
	var received Event
	fn := ObserverFunc(func(e Event) { received = e })
	fn.OnEvent(Event{Type: EventPipelineCompleted, Pipeline: "p"})
	if received.Pipeline != "p" {
		t.Errorf("received = %+v, want pipeline p", received)
	}
}

func TestMultiObserver_FansOut(t *testing.T) {
	a := &TraceCollector{}
	b := &TraceCollector{}
	m := MultiObserver{a, b}

	m.OnEvent(Event{Type: EventAlgorithmStarted})

	if len(a.Events()) != 1 || len(b.Events()) != 1 {
		t.Errorf("fan-out missed an observer: a=%d b=%d", len(a.Events()), len(b.Events()))
	}
}

func TestEmitEvent_NilObserver(t *testing.T) {
	// Must not panic.
	emitEvent(nil, Event{Type: EventAlgorithmStarted})
}
