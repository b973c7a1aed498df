package engine

import (
	"log/slog"
	"sync"
	"time"

	"prism/pkg/dataset"
)

// EventType classifies lifecycle events for filtering and routing.
type EventType string

const (
	EventAlgorithmStarted   EventType = "algorithm_started"
	EventAlgorithmCompleted EventType = "algorithm_completed"
	EventPipelineCompleted  EventType = "pipeline_completed"
)

// Event is a single lifecycle observation. Fields not relevant to the event
// type are left zero.
type Event struct {
	Type       EventType
	Algorithm  string
	Pipeline   string
	Input      dataset.Dataset
	Output     dataset.Dataset
	Success    bool
	Duration   time.Duration
	Error      string
	StepCount  int
	FailedStep int
}

// Observer receives lifecycle events. Single-method design (like
// http.Handler) so adding new event types never breaks existing observers.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

// MultiObserver fans out events to multiple observers.
type MultiObserver []Observer

func (m MultiObserver) OnEvent(e Event) {
	for _, obs := range m {
		obs.OnEvent(e)
	}
}

// LogObserver writes lifecycle events as structured slog lines.
type LogObserver struct {
	Logger *slog.Logger
}

func (o *LogObserver) OnEvent(e Event) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []slog.Attr{
		slog.String("event", string(e.Type)),
	}
	if e.Algorithm != "" {
		attrs = append(attrs, slog.String("algorithm", e.Algorithm))
	}
	if e.Pipeline != "" {
		attrs = append(attrs, slog.String("pipeline", e.Pipeline))
	}
	if e.Input != nil {
		attrs = append(attrs, slog.String("input", e.Input.Name()))
	}
	if e.Duration > 0 {
		attrs = append(attrs, slog.Duration("elapsed", e.Duration))
	}
	if e.Type != EventAlgorithmStarted {
		attrs = append(attrs, slog.Bool("success", e.Success))
	}
	if e.Error != "" {
		attrs = append(attrs, slog.String("error", e.Error))
	}

	if e.Error != "" {
		logger.LogAttrs(nil, slog.LevelWarn, "execution", attrs...)
	} else {
		logger.LogAttrs(nil, slog.LevelInfo, "execution", attrs...)
	}
}

// TraceCollector accumulates lifecycle events in memory for post-run
// analysis. Safe for concurrent use.
type TraceCollector struct {
	mu     sync.Mutex
	events []Event
}

func (t *TraceCollector) OnEvent(e Event) {
	t.mu.Lock()
	t.events = append(t.events, e)
	t.mu.Unlock()
}

// Events returns a copy of all collected events.
func (t *TraceCollector) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Reset clears collected events.
func (t *TraceCollector) Reset() {
	t.mu.Lock()
	t.events = nil
	t.mu.Unlock()
}

// EventsOfType returns only events matching the given type.
func (t *TraceCollector) EventsOfType(typ EventType) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []Event
	for _, e := range t.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

// emitEvent safely emits an event to a possibly-nil observer.
func emitEvent(obs Observer, e Event) {
	if obs != nil {
		obs.OnEvent(e)
	}
}
