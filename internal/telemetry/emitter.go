// Package telemetry records operational diagnostics from the
// simulation core, most importantly unknown effect keys found in
// catalog data.
package telemetry

import (
	"context"
	"time"
)

// Severity describes the telemetry severity level.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Event is one diagnostic record.
type Event struct {
	Timestamp time.Time
	Severity  Severity
	Source    string
	Message   string
}

// Sink persists telemetry events.
type Sink interface {
	AppendTelemetryEvent(ctx context.Context, evt Event) error
}

// Emitter records telemetry events. It is a no-op when the sink is
// nil, so callers never guard their Emit calls.
type Emitter struct {
	sink  Sink
	clock func() time.Time
}

// NewEmitter creates a new telemetry emitter.
func NewEmitter(sink Sink) *Emitter {
	return &Emitter{sink: sink, clock: time.Now}
}

// Emit records a telemetry event.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if e == nil || e.sink == nil {
		return nil
	}
	if evt.Timestamp.IsZero() {
		if e.clock == nil {
			evt.Timestamp = time.Now().UTC()
		} else {
			evt.Timestamp = e.clock().UTC()
		}
	}
	return e.sink.AppendTelemetryEvent(ctx, evt)
}

// EffectDiagnostics adapts the emitter to the effect package's
// diagnostics channel, so catalog typos surface as WARN events.
type EffectDiagnostics struct {
	Emitter *Emitter
}

// UnknownEffectKey implements effect.Diagnostics.
func (d EffectDiagnostics) UnknownEffectKey(source, key string) {
	_ = d.Emitter.Emit(context.Background(), Event{
		Severity: SeverityWarn,
		Source:   source,
		Message:  "unknown effect key: " + key,
	})
}

// MemorySink collects events in memory. Useful for tests and headless
// runs.
type MemorySink struct {
	Events []Event
}

// AppendTelemetryEvent implements Sink.
func (s *MemorySink) AppendTelemetryEvent(_ context.Context, evt Event) error {
	s.Events = append(s.Events, evt)
	return nil
}
