// Package telemetry provides hooks for usage events and exception reporting.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific telemetry backends. Consumers register a
// recorder at startup; libraries emit events through the global accessor.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define a recorder interface for event categories
//   - Provide a no-op default implementation
//   - Allow registration of a custom implementation at startup
//
// This approach:
//   - Avoids import cycles (recorders are registered by main, not libraries)
//   - Keeps the request engine free of telemetry framework dependencies
//   - Allows different backends (log-based, OpenTelemetry, vendor SDKs)
//
// # Usage
//
// Register a recorder at application startup:
//
//	func main() {
//	    telemetry.SetRecorder(telemetry.NewLogRecorder(logger))
//	    // ... run application
//	}
//
// Libraries emit events:
//
//	telemetry.Default().RecordEvent("rest-request", props, metrics)
package telemetry

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Recorder receives usage events and exceptions from the request engine.
type Recorder interface {
	// RecordEvent records a named event with string properties and
	// numeric metrics (e.g. durations, counts).
	RecordEvent(name string, properties map[string]string, metrics map[string]float64)

	// RecordException records a failure. The bucket groups related
	// failures (e.g. "rest-request-failed") for aggregation.
	RecordException(err error, bucket string, properties map[string]string)
}

// NoopRecorder is a no-op implementation of Recorder.
type NoopRecorder struct{}

func (NoopRecorder) RecordEvent(string, map[string]string, map[string]float64) {}
func (NoopRecorder) RecordException(error, string, map[string]string)          {}

// LogRecorder writes telemetry events to a logger at debug level.
// Each process run is tagged with a random run identifier so events from
// one invocation can be correlated in aggregated logs.
type LogRecorder struct {
	logger *log.Logger
	runID  string
}

// NewLogRecorder creates a LogRecorder writing to logger.
func NewLogRecorder(logger *log.Logger) *LogRecorder {
	return &LogRecorder{logger: logger, runID: uuid.NewString()}
}

func (r *LogRecorder) RecordEvent(name string, properties map[string]string, metrics map[string]float64) {
	args := []any{"run", r.runID}
	for k, v := range properties {
		args = append(args, k, v)
	}
	for k, v := range metrics {
		args = append(args, k, v)
	}
	r.logger.Debug("event: "+name, args...)
}

func (r *LogRecorder) RecordException(err error, bucket string, properties map[string]string) {
	args := []any{"run", r.runID, "bucket", bucket, "error", err}
	for k, v := range properties {
		args = append(args, k, v)
	}
	r.logger.Debug("exception", args...)
}

var (
	recorder   Recorder = NoopRecorder{}
	recorderMu sync.RWMutex
)

// SetRecorder registers a custom recorder.
// This should be called once at application startup before any requests.
func SetRecorder(r Recorder) {
	recorderMu.Lock()
	defer recorderMu.Unlock()
	if r != nil {
		recorder = r
	}
}

// Default returns the registered recorder.
func Default() Recorder {
	recorderMu.RLock()
	defer recorderMu.RUnlock()
	return recorder
}

// Reset restores the no-op recorder.
// This is primarily useful for testing.
func Reset() {
	recorderMu.Lock()
	defer recorderMu.Unlock()
	recorder = NoopRecorder{}
}
