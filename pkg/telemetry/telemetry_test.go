package telemetry

import (
	"errors"
	"sync"
	"testing"
)

// captureRecorder records calls for assertions.
type captureRecorder struct {
	mu         sync.Mutex
	events     []string
	exceptions []string
}

func (c *captureRecorder) RecordEvent(name string, _ map[string]string, _ map[string]float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, name)
}

func (c *captureRecorder) RecordException(_ error, bucket string, _ map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exceptions = append(c.exceptions, bucket)
}

func TestSetAndDefault(t *testing.T) {
	defer Reset()

	rec := &captureRecorder{}
	SetRecorder(rec)

	Default().RecordEvent("test-event", nil, nil)
	Default().RecordException(errors.New("boom"), "test-bucket", nil)

	if len(rec.events) != 1 || rec.events[0] != "test-event" {
		t.Errorf("events = %v, want [test-event]", rec.events)
	}
	if len(rec.exceptions) != 1 || rec.exceptions[0] != "test-bucket" {
		t.Errorf("exceptions = %v, want [test-bucket]", rec.exceptions)
	}
}

func TestSetRecorder_NilIgnored(t *testing.T) {
	defer Reset()

	rec := &captureRecorder{}
	SetRecorder(rec)
	SetRecorder(nil)

	Default().RecordEvent("still-here", nil, nil)
	if len(rec.events) != 1 {
		t.Error("nil recorder should not replace the registered one")
	}
}

func TestReset(t *testing.T) {
	SetRecorder(&captureRecorder{})
	Reset()

	if _, ok := Default().(NoopRecorder); !ok {
		t.Errorf("Default() after Reset = %T, want NoopRecorder", Default())
	}
}
