package rest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// recordingDisplay captures render calls for assertions.
type recordingDisplay struct {
	mu     sync.Mutex
	ticks  int
	result string
}

func (d *recordingDisplay) Tick(glyph string, elapsed time.Duration, description string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ticks++
}

func (d *recordingDisplay) Done(description, result string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.result = result
}

func (d *recordingDisplay) snapshot() (int, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ticks, d.result
}

func TestTask_Completes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	task := StartTask(context.Background(), "fetch", "GET", server.URL, nil, nil, time.Second)
	res, err := task.Result()
	if err != nil {
		t.Fatalf("Result() failed: %v", err)
	}
	if task.State() != TaskCompleted {
		t.Errorf("state = %s, want completed", task.State())
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", res.StatusCode)
	}
}

func TestTask_FailsOnErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	task := StartTask(context.Background(), "fetch", "GET", server.URL, nil, nil, time.Second)
	res, err := task.Result()
	if err != nil {
		t.Fatalf("error statuses carry a response, not an error: %v", err)
	}
	if task.State() != TaskFailed {
		t.Errorf("state = %s, want failed", task.State())
	}
	if res.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", res.StatusCode)
	}
}

func TestTask_FailsOnTransportError(t *testing.T) {
	task := StartTask(context.Background(), "fetch", "GET", "http://127.0.0.1:1", nil, nil, time.Second)
	res, err := task.Result()
	if err == nil {
		t.Fatal("want a transport error")
	}
	if res != nil {
		t.Errorf("res = %v, want nil on transport failure", res)
	}
	if task.State() != TaskFailed {
		t.Errorf("state = %s, want failed", task.State())
	}
}

func TestTask_Stop(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	task := StartTask(context.Background(), "fetch", "GET", server.URL, nil, nil, 10*time.Second)
	task.Stop()
	task.Result()
	if task.State() != TaskStopped {
		t.Errorf("state = %s, want stopped", task.State())
	}
}

func TestAwait_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	d := &recordingDisplay{}
	tasks := []*Task{
		StartTask(context.Background(), "a", "GET", server.URL, nil, nil, 5*time.Second),
		StartTask(context.Background(), "b", "GET", server.URL, nil, nil, 5*time.Second),
	}

	ok := Await(context.Background(), tasks, "fetching", false, d, log.New(io.Discard))
	if !ok {
		t.Error("Await() = false, want true")
	}
	ticks, result := d.snapshot()
	if ticks == 0 {
		t.Error("display received no ticks")
	}
	if result != "DONE" {
		t.Errorf("result line = %q, want DONE", result)
	}
}

func TestAwait_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	d := &recordingDisplay{}
	tasks := []*Task{StartTask(context.Background(), "a", "GET", server.URL, nil, nil, time.Second)}

	ok := Await(context.Background(), tasks, "fetching", false, d, log.New(io.Discard))
	if ok {
		t.Error("Await() = true, want false")
	}
	if _, result := d.snapshot(); result != "DONE (FAILED)" {
		t.Errorf("result line = %q, want DONE (FAILED)", result)
	}
}

func TestAwait_StopAllOnFailure(t *testing.T) {
	fast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer fast.Close()
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(10 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer slow.Close()

	tasks := []*Task{
		StartTask(context.Background(), "fast", "GET", fast.URL, nil, nil, 30*time.Second),
		StartTask(context.Background(), "slow", "GET", slow.URL, nil, nil, 30*time.Second),
	}

	start := time.Now()
	ok := Await(context.Background(), tasks, "fetching", true, nil, log.New(io.Discard))
	if ok {
		t.Error("Await() = true, want false")
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("Await took %v; the slow sibling was not stopped", elapsed)
	}

	tasks[1].Result()
	if state := tasks[1].State(); state != TaskStopped {
		t.Errorf("sibling state = %s, want stopped", state)
	}
}

func TestAwait_ContextCancel(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(10 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer slow.Close()

	ctx, cancel := context.WithCancel(context.Background())
	tasks := []*Task{StartTask(ctx, "slow", "GET", slow.URL, nil, nil, 30*time.Second)}

	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()

	ok := Await(ctx, tasks, "fetching", false, nil, log.New(io.Discard))
	if ok {
		t.Error("Await() = true, want false after cancellation")
	}
}

func TestAwait_NilDisplaySilent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	tasks := []*Task{StartTask(context.Background(), "a", "GET", server.URL, nil, nil, time.Second)}
	if ok := Await(context.Background(), tasks, "fetching", false, nil, log.New(io.Discard)); !ok {
		t.Error("Await() = false, want true")
	}
}
