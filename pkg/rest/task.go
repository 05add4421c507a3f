package rest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// TaskState describes the lifecycle of a detached request task.
// A task starts Running and ends in exactly one terminal state.
type TaskState int32

const (
	TaskRunning TaskState = iota
	TaskCompleted
	TaskFailed
	TaskStopped
)

func (s TaskState) String() string {
	switch s {
	case TaskRunning:
		return "running"
	case TaskCompleted:
		return "completed"
	case TaskFailed:
		return "failed"
	case TaskStopped:
		return "stopped"
	}
	return "unknown"
}

// Task performs one HTTP call on its own goroutine, outside the caller's
// execution context. It carries only plain inputs (URL, method, headers,
// body, timeout) and builds its own HTTP client, so it shares no mutable
// state with the caller or with sibling tasks. The outcome is a tagged
// response-or-error pair read through Result.
type Task struct {
	name    string
	cancel  context.CancelFunc
	done    chan struct{}
	started time.Time
	state   atomic.Int32

	res *Response
	err error
}

// StartTask spawns a task executing the described request. The task ends
// Completed on a 2xx/3xx response, Failed on a transport error or an
// error status, and Stopped when cancelled via Stop or the parent context.
func StartTask(ctx context.Context, name, method, url string, headers map[string]string, body []byte, timeout time.Duration) *Task {
	tctx, cancel := context.WithCancel(ctx)
	t := &Task{
		name:    name,
		cancel:  cancel,
		done:    make(chan struct{}),
		started: time.Now(),
	}

	go func() {
		defer close(t.done)
		client := &http.Client{Timeout: timeout}
		res, err := send(tctx, client, method, url, headers, body)
		t.res, t.err = res, err
		switch {
		case errors.Is(err, context.Canceled) || tctx.Err() != nil:
			t.state.Store(int32(TaskStopped))
		case err != nil:
			t.state.Store(int32(TaskFailed))
		case res.StatusCode >= 400:
			t.state.Store(int32(TaskFailed))
		default:
			t.state.Store(int32(TaskCompleted))
		}
	}()

	return t
}

// Name returns the task's label.
func (t *Task) Name() string { return t.name }

// State returns the task's current lifecycle state.
func (t *Task) State() TaskState { return TaskState(t.state.Load()) }

// Stop signals the task to abandon its request.
func (t *Task) Stop() { t.cancel() }

// Done returns a channel closed when the task finishes.
func (t *Task) Done() <-chan struct{} { return t.done }

// Elapsed returns the time since the task started.
func (t *Task) Elapsed() time.Duration { return time.Since(t.started) }

// Result blocks until the task finishes and returns its response or
// error. A Failed task with an error status returns the response so the
// caller can normalize it; only transport failures return a nil response.
func (t *Task) Result() (*Response, error) {
	<-t.done
	return t.res, t.err
}

// send performs one HTTP exchange and reads the full response body.
// Errors are transport-level only; error statuses come back as a Response.
func send(ctx context.Context, client *http.Client, method, url string, headers map[string]string, body []byte) (*Response, error) {
	var rdr io.Reader
	if len(body) > 0 {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}
