package rest

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

// The animator renders at a fixed rate of 9 ticks per second.
const (
	ticksPerSecond = 9
	tickInterval   = time.Second / ticksPerSecond
)

var glyphs = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Display renders progress feedback while detached tasks run.
type Display interface {
	// Tick renders one animation frame with the elapsed wait time.
	Tick(glyph string, elapsed time.Duration, description string)

	// Done renders the terminal result line ("DONE" or "DONE (FAILED)").
	Done(description, result string)
}

// TermDisplay writes the animation to a terminal, redrawing in place.
type TermDisplay struct {
	w io.Writer
}

// NewTermDisplay returns a display writing to f, or nil when f is not an
// interactive terminal. A nil Display renders nothing, so non-interactive
// hosts receive no progress output.
func NewTermDisplay(f *os.File) Display {
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return nil
	}
	return &TermDisplay{w: f}
}

func (d *TermDisplay) Tick(glyph string, elapsed time.Duration, description string) {
	fmt.Fprintf(d.w, "\r%s %s %ds", glyph, description, int(elapsed.Seconds()))
}

func (d *TermDisplay) Done(description, result string) {
	fmt.Fprintf(d.w, "\r%s: %s\n", description, result)
}

// Await blocks until every task has left the Running state. Each tick it
// polls the watch set once, renders a rotating glyph and elapsed-seconds
// counter to d, and sleeps for one tick interval. Tasks are checked in
// watch-set order; they are independent, so ties are broken arbitrarily.
//
// When stopAllOnFailure is set, the first task failure issues a stop
// signal to all remaining running tasks and ends the wait early.
//
// The terminal result line is rendered to d and always logged at info
// level, regardless of display interactivity. Await reports whether every
// task completed successfully.
func Await(ctx context.Context, tasks []*Task, description string, stopAllOnFailure bool, d Display, logger *log.Logger) bool {
	if logger == nil {
		logger = log.Default()
	}

	watch := make([]*Task, len(tasks))
	copy(watch, tasks)
	start := time.Now()
	failed := false
	tick := 0

	for len(watch) > 0 {
		remaining := watch[:0]
		for _, t := range watch {
			switch t.State() {
			case TaskRunning:
				remaining = append(remaining, t)
			case TaskCompleted:
			default:
				failed = true
			}
		}
		watch = remaining

		if failed && stopAllOnFailure {
			for _, t := range watch {
				t.Stop()
			}
			watch = nil
		}
		if len(watch) == 0 {
			break
		}

		if d != nil {
			d.Tick(glyphs[tick%len(glyphs)], time.Since(start), description)
		}
		tick++

		select {
		case <-ctx.Done():
			for _, t := range watch {
				t.Stop()
			}
			failed = true
			watch = nil
		case <-time.After(tickInterval):
		}
	}

	result := "DONE"
	if failed {
		result = "DONE (FAILED)"
	}
	if d != nil {
		d.Done(description, result)
	}
	logger.Info(description + ": " + result)

	return !failed
}
