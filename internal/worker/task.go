// Package worker runs the collection pipeline in the background.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// State is the lifecycle stage of a Task.
type State int32

const (
	StateCreated State = iota
	StateRunning
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

var (
	// ErrAlreadyStarted is returned by Start on a task that was started before.
	ErrAlreadyStarted = errors.New("task already started")
	// ErrNotStarted is returned by Join on a task that was never started.
	ErrNotStarted = errors.New("task not started")
)

// PanicError carries a panic recovered from a task body.
type PanicError struct {
	Value interface{}
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// Task runs one function on its own goroutine and keeps its error for Join.
type Task struct {
	name  string
	fn    func(ctx context.Context) error
	group errgroup.Group
	state atomic.Int32
}

// NewTask creates a task in the created state.
func NewTask(name string, fn func(ctx context.Context) error) *Task {
	return &Task{name: name, fn: fn}
}

// Name returns the task name.
func (t *Task) Name() string {
	return t.name
}

// State returns the current lifecycle stage.
func (t *Task) State() State {
	return State(t.state.Load())
}

// Start launches the task body. It may be called once.
func (t *Task) Start(ctx context.Context) error {
	if !t.state.CompareAndSwap(int32(StateCreated), int32(StateRunning)) {
		return ErrAlreadyStarted
	}

	t.group.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Value: r, Stack: debug.Stack()}
			}
			if err != nil {
				t.state.Store(int32(StateFailed))
			} else {
				t.state.Store(int32(StateSucceeded))
			}
		}()
		return t.fn(ctx)
	})
	return nil
}

// Join waits for the task body to return and hands back its error as is.
func (t *Task) Join() error {
	if t.State() == StateCreated {
		return ErrNotStarted
	}
	return t.group.Wait()
}
