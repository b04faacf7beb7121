package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/results-collector/internal/iracing"
)

func TestTaskLifecycle(t *testing.T) {
	release := make(chan struct{})
	task := NewTask("wait", func(ctx context.Context) error {
		<-release
		return nil
	})

	assert.Equal(t, StateCreated, task.State())
	assert.ErrorIs(t, task.Join(), ErrNotStarted)

	require.NoError(t, task.Start(context.Background()))
	assert.Equal(t, StateRunning, task.State())
	assert.ErrorIs(t, task.Start(context.Background()), ErrAlreadyStarted)

	close(release)
	assert.NoError(t, task.Join())
	assert.Equal(t, StateSucceeded, task.State())
}

func TestTaskJoinPreservesErrorType(t *testing.T) {
	want := iracing.NewAuthenticationError("rejected", nil)
	task := NewTask("fail", func(ctx context.Context) error {
		return want
	})
	require.NoError(t, task.Start(context.Background()))

	err := task.Join()
	var authErr *iracing.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Same(t, want, authErr)
	assert.Equal(t, StateFailed, task.State())
}

func TestTaskRecoversPanic(t *testing.T) {
	task := NewTask("panic", func(ctx context.Context) error {
		panic("boom")
	})
	require.NoError(t, task.Start(context.Background()))

	err := task.Join()
	var panicErr *PanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Equal(t, "boom", panicErr.Value)
	assert.NotEmpty(t, panicErr.Stack)
	assert.Equal(t, StateFailed, task.State())
}

func TestTaskJoinTwice(t *testing.T) {
	sentinel := errors.New("done")
	task := NewTask("twice", func(ctx context.Context) error { return sentinel })
	require.NoError(t, task.Start(context.Background()))

	assert.ErrorIs(t, task.Join(), sentinel)
	assert.ErrorIs(t, task.Join(), sentinel)
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateCreated, "created"},
		{StateRunning, "running"},
		{StateSucceeded, "succeeded"},
		{StateFailed, "failed"},
		{State(9), "State(9)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}
