package submit

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillbridge/internal/form"
)

func valid() form.Errors { return form.Errors{} }

func TestValidationBlocksSend(t *testing.T) {
	var w Workflow
	sent := false

	res, err := w.Submit(context.Background(),
		func() form.Errors { return form.Errors{form.FieldEmail: "Email is required"} },
		func(context.Context) error { sent = true; return nil },
	)
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Equal(t, Editing, res.State)
	assert.Equal(t, "Email is required", res.Errors.Get(form.FieldEmail))
	assert.Equal(t, Editing, w.State())
}

func TestSuccessAndFailure(t *testing.T) {
	var w Workflow

	res, err := w.Submit(context.Background(), valid, func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, Succeeded, res.State)
	assert.Equal(t, Succeeded, w.State())

	boom := errors.New("boom")
	res, err = w.Submit(context.Background(), valid, func(context.Context) error { return boom })
	require.NoError(t, err)
	assert.Equal(t, Failed, res.State)
	assert.Equal(t, boom, res.Err)
	assert.Equal(t, Editing, w.State())
}

func TestDuplicateSubmitIsIgnored(t *testing.T) {
	reg := NewRegistry()
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	send := func(context.Context) error {
		calls.Add(1)
		close(started)
		<-release
		return nil
	}

	done := make(chan Result)
	go func() {
		res, err := reg.Submit(context.Background(), "form-1", valid, send)
		assert.NoError(t, err)
		done <- res
	}()
	<-started

	_, err := reg.Submit(context.Background(), "form-1", valid, func(context.Context) error {
		calls.Add(1)
		return nil
	})
	assert.ErrorIs(t, err, ErrInFlight)
	assert.Equal(t, 1, reg.Pending())

	close(release)
	res := <-done
	assert.Equal(t, Succeeded, res.State)
	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, 0, reg.Pending())

	res, err = reg.Submit(context.Background(), "form-1", valid, func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, Succeeded, res.State)
}

func TestDistinctInstancesDoNotBlock(t *testing.T) {
	reg := NewRegistry()
	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_, _ = reg.Submit(context.Background(), "a", valid, func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	res, err := reg.Submit(context.Background(), "b", valid, func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, Succeeded, res.State)

	res, err = reg.Submit(context.Background(), "", valid, func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, Succeeded, res.State)
	close(release)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "submitting", Submitting.String())
	assert.Equal(t, "unknown", State(42).String())
}
