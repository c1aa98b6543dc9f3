package worker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"smuverify/internal/worker"
)

func TestShutdownRunsAllStepsInReverse(t *testing.T) {
	rq := require.New(t)

	var order []string

	shutdown := &worker.Shutdown{}
	shutdown.Add("close smu bus", func(context.Context) error {
		order = append(order, "close smu bus")
		return nil
	})
	shutdown.Add("calibrator standby", func(context.Context) error {
		order = append(order, "calibrator standby")
		return errors.New("no response")
	})
	shutdown.Add("smu output off", func(context.Context) error {
		order = append(order, "smu output off")
		return nil
	})

	failed := shutdown.Run(context.Background())

	rq.Equal(1, failed)
	rq.Equal([]string{"smu output off", "calibrator standby", "close smu bus"}, order,
		"steps run in reverse registration order, fault does not stop the rest")
}

func TestShutdownSurvivesCancelledContext(t *testing.T) {
	rq := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran bool

	shutdown := &worker.Shutdown{}
	shutdown.Add("smu output off", func(stepCtx context.Context) error {
		ran = true
		return stepCtx.Err()
	})

	rq.Zero(shutdown.Run(ctx))
	rq.True(ran, "steps run on a detached context after Ctrl+C")
}

func TestShutdownRunIsOneShot(t *testing.T) {
	rq := require.New(t)

	calls := 0

	shutdown := &worker.Shutdown{}
	shutdown.Add("smu output off", func(context.Context) error {
		calls++
		return nil
	})

	rq.Zero(shutdown.Run(context.Background()))
	rq.Zero(shutdown.Run(context.Background()))
	rq.Equal(1, calls)
}
