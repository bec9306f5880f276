package async_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"opsbus/internal/infrastructure/async"
)

func TestWorkerPool_RunsSubmittedTasks(t *testing.T) {
	pool := async.NewWorkerPool(context.Background(), 2, zap.NewNop())
	defer pool.Shutdown()

	done := make(chan struct{})
	if !pool.Submit(func(ctx context.Context) { close(done) }) {
		t.Fatal("submit rejected")
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task did not run")
	}
}

func TestWorkerPool_RecoversFromPanic(t *testing.T) {
	pool := async.NewWorkerPool(context.Background(), 1, zap.NewNop())
	defer pool.Shutdown()

	pool.Submit(func(ctx context.Context) { panic("boom") })

	done := make(chan struct{})
	pool.Submit(func(ctx context.Context) { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pool stopped after a panicking task")
	}
}

func TestWorkerPool_SubmitAfterShutdown(t *testing.T) {
	pool := async.NewWorkerPool(context.Background(), 1, zap.NewNop())
	pool.Shutdown()

	if pool.Submit(func(ctx context.Context) {}) {
		t.Fatal("submit after shutdown must be rejected")
	}
}
