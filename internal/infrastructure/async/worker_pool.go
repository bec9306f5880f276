package async

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type Task = func(ctx context.Context)

// queueFactor bounds how many tasks may wait per worker before Submit
// starts rejecting.
const queueFactor = 64

// WorkerPool is the fire-and-forget scheduler behind publish. Tasks run on
// a fixed set of goroutines; Submit never blocks a caller on task execution.
type WorkerPool struct {
	tasks  chan Task
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger
}

func NewWorkerPool(parent context.Context, size int, log *zap.Logger) *WorkerPool {
	ctx, cancel := context.WithCancel(parent)
	p := &WorkerPool{
		tasks:  make(chan Task, size*queueFactor),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case task := <-p.tasks:
			func() {
				defer func() {
					if r := recover(); r != nil {
						p.log.Error("task panicked", zap.Any("panic", r))
					}
				}()
				task(p.ctx)
			}()
		}
	}
}

// Submit reports whether the task was accepted. It never blocks: after
// Shutdown, or with the queue full, it returns false and the caller decides
// what a dropped task means.
func (p *WorkerPool) Submit(task Task) bool {
	select {
	case <-p.ctx.Done():
		return false
	default:
	}

	select {
	case <-p.ctx.Done():
		return false
	case p.tasks <- task:
		return true
	default:
		return false
	}
}

func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
