package concurrent

import (
	"errors"
	"sync"
	"time"
)

var ErrScheduleTimeout = errors.New("schedule error: timed out")

// Pool. bounded goroutine pool for short tasks. at most size goroutines run at once,
// extra tasks wait in a queue of the given length.
type Pool struct {
	sem  chan struct{}
	work chan func()

	closeOnce sync.Once
	quit      chan struct{}
}

func NewPool(size, queue int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		sem:  make(chan struct{}, size),
		work: make(chan func(), queue),
		quit: make(chan struct{}),
	}
}

// Spawn. start n idle workers up front, n is capped by the pool size.
func (p *Pool) Spawn(n int) {
	for i := 0; i < n; i++ {
		select {
		case p.sem <- struct{}{}:
			go p.worker(func() {})
		default:
			return
		}
	}
}

// Schedule. blocks until task is accepted by a worker or the queue.
func (p *Pool) Schedule(task func()) {
	_ = p.schedule(task, nil)
}

// ScheduleTimeout. like Schedule but gives up after timeout with ErrScheduleTimeout.
func (p *Pool) ScheduleTimeout(timeout time.Duration, task func()) error {
	return p.schedule(task, time.After(timeout))
}

func (p *Pool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-timeout:
		return ErrScheduleTimeout
	case p.work <- task:
		return nil
	case p.sem <- struct{}{}:
		go p.worker(task)
		return nil
	}
}

func (p *Pool) worker(task func()) {
	defer func() { <-p.sem }()

	task()
	for {
		select {
		case task := <-p.work:
			task()
		case <-p.quit:
			return
		}
	}
}

// Close. stops idle workers. tasks already running finish normally, must not schedule after Close.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.quit)
	})
}
