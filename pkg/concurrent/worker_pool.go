package concurrent

import (
	"sync"
)

type JobFunc[T any, G any] func(job T) G

// WorkerPool. fixed number of workers consuming jobs of type T and producing results of type G.
// results arrive in completion order, not submission order.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- jobFunc(job)
	}
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

// Wait. blocks until every worker returned, then closes the results channel. call after Close.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) CollectResults() chan G {
	return wp.results
}

// Close. no more jobs.
func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

// Run. process every job and return all results. the results channel is drained concurrently,
// so jobs may outnumber the queue size.
func (wp *WorkerPool[T, G]) Run(jobs []T, jobFunc JobFunc[T, G]) []G {
	wp.Start(jobFunc)

	out := make([]G, 0, len(jobs))
	done := make(chan struct{})
	go func() {
		for res := range wp.results {
			out = append(out, res)
		}
		close(done)
	}()

	for _, job := range jobs {
		wp.AddJob(job)
	}
	wp.Close()
	wp.Wait()
	<-done
	return out
}
