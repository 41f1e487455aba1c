package concurrent

import (
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPoolRun(t *testing.T) {
	wp := NewWorkerPool[int, int](4, 2)
	jobs := make([]int, 100)
	for i := range jobs {
		jobs[i] = i
	}

	res := wp.Run(jobs, func(job int) int { return job * job })
	require.Len(t, res, 100)
	sort.Ints(res)
	for i, r := range res {
		assert.Equal(t, i*i, r)
	}
}

func TestWorkerPoolManual(t *testing.T) {
	wp := NewWorkerPool[string, int](2, 10)
	wp.Start(func(job string) int { return len(job) })
	for _, s := range []string{"a", "bb", "ccc"} {
		wp.AddJob(s)
	}
	wp.Close()
	wp.Wait()

	total := 0
	for r := range wp.CollectResults() {
		total += r
	}
	assert.Equal(t, 6, total)
}

func TestPoolSchedule(t *testing.T) {
	p := NewPool(4, 8)
	defer p.Close()
	p.Spawn(2)

	var (
		count int64
		wg    sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		p.Schedule(func() {
			defer wg.Done()
			atomic.AddInt64(&count, 1)
		})
	}
	wg.Wait()
	assert.Equal(t, int64(50), atomic.LoadInt64(&count))
}

func TestPoolScheduleTimeout(t *testing.T) {
	p := NewPool(1, 0)
	defer p.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.ScheduleTimeout(time.Second, func() {
		close(started)
		<-release
	}))
	<-started

	// the only worker is busy and there is no queue.
	err := p.ScheduleTimeout(10*time.Millisecond, func() {})
	assert.ErrorIs(t, err, ErrScheduleTimeout)

	close(release)
	done := make(chan struct{})
	require.NoError(t, p.ScheduleTimeout(time.Second, func() { close(done) }))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task was not run")
	}
}
