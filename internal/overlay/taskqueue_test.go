package overlay

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// serialRunner mimics a UI thread: tasks run one at a time, in post order.
type serialRunner struct {
	mu   sync.Mutex
	runs int
}

func (r *serialRunner) run(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs++
	fn()
}

func TestPostRunsOnce(t *testing.T) {
	r := &serialRunner{}
	q := NewTaskQueue(r.run, zerolog.Nop())

	done := false
	q.Post("once", func() bool {
		done = true
		return false
	})

	assert.True(t, done)
	assert.Equal(t, 1, r.runs)
}

func TestPostRequeuesUntilReady(t *testing.T) {
	r := &serialRunner{}
	q := NewTaskQueue(r.run, zerolog.Nop(), WithRetryDelay(time.Millisecond))

	var mu sync.Mutex
	attempts := 0
	q.Post("warmup", func() bool {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		return attempts < 4
	})

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return attempts == 4
	}, time.Second, time.Millisecond)

	// Settled: no further reruns.
	time.Sleep(10 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 4, attempts)
}

func TestPostBoundedRetries(t *testing.T) {
	r := &serialRunner{}
	q := NewTaskQueue(r.run, zerolog.Nop(), WithRetryDelay(time.Microsecond), WithMaxRetries(5))

	var mu sync.Mutex
	attempts := 0
	q.Post("never-ready", func() bool {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		return true
	})

	// Initial run plus five retries, then the task is dropped.
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return attempts == 6
	}, time.Second, time.Millisecond)

	time.Sleep(10 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 6, attempts)
}

func TestPostOrdering(t *testing.T) {
	r := &serialRunner{}
	q := NewTaskQueue(r.run, zerolog.Nop())

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		q.Post("ordered", func() bool {
			got = append(got, i)
			return false
		})
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}
