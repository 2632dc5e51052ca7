package rtsched

import (
	"sync"

	"github.com/rtsched/rtsched/internal/ring"
)

// wakeSemaphore is a counting semaphore of "wake tokens", per spec.md §4.4:
// one token per AddJob, plus any bare Release the driver calls to nudge an
// idle worker toward shutdown. It generalizes the teacher's
// `sem chan struct{}` (a bounded resource limiter) into an unbounded wake
// counter, since a task's driver may enqueue arbitrarily many jobs before
// the worker gets a chance to drain them.
type wakeSemaphore struct {
	mu    sync.Mutex
	cond  *sync.Cond
	count int
}

func newWakeSemaphore() *wakeSemaphore {
	s := &wakeSemaphore{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// release adds one wake token and wakes a waiter if one is blocked.
func (s *wakeSemaphore) release() {
	s.mu.Lock()
	s.count++
	s.mu.Unlock()
	s.cond.Signal()
}

// acquire blocks until at least one wake token is available, then consumes
// it.
func (s *wakeSemaphore) acquire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.count == 0 {
		s.cond.Wait()
	}
	s.count--
}

// jobQueue pairs a FIFO of payloads with the wake semaphore that signals
// their arrival, exactly the pairing spec.md §4.4 describes: "the counting
// semaphore counts 'wake tokens'... a wake with an empty queue is the
// shutdown signal."
type jobQueue[T any] struct {
	items *ring.Queue[T]
	sem   *wakeSemaphore
}

func newJobQueue[T any]() *jobQueue[T] {
	return &jobQueue[T]{
		items: ring.New[T](),
		sem:   newWakeSemaphore(),
	}
}

// push appends a payload and releases one wake token. Never blocks, per
// spec.md §4.1's contract for add_job.
func (q *jobQueue[T]) push(item T) {
	q.items.Push(item)
	q.sem.release()
}

// waitAndPop blocks until a wake token is available, then attempts to
// dequeue. A wake token with nothing to dequeue is the shutdown signal: the
// second return value is false.
func (q *jobQueue[T]) waitAndPop() (T, bool) {
	q.sem.acquire()
	return q.items.Pop()
}

// depth reports the number of jobs currently queued (not wake tokens).
func (q *jobQueue[T]) depth() int {
	return q.items.Len()
}
