package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidInterval = errors.New("scheduler: invalid interval")
	ErrStopped         = errors.New("scheduler: engine stopped")
)

// Handle identifies one periodic registration. The zero Handle is never
// issued, so it can stand for "not started".
type Handle uint64

type Tick struct {
	Handle Handle
	Seq    uint64
	At     time.Time
}

type job struct {
	handle   Handle
	interval time.Duration
	next     time.Time
	seq      uint64
	onTick   func(Tick)
	index    int
}

type priorityQueue []*job

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].next.Equal(pq[j].next) {
		return pq[i].handle < pq[j].handle
	}
	return pq[i].next.Before(pq[j].next)
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	item := x.(*job)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[0 : n-1]
	return item
}

// Engine runs periodic callbacks on a single dispatcher goroutine. Callbacks
// of one engine never overlap and are delivered in trigger order.
type Engine struct {
	mu         sync.Mutex
	queue      priorityQueue
	jobs       map[Handle]*job
	lastHandle Handle
	wakeup     chan struct{}
	stopCh     chan struct{}
	doneCh     chan struct{}
	started    bool
	stopped    bool
	late       uint64
}

func NewEngine() *Engine {
	return &Engine{
		queue:  make(priorityQueue, 0),
		jobs:   make(map[Handle]*job),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.stopped {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

// Stop cancels every registration and waits for the dispatcher to exit.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	e.queue = e.queue[:0]
	clear(e.jobs)
	started := e.started
	close(e.stopCh)
	e.mu.Unlock()
	if started {
		<-e.doneCh
	}
}

// Every registers onTick to run every interval, first after one interval.
func (e *Engine) Every(interval time.Duration, onTick func(Tick)) (Handle, error) {
	if interval <= 0 {
		return 0, ErrInvalidInterval
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return 0, ErrStopped
	}

	e.lastHandle++
	j := &job{
		handle:   e.lastHandle,
		interval: interval,
		next:     time.Now().Add(interval),
		onTick:   onTick,
	}
	e.jobs[j.handle] = j
	heap.Push(&e.queue, j)
	e.signalWakeup()
	return j.handle, nil
}

// Cancel is a no-op for unknown, zero or already cancelled handles. Once it
// returns no further tick is scheduled for the handle. A callback the
// dispatcher had already entered may still be running, so callers cancelling
// from another goroutine re-check ownership (Slot.Owns) inside the callback.
func (e *Engine) Cancel(h Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	j, ok := e.jobs[h]
	if !ok {
		return
	}
	delete(e.jobs, h)
	if j.index >= 0 {
		heap.Remove(&e.queue, j.index)
	}
	e.signalWakeup()
}

func (e *Engine) Live() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.jobs)
}

// Late counts periods skipped because a callback overran its interval.
func (e *Engine) Late() uint64 {
	return atomic.LoadUint64(&e.late)
}

func (e *Engine) loop() {
	defer close(e.doneCh)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, j := range e.popDue(time.Now()) {
				e.dispatch(j)
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) dispatch(j *job) {
	e.mu.Lock()
	if e.jobs[j.handle] != j {
		// cancelled by an earlier callback of the same batch
		e.mu.Unlock()
		return
	}
	j.seq++
	tick := Tick{Handle: j.handle, Seq: j.seq, At: j.next}
	e.mu.Unlock()

	if j.onTick != nil {
		j.onTick(tick)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.jobs[j.handle] != j {
		return
	}
	j.next = j.next.Add(j.interval)
	if now := time.Now(); !j.next.After(now) {
		missed := now.Sub(j.next)/j.interval + 1
		atomic.AddUint64(&e.late, uint64(missed))
		j.next = j.next.Add(missed * j.interval)
	}
	heap.Push(&e.queue, j)
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return time.Time{}, false
	}
	return e.queue[0].next, true
}

func (e *Engine) popDue(now time.Time) []*job {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*job, 0)
	for len(e.queue) > 0 {
		if e.queue[0].next.After(now) {
			break
		}
		out = append(out, heap.Pop(&e.queue).(*job))
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
