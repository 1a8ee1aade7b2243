package fselector

import "sync/atomic"

type workTask struct {
	Started atomic.Bool
	F       func() error
	Result  chan error
}

// A workQueue runs recursive fork/join tasks with a fixed number of
// Goroutines. Run the root task with Run(); within a task, Fork() offers the
// second of two sub-tasks to idle workers while the caller runs the first.
//
// A workQueue can only run one root task.
type workQueue struct {
	queue chan *workTask
}

func newWorkQueue(numWorkers int) *workQueue {
	res := &workQueue{
		queue: make(chan *workTask, numWorkers*1000),
	}
	for i := 0; i < numWorkers; i++ {
		go res.worker()
	}
	return res
}

func (w *workQueue) Run(fn func() error) error {
	defer close(w.queue)
	task := &workTask{F: fn, Result: make(chan error, 1)}
	w.queue <- task
	return <-task.Result
}

// Fork runs both functions, possibly concurrently, and returns the first
// non-nil error, preferring fn1's.
func (w *workQueue) Fork(fn1, fn2 func() error) error {
	task := &workTask{F: fn2, Result: make(chan error, 1)}
	select {
	case w.queue <- task:
	default:
		// The queue is full, so nobody else will pick this up soon.
		task.Started.Store(true)
		task.Result <- task.F()
	}
	err1 := fn1()
	var err2 error
	if !task.Started.Swap(true) {
		err2 = fn2()
	} else {
		err2 = <-task.Result
	}
	if err1 != nil {
		return err1
	}
	return err2
}

// Range calls f for every index in [start, end) by repeatedly bisecting the
// range with Fork(). Of all the errors, the one for the lowest index is
// returned.
func (w *workQueue) Range(start, end int, f func(i int) error) error {
	switch end - start {
	case 0:
		return nil
	case 1:
		return f(start)
	}
	mid := (start + end) / 2
	return w.Fork(
		func() error { return w.Range(start, mid, f) },
		func() error { return w.Range(mid, end, f) },
	)
}

func (w *workQueue) worker() {
	for task := range w.queue {
		if task.Started.Swap(true) {
			// Task already claimed by the goroutine that forked it.
			continue
		}
		task.Result <- task.F()
	}
}
