package jpegx

import (
	"runtime"
	"sync"
)

var (
	workerSemOnce sync.Once
	// workerSem bounds the goroutines of all concurrent encodes together.
	workerSem chan struct{}
)

// DefaultWorkers returns the worker count used when none is configured.
func DefaultWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}
	return n
}

// parallelFor splits [0, total) into contiguous ranges and runs fn on up to
// workers goroutines. It returns when every range is done.
func parallelFor(workers, total int, fn func(start, end int)) {
	if total <= 0 {
		return
	}
	workerSemOnce.Do(func() {
		workerSem = make(chan struct{}, DefaultWorkers())
	})
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if workers > cap(workerSem) {
		workers = cap(workerSem)
	}
	if workers > total {
		workers = total
	}
	if workers <= 1 {
		fn(0, total)
		return
	}
	step := (total + workers - 1) / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * step
		end := start + step
		if end > total {
			end = total
		}
		if start >= end {
			break
		}
		workerSem <- struct{}{}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			defer func() { <-workerSem }()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
