package parallel

import "sync"

import "go.uber.org/atomic"

// ForEach calls body for every i in [0, length) using at most limit
// goroutines. Each goroutine claims the next index from a shared counter
// until the range is used up. ForEach returns once every call returned.
func ForEach(length, limit int, body func(i int)) {
	if length <= 0 {
		return
	}
	if limit <= 0 {
		limit = 1
	}
	if limit > length {
		limit = length
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(limit)
	for n := 0; n < limit; n++ {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Inc() - 1)
				if i >= length {
					return
				}
				body(i)
			}
		}()
	}
	wg.Wait()
}
