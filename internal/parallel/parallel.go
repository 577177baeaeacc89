// Package parallel splits index ranges across goroutines for the CPU backend.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how work is split.
type Config struct {
	Workers int // Maximum goroutines per call; 1 or less runs inline.
}

// DefaultConfig uses one worker per schedulable CPU.
func DefaultConfig() Config {
	return Config{Workers: runtime.GOMAXPROCS(0)}
}

// Sequential runs everything on the calling goroutine.
func Sequential() Config {
	return Config{Workers: 1}
}

// For calls f over [0, n) in contiguous [start, end) chunks of at least
// minChunk indices, using at most c.Workers goroutines, and returns once every
// chunk is done. Chunks never overlap.
func (c Config) For(n, minChunk int, f func(start, end int)) {
	if n <= 0 {
		return
	}
	minChunk = max(minChunk, 1)
	workers := min(c.Workers, (n+minChunk-1)/minChunk)
	if workers <= 1 {
		f(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			f(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ChunkFor returns the smallest chunk worth a goroutine when each index costs
// roughly work scalar operations.
func ChunkFor(work int) int {
	const grain = 1 << 14
	if work <= 0 {
		return grain
	}
	return max(grain/work, 1)
}
