package utils

import (
	"sync"
	"time"
)

// Idler coalesces bursts of calls: the first call after a quiet period runs
// immediately, later ones within the quiet period collapse into one trailing run.
type Idler struct {
	mu         sync.Mutex
	invoke     func()
	quiet      time.Duration
	lastRun    time.Time
	pending    *time.Timer
	generation uint64
}

func NewIdler(quiet time.Duration, invoke func()) *Idler {
	return &Idler{invoke: invoke, quiet: quiet}
}

func (i *Idler) Call() {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := time.Now()
	if i.pending == nil && now.Sub(i.lastRun) >= i.quiet {
		i.lastRun = now
		go i.invoke()
		return
	}

	if i.pending != nil {
		i.pending.Stop()
	}
	i.generation++
	generation := i.generation
	i.pending = time.AfterFunc(i.quiet, func() { i.fire(generation) })
}

// A timer stopped too late still fires; its stale generation makes it a no-op.
func (i *Idler) fire(generation uint64) {
	i.mu.Lock()
	if generation != i.generation {
		i.mu.Unlock()
		return
	}
	i.pending = nil
	i.lastRun = time.Now()
	i.mu.Unlock()

	i.invoke()
}
