package probe

import (
	"slices"
	"sync"

	"github.com/samber/lo"
)

// Sizer is the part of a queue the probe reads. Queues that also expose
// Cap/IsFull or Dropped get those reported too.
type Sizer interface {
	Size() int
}

type capacityReporter interface {
	Cap() int
	IsFull() bool
}

type dropReporter interface {
	Dropped() uint64
}

type Stats struct {
	Name     string `json:"name"`
	Size     int    `json:"size"`
	Capacity int    `json:"capacity,omitempty"`
	Full     bool   `json:"full"`
	Dropped  uint64 `json:"dropped"`
}

// Registry holds the queues exposed by the probe, by name.
type Registry struct {
	mu     sync.RWMutex
	queues map[string]Sizer
}

func NewRegistry() *Registry {
	return &Registry{queues: make(map[string]Sizer)}
}

// Register exposes q under name, replacing any queue registered under the same name.
func (r *Registry) Register(name string, q Sizer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queues[name] = q
}

// Stats returns a snapshot of every registered queue, sorted by name.
func (r *Registry) Stats() []Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := lo.Keys(r.queues)
	slices.Sort(names)

	return lo.Map(names, func(name string, _ int) Stats {
		return statsOf(name, r.queues[name])
	})
}

// Checkers returns one queue checker per registered queue.
func (r *Registry) Checkers() []Checker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.MapToSlice(r.queues, func(name string, q Sizer) Checker {
		return NewQueueChecker(name, q)
	})
}

func statsOf(name string, q Sizer) Stats {
	stats := Stats{Name: name, Size: q.Size()}
	if c, ok := q.(capacityReporter); ok {
		stats.Capacity = c.Cap()
		stats.Full = c.IsFull()
	}
	if d, ok := q.(dropReporter); ok {
		stats.Dropped = d.Dropped()
	}
	return stats
}
