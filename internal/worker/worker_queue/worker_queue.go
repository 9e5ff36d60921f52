package worker_queue

import (
	"sync"
	"time"
)

type queueEntry[T any] struct {
	item     T
	queuedAt time.Time
}

// WorkerQueue collects items by key. An item becomes ready once it has not
// been queued again for debounceTime.
type WorkerQueue[T any] struct {
	debounceTime time.Duration
	getKey       func(item T) string
	transform    func(item *T) *T
	Disabled     bool

	mu      sync.Mutex
	entries map[string]*queueEntry[T]
	now     func() time.Time
}

func NewWorkerQueue[T any](debounceTime time.Duration, getKey func(item T) string) *WorkerQueue[T] {
	return &WorkerQueue[T]{
		debounceTime: debounceTime,
		getKey:       getKey,
	}
}

func (q *WorkerQueue[T]) getNow() time.Time {
	if q.now != nil {
		return q.now()
	}
	return time.Now()
}

func (q *WorkerQueue[T]) Queue(item T) {
	if q.Disabled {
		return
	}
	if q.transform != nil {
		transformed := q.transform(&item)
		if transformed == nil {
			return
		}
		item = *transformed
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.entries == nil {
		q.entries = map[string]*queueEntry[T]{}
	}
	q.entries[q.getKey(item)] = &queueEntry[T]{item: item, queuedAt: q.getNow()}
}

func (q *WorkerQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

func (q *WorkerQueue[T]) takeReady() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.getNow()
	items := []T{}
	for key, entry := range q.entries {
		if now.Sub(entry.queuedAt) < q.debounceTime {
			continue
		}
		items = append(items, entry.item)
		delete(q.entries, key)
	}
	return items
}

// Process hands every ready item to fn. Failed items are queued again.
func (q *WorkerQueue[T]) Process(fn func(item T) error) {
	for _, item := range q.takeReady() {
		if err := fn(item); err != nil {
			q.mu.Lock()
			key := q.getKey(item)
			if _, exists := q.entries[key]; !exists {
				q.entries[key] = &queueEntry[T]{item: item, queuedAt: q.getNow()}
			}
			q.mu.Unlock()
		}
	}
}
