// Package dedupe remembers recent idempotency keys so a replayed mutation is
// applied at most once.
package dedupe

import (
	"context"
	"sync"
)

const defaultMaxSize = 256

// Deduper records seen idempotency keys.
type Deduper interface {
	// SeenAndRecord reports whether key was already seen and records it if not.
	SeenAndRecord(ctx context.Context, key string) bool

	// Forget drops key so a later request with it is applied again.
	Forget(ctx context.Context, key string)

	Size() int
}

// window keeps the most recent maxSize keys. The oldest key is evicted first.
type window struct {
	mu      sync.Mutex
	seen    map[string]int // key -> slot in ring
	ring    []string
	next    int
	maxSize int
}

// NewWindow creates a bounded in-memory deduper.
func NewWindow(opts ...Option) Deduper {
	w := &window{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(w)
	}
	w.seen = make(map[string]int, w.maxSize)
	w.ring = make([]string, w.maxSize)
	return w
}

func (w *window) SeenAndRecord(_ context.Context, key string) bool {
	if key == "" {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.seen[key]; ok {
		return true
	}
	if old := w.ring[w.next]; old != "" {
		delete(w.seen, old)
	}
	w.ring[w.next] = key
	w.seen[key] = w.next
	w.next = (w.next + 1) % w.maxSize
	return false
}

func (w *window) Forget(_ context.Context, key string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	slot, ok := w.seen[key]
	if !ok {
		return
	}
	delete(w.seen, key)
	w.ring[slot] = ""
}

func (w *window) Size() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.seen)
}
