package service

import "sync"

// keyedMutex hands out one mutex per key, created lazily. The orchestrator
// uses it to serialize every write to a single product, so the stock
// check-and-decrement is atomic with respect to other mutators of that
// product. The map grows with the number of distinct products seen, which is
// bounded by the size of the store.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
