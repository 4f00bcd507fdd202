package score

import "sync"

// keyedMutex hands out one mutex per movie so concurrent submissions to the
// same movie serialize while submissions to distinct movies proceed freely.
// Entries are never evicted; movies are never deleted and the per-movie cost
// is a single mutex.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[int64]*sync.Mutex)}
}

func (k *keyedMutex) get(key int64) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	return lock
}

// Lock acquires the mutex for the key and returns its unlock function.
func (k *keyedMutex) Lock(key int64) func() {
	lock := k.get(key)
	lock.Lock()
	return lock.Unlock
}
