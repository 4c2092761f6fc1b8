package fs

import "sync"

// nameLocks hands out one mutex per note name.
// Entries are reference counted and dropped once nobody holds or waits on them.
type nameLocks struct {
	mu    sync.Mutex
	locks map[string]*nameLock
}

type nameLock struct {
	mu   sync.Mutex
	refs int
}

func newNameLocks() *nameLocks {
	return &nameLocks{locks: make(map[string]*nameLock)}
}

// Lock blocks until the lock for name is held and returns its release func.
func (l *nameLocks) Lock(name string) func() {
	l.mu.Lock()
	lk, ok := l.locks[name]
	if !ok {
		lk = &nameLock{}
		l.locks[name] = lk
	}
	lk.refs++
	l.mu.Unlock()

	lk.mu.Lock()
	return func() {
		lk.mu.Unlock()

		l.mu.Lock()
		lk.refs--
		if lk.refs == 0 {
			delete(l.locks, name)
		}
		l.mu.Unlock()
	}
}

// Len returns the number of names currently locked or awaited.
func (l *nameLocks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
