// Package keylock provides one mutex per string key, created on first use.
package keylock

import "sync"

type Locker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New() *Locker {
	return &Locker{locks: make(map[string]*sync.Mutex)}
}

// Lock blocks until the mutex for key is held and returns its release func.
func (l *Locker) Lock(key string) (unlock func()) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
