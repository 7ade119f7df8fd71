// ABOUTME: Per-user mutexes serializing read-modify-write sequences.
// ABOUTME: Different users never contend with each other.
package coach

import (
	"sync"

	"github.com/google/uuid"
)

type userLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// lock acquires the mutex for id and returns its release func.
func (l *userLocks) lock(id uuid.UUID) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[uuid.UUID]*sync.Mutex)
	}
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
