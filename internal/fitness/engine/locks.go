package engine

import (
	"sync"

	"github.com/google/uuid"
)

// userLocks hands out one mutex per user. Entries are dropped once nobody holds or waits on them.
type userLocks struct {
	mutex sync.Mutex
	locks map[uuid.UUID]*userLock
}

type userLock struct {
	sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{
		locks: make(map[uuid.UUID]*userLock),
	}
}

// lock blocks until the user's lock is held and returns its release func.
func (l *userLocks) lock(userID uuid.UUID) func() {
	l.mutex.Lock()
	ul, ok := l.locks[userID]
	if !ok {
		ul = &userLock{}
		l.locks[userID] = ul
	}
	ul.refs++
	l.mutex.Unlock()

	ul.Lock()
	return func() {
		ul.Unlock()
		l.mutex.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.locks, userID)
		}
		l.mutex.Unlock()
	}
}

func (l *userLocks) size() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return len(l.locks)
}
