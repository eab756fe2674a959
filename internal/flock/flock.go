package flock

import (
	"fmt"
	"sync"

	gofrs "github.com/gofrs/flock"

	"github.com/fbkclanna/cairn/internal/ui"
)

// AdvisoryLock is a process-shared handle over one advisory lock file.
// Acquisitions within the same process are refcounted: the OS-level lock is
// taken on the first Acquire and released when the last guard is released.
type AdvisoryLock struct {
	path  string
	label string
	ui    *ui.Ui

	mu   sync.Mutex
	fl   *gofrs.Flock
	refs int
}

func newAdvisoryLock(path, label string, u *ui.Ui) *AdvisoryLock {
	return &AdvisoryLock{
		path:  path,
		label: label,
		ui:    u,
		fl:    gofrs.New(path),
	}
}

// Path returns the lock file location.
func (l *AdvisoryLock) Path() string {
	return l.path
}

// Acquire takes the lock, blocking until it is available. When another
// process holds the lock a status line is printed before blocking.
func (l *AdvisoryLock) Acquire() (*LockGuard, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.refs == 0 {
		locked, err := l.fl.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquiring file lock on %s: %w", l.label, err)
		}
		if !locked {
			l.ui.Status("Blocking", fmt.Sprintf("waiting for file lock on %s", l.label))
			if err := l.fl.Lock(); err != nil {
				return nil, fmt.Errorf("acquiring file lock on %s: %w", l.label, err)
			}
		}
	}
	l.refs++
	return &LockGuard{lock: l}, nil
}

func (l *AdvisoryLock) release() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		_ = l.fl.Unlock()
	}
}

// LockGuard represents one held acquisition of an AdvisoryLock.
// Releasing a guard more than once is a no-op.
type LockGuard struct {
	lock *AdvisoryLock
	once sync.Once
}

// Release drops this acquisition. The OS-level lock is released when no
// guards remain.
func (g *LockGuard) Release() {
	g.once.Do(g.lock.release)
}
