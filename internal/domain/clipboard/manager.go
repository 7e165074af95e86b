// Package clipboard holds per-session copy/cut selections.
//
// State is process-local and lost on restart; that is a deliberate,
// accepted limitation. The manager is an injectable store rather than
// module-level state so lifecycle and tests stay explicit.
package clipboard

import (
	"os"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/errs"
)

// Mode tags a pending selection as copy or cut.
type Mode string

const (
	ModeCopy Mode = "copy"
	ModeCut  Mode = "cut"
)

// Session is one caller's pending selection. A new copy/cut for the same
// session id replaces the previous selection entirely.
type Session struct {
	Mode      Mode      `json:"operation"`
	Paths     []string  `json:"paths"`
	Timestamp time.Time `json:"timestamp"`
}

// Manager is a concurrency-safe map from session id to selection.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewManager creates an empty clipboard manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]Session)}
}

// Set records a selection, replacing any prior entry for the session.
func (m *Manager) Set(sessionID string, mode Mode, paths []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = Session{
		Mode:      mode,
		Paths:     append([]string(nil), paths...),
		Timestamp: time.Now(),
	}
}

// Get returns the session's selection.
func (m *Manager) Get(sessionID string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return Session{}, errs.Newf(errs.NotFound, "clipboard session %q not found", sessionID)
	}
	return session, nil
}

// TakeForPaste returns the selection for a paste and, for a cut selection,
// removes it immediately. Removal happens when the paste is initiated, not
// when it completes, so a second paste of the same cut fails even while the
// first is still running.
func (m *Manager) TakeForPaste(sessionID string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return Session{}, errs.Newf(errs.NotFound, "clipboard session %q not found", sessionID)
	}
	if session.Mode == ModeCut {
		delete(m.sessions, sessionID)
	}
	return session, nil
}

// Clear drops the session's selection. Clearing a missing session is a no-op.
func (m *Manager) Clear(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// Len returns the number of active sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// SelectionSize sums the byte size of a selection, descending into
// directory sources. Unreadable entries are skipped.
func SelectionSize(paths []string) int64 {
	var mu sync.Mutex
	var total int64
	conf := fastwalk.Config{Follow: false}

	for _, path := range paths {
		info, err := os.Lstat(path)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			total += info.Size()
			continue
		}

		_ = fastwalk.Walk(&conf, path, func(_ string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			fi, err := d.Info()
			if err != nil {
				return nil
			}
			mu.Lock()
			total += fi.Size()
			mu.Unlock()
			return nil
		})
	}
	return total
}
