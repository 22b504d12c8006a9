// Package session holds per-browser-session dashboard state.
//
// A Session mirrors both stores in memory. Once created it never re-reads the
// backing documents; explicit saves in the service layer checkpoint it.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/ameen01/Bad-Trade/internal/model"
	"github.com/ameen01/Bad-Trade/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Session is the mutable state of one browser session
type Session struct {
	ID       string
	LoggedIn bool
	Username string
	Users    model.Users
	Data     model.Table

	mu sync.Mutex
}

// Lock serializes interactions within the session.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// IsAdmin reports whether the admin account is logged in.
func (s *Session) IsAdmin() bool {
	return s.LoggedIn && s.Username == model.AdminUsername
}

// Account returns the logged in user's account.
func (s *Session) Account() (model.Account, bool) {
	if !s.LoggedIn {
		return model.Account{}, false
	}
	acc, ok := s.Users[s.Username]
	return acc, ok
}

// Manager owns every live session of the process
type Manager struct {
	users   repository.UserRepository
	records repository.RecordRepository

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a new Manager
func NewManager(users repository.UserRepository, records repository.RecordRepository) *Manager {
	return &Manager{
		users:    users,
		records:  records,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session with the given id. An unknown or empty id starts a
// new session, initialized from both stores.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if id != "" {
		m.mu.RLock()
		sess, ok := m.sessions[id]
		m.mu.RUnlock()
		if ok {
			return sess, nil
		}
	}

	sess, err := m.newSession(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	logrus.WithField("session_id", sess.ID).Debug("Session started")
	return sess, nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) newSession(ctx context.Context) (*Session, error) {
	users, err := m.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session users: %w", err)
	}
	data, err := m.records.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session data: %w", err)
	}
	return &Session{
		ID:    uuid.NewString(),
		Users: users,
		Data:  data,
	}, nil
}
