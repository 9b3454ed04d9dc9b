package msauth

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/helmsley-labs/graphcal/internal/view"
)

// User is the signed-in user's identity as shown to the frontend.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	ID    string `json:"id"`
}

// Session is a signed-in browser session. Nav carries the user's calendar
// navigation state across page loads.
type Session struct {
	ID        string
	Token     *oauth2.Token
	User      User
	Nav       view.State
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionTTL is how long a session stays valid. Matches the auth cookie
// lifetime.
const SessionTTL = 24 * time.Hour

// stateTTL bounds how long a login attempt may take between the redirect to
// Microsoft and the callback.
const stateTTL = 10 * time.Minute

// SessionStore keeps sessions and pending OAuth state parameters in memory.
// Safe for concurrent use.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	states   map[string]time.Time
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates an empty session store with the default TTL.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		states:   make(map[string]time.Time),
		ttl:      SessionTTL,
		now:      time.Now,
	}
}

// Create starts a session for a signed-in user with fresh navigation state.
func (s *SessionStore) Create(token *oauth2.Token, user User) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		Nav:       view.State{Mode: view.ModeMonth, Anchor: now},
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns the session with the given id, or false if it does not exist
// or has expired. Expired sessions are removed.
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.now().After(sess.ExpiresAt) {
		delete(s.sessions, id)
		return nil, false
	}
	return sess, true
}

// Delete removes a session.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Nav returns the session's navigation state.
func (s *SessionStore) Nav(id string) (view.State, bool) {
	sess, ok := s.Get(id)
	if !ok {
		return view.State{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return sess.Nav, true
}

// SetNav replaces the session's navigation state.
func (s *SessionStore) SetNav(id string, nav view.State) {
	sess, ok := s.Get(id)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess.Nav = nav
}

// NewState issues a state parameter for a login redirect.
func (s *SessionStore) NewState() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := uuid.NewString()
	s.states[state] = s.now().Add(stateTTL)
	return state
}

// ConsumeState checks and removes a state parameter returned by the
// callback. Returns false for unknown or expired states.
func (s *SessionStore) ConsumeState(state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expires, ok := s.states[state]
	if !ok {
		return false
	}
	delete(s.states, state)
	return s.now().Before(expires)
}

// Purge drops all expired sessions and states.
func (s *SessionStore) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
	for state, expires := range s.states {
		if now.After(expires) {
			delete(s.states, state)
		}
	}
}
