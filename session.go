package storefront

import "sync"

// Session holds the process-lifetime auth state: the bearer token and the
// resolved user. The user is only meaningfully populated when a token is
// held, but a token may exist with the user still unresolved (e.g. right
// after a restart, before Me is called).
type Session struct {
	mu    sync.RWMutex
	token string
	user  *User
}

// NewSession creates a session seeded with a (possibly empty) token.
func NewSession(token string) *Session {
	return &Session{token: token}
}

// Token returns the current session token, or "" if unauthenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the resolved user, or nil if not yet fetched.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

func (s *Session) setToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *Session) setUser(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// clear drops both token and user together.
func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}
