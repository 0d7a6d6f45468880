package service

import (
	"log/slog"
	"sync"

	"endure/internal/modules/session/domain"
)

// Store owns the in-memory session: the bearer token, the current profile,
// and the resolved status. Token-mutating operations are serialized by the
// mutex; subscribers are notified after every status transition.
//
// Store implements rest.TokenSource so the HTTP client always sees the
// token the session currently holds.
type Store struct {
	mu      sync.Mutex
	status  domain.Status
	token   string
	user    domain.Profile
	hasUser bool
	subs    map[int]func(domain.Status)
	nextSub int
	log     *slog.Logger
}

func NewStore(log *slog.Logger) *Store {
	return &Store{
		status: domain.StatusUnresolved,
		subs:   map[int]func(domain.Status){},
		log:    log,
	}
}

func (s *Store) Status() domain.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *Store) User() (domain.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.hasUser
}

// Subscribe registers fn for status transitions and returns a cancel func.
func (s *Store) Subscribe(fn func(domain.Status)) func() {
	s.mu.Lock()
	key := s.nextSub
	s.nextSub++
	s.subs[key] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, key)
		s.mu.Unlock()
	}
}

// SetAuthenticating marks a login or signup in flight. The token is cleared
// so a failed attempt cannot leave a partial credential behind.
func (s *Store) SetAuthenticating() {
	s.transition(func() {
		s.status = domain.StatusAuthenticating
		s.token = ""
		s.hasUser = false
	})
}

// SetToken installs the token ahead of the profile fetch that completes
// authentication.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *Store) SetAuthenticated(user domain.Profile) {
	s.transition(func() {
		s.status = domain.StatusAuthenticated
		s.user = user
		s.hasUser = true
	})
	s.log.Info("session authenticated", "email", user.Email)
}

// SetUnauthenticated clears token and profile together. Idempotent.
func (s *Store) SetUnauthenticated() {
	s.transition(func() {
		s.status = domain.StatusUnauthenticated
		s.token = ""
		s.user = domain.Profile{}
		s.hasUser = false
	})
}

// ReplaceUser swaps in the canonical server profile after an update.
func (s *Store) ReplaceUser(user domain.Profile) {
	s.mu.Lock()
	s.user = user
	s.hasUser = true
	s.mu.Unlock()
}

func (s *Store) transition(apply func()) {
	s.mu.Lock()
	apply()
	status := s.status
	fns := make([]func(domain.Status), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(status)
	}
}
