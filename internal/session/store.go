package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/finman-app/finman-backend/internal/domain"
)

// Store holds the signed-in principals and the cached user list the admin
// screens work from. Lifecycle per token: unauthenticated ->
// authenticated(user) -> unauthenticated on sign-out. A single screen writes
// at a time; the lock only guards against concurrent requests.
type Store struct {
	mu          sync.RWMutex
	users       map[uuid.UUID]*domain.User
	admins      map[uuid.UUID]string
	cachedUsers []*domain.User
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		users:  make(map[uuid.UUID]*domain.User),
		admins: make(map[uuid.UUID]string),
	}
}

// SignIn registers a user session and returns its token.
func (s *Store) SignIn(user *domain.User) uuid.UUID {
	token := uuid.New()
	s.mu.Lock()
	s.users[token] = user
	s.mu.Unlock()
	return token
}

// User returns the signed-in user for a token.
func (s *Store) User(token uuid.UUID) (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[token]
	return user, ok
}

// SetUser replaces the session's user record after a successful mutation.
func (s *Store) SetUser(token uuid.UUID, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[token]; ok {
		s.users[token] = user
	}
}

// SignOut clears a user session.
func (s *Store) SignOut(token uuid.UUID) {
	s.mu.Lock()
	delete(s.users, token)
	s.mu.Unlock()
}

// SignInAdmin registers an administrator session and returns its token.
func (s *Store) SignInAdmin(usename string) uuid.UUID {
	token := uuid.New()
	s.mu.Lock()
	s.admins[token] = usename
	s.mu.Unlock()
	return token
}

// Admin returns the signed-in administrator name for a token.
func (s *Store) Admin(token uuid.UUID) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	usename, ok := s.admins[token]
	return usename, ok
}

// SignOutAdmin clears an administrator session.
func (s *Store) SignOutAdmin(token uuid.UUID) {
	s.mu.Lock()
	delete(s.admins, token)
	s.mu.Unlock()
}

// SetUsers replaces the cached user list.
func (s *Store) SetUsers(users []*domain.User) {
	s.mu.Lock()
	s.cachedUsers = users
	s.mu.Unlock()
}

// Users returns the cached user list.
func (s *Store) Users() []*domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cachedUsers
}
