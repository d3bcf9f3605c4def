package repositories

import "sync"

// MemoryRefreshTokenStore maps each username to its single currently
// valid refresh token. One mutex serializes reads and writes so a
// refresh validating a token can never race a concurrent login rotating
// it. The lock is only ever held for the duration of one map operation,
// never across a database round trip.
//
// Entries are never evicted: tokens for inactive users stay in memory
// until the process exits, and nothing survives a restart. Known
// limitation of the single-process design.
type MemoryRefreshTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

// NewMemoryRefreshTokenStore creates an empty store.
func NewMemoryRefreshTokenStore() *MemoryRefreshTokenStore {
	return &MemoryRefreshTokenStore{
		tokens: make(map[string]string),
	}
}

// SetCurrent unconditionally replaces the stored token for username. Any
// previously issued refresh token for that username is invalid from this
// point on.
func (s *MemoryRefreshTokenStore) SetCurrent(username, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[username] = token
}

// ValidateCurrent reports whether presented exactly matches the stored
// token for username. A token that was rotated away, issued to another
// user, or never issued at all does not match.
func (s *MemoryRefreshTokenStore) ValidateCurrent(username, presented string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.tokens[username]
	return ok && current == presented
}
