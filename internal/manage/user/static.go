package user

import (
	"context"
	"sync"
)

// StaticService binds users from an in-memory directory.
type StaticService struct {
	mu    sync.RWMutex
	users map[string]User
	err   error
}

// NewStaticService constructs a StaticService seeded with users.
func NewStaticService(users ...User) *StaticService {
	s := &StaticService{users: make(map[string]User, len(users))}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

// Add registers or replaces a user.
func (s *StaticService) Add(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// FailWith makes subsequent calls return err; nil restores normal behaviour.
func (s *StaticService) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// BindUsers attaches copies of the known users to records.
func (s *StaticService) BindUsers(ctx context.Context, records []Bindable) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return s.err
	}
	found := make(map[string]*User)
	for _, id := range distinctIDs(records) {
		if u, ok := s.users[id]; ok {
			copied := u
			found[id] = &copied
		}
	}
	bindAll(records, found)
	return nil
}
