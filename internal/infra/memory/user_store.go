package memory

import (
	"strings"
	"sync"

	"github.com/xavierca1/dental-crm/internal/entity"
)

// UserStore is the in-process user directory consumed by the auth
// middleware, the permission evaluator and the notification worker.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*entity.User
	order []string
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*entity.User)}
}

func (s *UserStore) FindByID(id string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (s *UserStore) List() []entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.User, 0, len(s.order))
	for _, id := range s.order {
		if u, ok := s.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out
}

func (s *UserStore) Create(u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *u
	s.users[u.ID] = &stored
	s.order = append(s.order, u.ID)
	return nil
}

func (s *UserStore) Update(u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return entity.ErrUserNotFound
	}
	stored := *u
	s.users[u.ID] = &stored
	return nil
}

// EmailFor implements the worker's ResponsibleResolver.
func (s *UserStore) EmailFor(userID string) (string, string, bool) {
	u, err := s.FindByID(userID)
	if err != nil || strings.TrimSpace(u.Email) == "" {
		return "", "", false
	}
	return u.Email, u.Name, true
}
