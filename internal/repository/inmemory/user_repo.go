package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"kanban/internal/models/user"
	repo "kanban/internal/repository"

	"github.com/google/uuid"
)

type UserStorage struct {
	storage map[string]user.User
	mtx     *sync.RWMutex
	ids     []string
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		storage: make(map[string]user.User),
		mtx:     &sync.RWMutex{},
		ids:     []string{},
	}
}

func (s *UserStorage) Create(ctx context.Context, u *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	s.storage[u.ID] = *u
	s.ids = append(s.ids, u.ID)
	return nil
}

func (s *UserStorage) Update(ctx context.Context, u *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existed, ok := s.storage[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	existed.Name = u.Name
	s.storage[u.ID] = existed
	*u = existed
	return nil
}

func (s *UserStorage) GetByID(ctx context.Context, id string) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	u, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (s *UserStorage) Delete(ctx context.Context, id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}

	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return nil
}

// List возвращает пользователей, отсортированных по имени
func (s *UserStorage) List(ctx context.Context) ([]*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*user.User, 0, len(s.ids))
	for _, id := range s.ids {
		u := s.storage[id]
		res = append(res, &u)
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Name < res[j].Name
	})
	return res, nil
}
