package inmemory

import (
	"context"
	"sync"
	"time"

	"kanban/internal/logger"
	"kanban/internal/models/task"
	repo "kanban/internal/repository"

	"github.com/google/uuid"
)

// TaskStorage хранит задачи в памяти, порядок списка совпадает с порядком создания
type TaskStorage struct {
	storage map[string]*task.Task
	mtx     *sync.RWMutex
	ids     []string
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[string]*task.Task),
		mtx:     &sync.RWMutex{},
		ids:     []string{},
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	logger.Debug("Repository: Соединение стабильно")
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	now := time.Now().UTC()
	taskToCreate.ID = uuid.NewString()
	taskToCreate.CreatedAt = now
	taskToCreate.UpdatedAt = now

	s.storage[taskToCreate.ID] = taskToCreate.Clone()
	s.ids = append(s.ids, taskToCreate.ID)
	return nil
}

// Update заменяет редактируемые поля, created_at берётся из сохранённой записи
func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existed, ok := s.storage[taskToUpdate.ID]
	if !ok {
		return repo.ErrNotFound
	}

	taskToUpdate.CreatedAt = existed.CreatedAt
	taskToUpdate.UpdatedAt = time.Now().UTC()
	s.storage[taskToUpdate.ID] = taskToUpdate.Clone()

	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id string) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return taskToGet.Clone(), nil
}

func (s *TaskStorage) Delete(ctx context.Context, id string) error {
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

func (s *TaskStorage) List(ctx context.Context) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*task.Task, 0, len(s.ids))
	for _, id := range s.ids {
		res = append(res, s.storage[id].Clone())
	}
	return res, nil
}

// GetTasksDueBefore незавершённые задачи со сроком раньше deadline
func (s *TaskStorage) GetTasksDueBefore(ctx context.Context, deadline time.Time, limit int) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var tasks []*task.Task
	for _, id := range s.ids {
		if len(tasks) >= limit {
			break
		}

		t := s.storage[id]
		if t.Overdue(deadline) {
			tasks = append(tasks, t.Clone())
		}
	}

	return tasks, nil
}
