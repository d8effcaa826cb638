package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kanban/internal/logger"
	"kanban/internal/models/task"
	rep "kanban/internal/repository"

	"go.uber.org/zap"
)

// здесь происходит проверка ошибок бизнес-логики

type TaskService struct {
	repo  TaskRepository
	users UserRepository
}

func NewTaskService(repo TaskRepository, users UserRepository) *TaskService {
	return &TaskService{
		repo:  repo,
		users: users,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]*task.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}

// CreateTask новая задача всегда попадает в колонку todo
func (s *TaskService) CreateTask(ctx context.Context, todo, description, owner string, deadline *time.Time) (*task.Task, error) {
	if err := requireFields(todo, owner); err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, owner); err != nil {
		return nil, err
	}

	newTask := task.New(
		task.WithTodo(todo),
		task.WithDescription(description),
		task.WithOwner(owner),
		task.WithStatus(task.StatusTodo),
		task.WithDeadline(deadline),
	)

	if err := s.repo.Create(ctx, newTask); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	logger.Info("Service: Задача создана", zap.String("task_id", newTask.ID), zap.String("owner", owner))
	return newTask, nil
}

// UpdateTask полностью заменяет редактируемые поля задачи.
// Пустой статус означает todo.
func (s *TaskService) UpdateTask(ctx context.Context, id string, opts ...task.TaskOption) (*task.Task, error) {
	updated := task.New(opts...)
	updated.ID = id

	if err := requireFields(updated.Todo, updated.Owner); err != nil {
		return nil, err
	}

	if updated.Status == "" {
		updated.Status = task.StatusTodo
	}
	if !updated.Status.Valid() {
		return nil, NewValidationError("status", fmt.Sprintf("unknown status %q", updated.Status))
	}

	if err := s.checkOwner(ctx, updated.Owner); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", id))
			return nil, NewNotFound(ResourceTask, id)
		}
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}

	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", id))
			return NewNotFound(ResourceTask, id)
		}
		return fmt.Errorf("удаление задачи: %w", err)
	}

	logger.Info("Service: Задача удалена", zap.String("task_id", id))
	return nil
}

func requireFields(todo, owner string) error {
	var missing []string
	if strings.TrimSpace(todo) == "" {
		missing = append(missing, "todo")
	}
	if strings.TrimSpace(owner) == "" {
		missing = append(missing, "owner")
	}
	if len(missing) > 0 {
		return NewMissingFields(missing...)
	}
	return nil
}

// checkOwner владелец либо unassigned, либо существующий пользователь
func (s *TaskService) checkOwner(ctx context.Context, owner string) error {
	if owner == task.Unassigned {
		return nil
	}

	if _, err := s.users.GetByID(ctx, owner); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewValidationError("owner", "unknown user")
		}
		return fmt.Errorf("проверка владельца: %w", err)
	}
	return nil
}
