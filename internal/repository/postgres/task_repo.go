package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kanban/internal/logger"
	"kanban/internal/models/task"
	repo "kanban/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const taskColumns = `id::text, todo, description, owner, status, deadline, created_at, updated_at`

type TaskStorage struct {
	*Storage
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*task.Task, error) {
	t := &task.Task{}
	err := row.Scan(
		&t.ID,
		&t.Todo,
		&t.Description,
		&t.Owner,
		&t.Status,
		&t.Deadline,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	start := time.Now()
	defer warnIfSlow(start, "task.create")

	query := `INSERT INTO tasks
				(id, todo, description, owner, status, deadline)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id::text, created_at, updated_at`

	err := s.pool.QueryRow(ctx, query,
		uuid.New(),
		taskToCreate.Todo,
		taskToCreate.Description,
		taskToCreate.Owner,
		taskToCreate.Status,
		taskToCreate.Deadline,
	).Scan(&taskToCreate.ID, &taskToCreate.CreatedAt, &taskToCreate.UpdatedAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}
	return nil
}

func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	start := time.Now()
	defer warnIfSlow(start, "task.update")

	id, err := parseID(taskToUpdate.ID)
	if err != nil {
		return err
	}

	query := `UPDATE tasks
			SET todo = $1,
				description = $2,
				owner = $3,
				status = $4,
				deadline = $5,
				updated_at = NOW()
			WHERE id = $6
			RETURNING created_at, updated_at`

	err = s.pool.QueryRow(ctx, query,
		taskToUpdate.Todo,
		taskToUpdate.Description,
		taskToUpdate.Owner,
		taskToUpdate.Status,
		taskToUpdate.Deadline,
		id,
	).Scan(&taskToUpdate.CreatedAt, &taskToUpdate.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить задачу", err)
		return fmt.Errorf("обновление задачи: %w", err)
	}
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id string) (*task.Task, error) {
	start := time.Now()
	defer warnIfSlow(start, "task.get")

	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	t, err := scanTask(s.pool.QueryRow(ctx, query, parsed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return t, nil
}

func (s *TaskStorage) Delete(ctx context.Context, id string) error {
	start := time.Now()
	defer warnIfSlow(start, "task.delete")

	parsed, err := parseID(id)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, parsed)
	if err != nil {
		logger.Error("Repository: Удаление задачи", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("удаление задачи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *TaskStorage) List(ctx context.Context) ([]*task.Task, error) {
	start := time.Now()
	defer warnIfSlow(start, "task.list")

	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at, id`
	return s.query(ctx, start, query)
}

// GetTasksDueBefore незавершённые задачи со сроком раньше deadline
func (s *TaskStorage) GetTasksDueBefore(ctx context.Context, deadline time.Time, limit int) ([]*task.Task, error) {
	start := time.Now()
	defer warnIfSlow(start, "task.due_before")

	query := `SELECT ` + taskColumns + ` FROM tasks
				WHERE status <> 'complete'
				  AND deadline IS NOT NULL
				  AND deadline < $1
				ORDER BY deadline
				LIMIT $2`
	return s.query(ctx, start, query, deadline, limit)
}

func (s *TaskStorage) query(ctx context.Context, start time.Time, query string, args ...any) ([]*task.Task, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			logger.Error("Repository: Ошибка сканирования задачи", err)
			return nil, fmt.Errorf("сканирование задачи: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	return tasks, nil
}
