package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kanban/internal/logger"
	"kanban/internal/models/user"
	repo "kanban/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserStorage struct {
	pool *pgxpool.Pool
}

func (s *UserStorage) Create(ctx context.Context, u *user.User) error {
	defer warnIfSlow(time.Now(), "user.create")

	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (id, name) VALUES ($1, $2) RETURNING id::text, created_at`,
		uuid.New(), u.Name,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		logger.Error("Repository: Не удалось добавить пользователя", err)
		return fmt.Errorf("добавление пользователя: %w", err)
	}
	return nil
}

func (s *UserStorage) Update(ctx context.Context, u *user.User) error {
	defer warnIfSlow(time.Now(), "user.update")

	id, err := parseID(u.ID)
	if err != nil {
		return err
	}

	err = s.pool.QueryRow(ctx,
		`UPDATE users SET name = $1 WHERE id = $2 RETURNING created_at`,
		u.Name, id,
	).Scan(&u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить пользователя", err)
		return fmt.Errorf("обновление пользователя: %w", err)
	}
	return nil
}

func (s *UserStorage) GetByID(ctx context.Context, id string) (*user.User, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}

	u := &user.User{}
	err = s.pool.QueryRow(ctx,
		`SELECT id::text, name, created_at FROM users WHERE id = $1`, parsed,
	).Scan(&u.ID, &u.Name, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить пользователя", err)
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	return u, nil
}

func (s *UserStorage) Delete(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, parsed)
	if err != nil {
		logger.Error("Repository: Не удалось удалить пользователя", err)
		return fmt.Errorf("удаление пользователя: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *UserStorage) List(ctx context.Context) ([]*user.User, error) {
	defer warnIfSlow(time.Now(), "user.list")

	rows, err := s.pool.Query(ctx, `SELECT id::text, name, created_at FROM users ORDER BY name, created_at`)
	if err != nil {
		logger.Error("Repository: Не удалось получить пользователей", err)
		return nil, fmt.Errorf("получение пользователей: %w", err)
	}

	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*user.User, error) {
		u := &user.User{}
		err := row.Scan(&u.ID, &u.Name, &u.CreatedAt)
		return u, err
	})
	if err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	return users, nil
}
