package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kanban/internal/logger"
	"kanban/internal/models/user"
	rep "kanban/internal/repository"

	"go.uber.org/zap"
)

// UserService удаление пользователя не трогает его задачи
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) ListUsers(ctx context.Context) ([]*user.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение пользователей: %w", err)
	}
	return users, nil
}

func (s *UserService) CreateUser(ctx context.Context, name string) (*user.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewMissingFields("name")
	}

	u := &user.User{Name: name}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("создание пользователя: %w", err)
	}

	logger.Info("Service: Пользователь создан", zap.String("user_id", u.ID))
	return u, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id, name string) (*user.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewMissingFields("name")
	}

	u := &user.User{ID: id, Name: name}
	if err := s.repo.Update(ctx, u); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound(ResourceUser, id)
		}
		return nil, fmt.Errorf("обновление пользователя: %w", err)
	}
	return u, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound(ResourceUser, id)
		}
		return fmt.Errorf("удаление пользователя: %w", err)
	}

	logger.Info("Service: Пользователь удалён", zap.String("user_id", id))
	return nil
}
