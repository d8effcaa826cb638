package handlers

import (
	"net/http"
	"time"

	"kanban/internal/handlers/dto"
	"kanban/internal/logger"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	UserService UserService
}

func NewUserHandler(userService UserService) UserHandler {
	return UserHandler{UserService: userService}
}

func (s *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	users, err := s.UserService.ListUsers(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Пользователи получены",
		zap.Int("count", len(users)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.FromUserList(users))
}

func (s *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.UserRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	created, err := s.UserService.CreateUser(r.Context(), request.Name)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Пользователь создан",
		zap.String("user_id", created.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithBody(w, http.StatusCreated, dto.FromUser(created))
}

func (s *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")

	var request dto.UserRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	if _, err := s.UserService.UpdateUser(r.Context(), id, request.Name); err != nil {
		handleServiceError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Пользователь обновлён",
		zap.String("user_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.MessageResponse{Message: "User has been updated"})
}

func (s *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")

	if err := s.UserService.DeleteUser(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Пользователь удалён",
		zap.String("user_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.MessageResponse{Message: "User has been deleted"})
}
