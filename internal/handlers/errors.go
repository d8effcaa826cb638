package handlers

import (
	"errors"
	"net/http"

	"kanban/internal/logger"
	"kanban/internal/service"

	"go.uber.org/zap"
)

func handleBusinessError(w http.ResponseWriter, err error) bool {
	var businessErr *service.BusinessError
	if !errors.As(err, &businessErr) {
		return false
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)

	logger.Warn("HTTP: Бизнес-ошибка",
		zap.String("error_code", businessErr.Code),
		zap.Int("http_status", statusCode))

	responseWithJSON(w, statusCode,
		toPayload("error", businessErr.Code),
		toPayload("message", businessErr.Message),
		toPayload("details", businessErr.Details),
	)
	return true
}

// ошибки валидации отдаются как 404, клиенты доски на это рассчитывают
func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeValidation:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// handleServiceError бизнес-ошибки по таблице, остальное 500 с текстом ошибки
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if handleBusinessError(w, err) {
		return
	}

	logger.Error("HTTP: Ошибка Service", err, zap.String("path", r.URL.Path))
	responseWithError(w, http.StatusInternalServerError, err.Error())
}
