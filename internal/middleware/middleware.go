package middleware

import (
	"context"
	"net/http"
	"time"

	"kanban/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const RequestIdKey contextKey = "request_id"

const (
	requestIDHeader    = "X-Request-ID"
	maxRequestIDLength = 128
)

// RequestID берёт X-Request-ID клиента или выдаёт новый uuid.
// Слишком длинные идентификаторы заменяются
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), RequestIdKey, id)))
	})
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIdKey).(string)
	return id
}

// statusRecorder запоминает код ответа и число записанных байт
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int
	sent    bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.sent {
		return
	}
	sr.status, sr.sent = code, true
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.sent {
		sr.WriteHeader(http.StatusOK)
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.written += n
	return n, err
}

func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

func levelFor(status int) zapcore.Level {
	switch {
	case status >= 500:
		return zap.ErrorLevel
	case status >= 400:
		return zap.WarnLevel
	default:
		return zap.InfoLevel
	}
}

// Logging пишет HTTP_IN до обработчика и HTTP_OUT после,
// в HTTP_OUT попадает шаблон маршрута chi (/update/{id})
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := GetRequestID(r.Context())

		logger.HttpRequestInfo(r, "HTTP_IN: Начало запроса", zap.String("request_id", id))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		logger.Log(levelFor(rec.status), "HTTP_OUT: Завершение запроса",
			zap.String("request_id", id),
			zap.String("route", route),
			zap.Int("status", rec.status),
			zap.Int("bytes_written", rec.written),
			zap.Duration("ms", time.Since(start)),
		)
	})
}
