package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"kanban/internal/logger"

	"go.uber.org/zap"
)

// Decision результат проверки лимита для одного запроса
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter считает запросы клиента в фиксированном окне
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

type clientInfo struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter лимит в памяти процесса, годится для одного инстанса
type MemoryLimiter struct {
	rpm     int
	window  time.Duration
	now     func() time.Time
	mtx     sync.Mutex
	clients map[string]*clientInfo
	swept   time.Time
}

func NewMemoryLimiter(rpm int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		rpm:     rpm,
		window:  window,
		now:     time.Now,
		clients: make(map[string]*clientInfo),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := l.now()

	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.sweep(now)

	info, exists := l.clients[key]
	if !exists || now.After(info.resetAt) {
		info = &clientInfo{count: 0, resetAt: now.Add(l.window)}
		l.clients[key] = info
	}

	if info.count >= l.rpm {
		return Decision{Allowed: false, Limit: l.rpm, Remaining: 0, ResetAt: info.resetAt}, nil
	}

	info.count++
	return Decision{
		Allowed:   true,
		Limit:     l.rpm,
		Remaining: l.rpm - info.count,
		ResetAt:   info.resetAt,
	}, nil
}

// sweep удаляет клиентов с истёкшим окном, не чаще раза за окно
func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(l.swept) < l.window {
		return
	}
	l.swept = now
	for key, info := range l.clients {
		if now.After(info.resetAt) {
			delete(l.clients, key)
		}
	}
}

// RateLimit при ошибке лимитера запрос пропускается
func RateLimit(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getIp(r)

			decision, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				logger.Error("HTTP: Ошибка rate limiter", err, zap.String("client_ip", ip))
				next.ServeHTTP(w, r)
				return
			}

			remaining := decision.Remaining
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

			if !decision.Allowed {
				logger.Warn("HTTP: Превышен лимит запросов",
					zap.String("client_ip", ip),
					zap.String("request_id", GetRequestID(r.Context())))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)

				_ = json.NewEncoder(w).Encode(map[string]any{
					"error":       "rate_limit_exceeded",
					"message":     "Too many requests. Try again later.",
					"retry_after": int(time.Until(decision.ResetAt).Seconds()),
					"request_id":  GetRequestID(r.Context()),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func getIp(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
