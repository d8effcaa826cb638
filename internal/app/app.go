package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"kanban/internal/config"
	"kanban/internal/handlers"
	"kanban/internal/logger"
	"kanban/internal/middleware"
	"kanban/internal/repository/inmemory"
	"kanban/internal/repository/mongodb"
	"kanban/internal/repository/postgres"
	"kanban/internal/service"
	"kanban/internal/worker"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	config       *config.Config
	server       *http.Server
	router       *chi.Mux
	tasks        service.TaskRepository
	users        service.UserRepository
	limiter      middleware.Limiter
	worker       *worker.AuditWorker
	mu           sync.Mutex
	stopWorker   context.CancelFunc
	workerDone   chan struct{}
	shutdowns    []func(context.Context) error // выполняются в обратном порядке
	initLoggerFn func(bool) error
}

func New(cfg *config.Config) *App {
	return &App{
		config:       cfg,
		shutdowns:    make([]func(context.Context) error, 0),
		initLoggerFn: logger.Init,
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := a.initLoggerFn(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.onShutdown(func(context.Context) error {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
		return nil
	})

	if err := a.initStorage(ctx); err != nil {
		return fmt.Errorf("инициализация хранилища: %w", err)
	}

	if err := a.initLimiter(ctx); err != nil {
		return fmt.Errorf("инициализация rate limiter: %w", err)
	}

	taskService := service.NewTaskService(a.tasks, a.users)
	userService := service.NewUserService(a.users)

	a.router = newRouter(
		handlers.NewTaskHandler(taskService),
		handlers.NewUserHandler(userService),
		a.limiter,
		a.config.CORS.AllowedOrigins,
	)

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      a.router,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	if a.config.Worker.Enabled {
		a.worker = worker.NewAuditWorker(a.tasks, a.users, &a.config.Worker.Interval, &a.config.Worker.BatchSize)
	}

	logger.Info("App: Инициализация завершена",
		zap.String("repository", a.config.Repository.Type),
		zap.String("rate_limit", a.config.RateLimit.Backend),
		zap.Bool("worker", a.config.Worker.Enabled))
	return nil
}

func (a *App) initStorage(ctx context.Context) error {
	switch a.config.Repository.Type {
	case config.RepositoryMongo:
		storage, err := mongodb.New(ctx, a.config.Mongo.URI, a.config.Mongo.Database)
		if err != nil {
			return err
		}
		a.tasks, a.users = storage.Tasks(), storage.Users()
		a.onShutdown(storage.Close)

	case config.RepositoryPostgres:
		storage, err := postgres.New(ctx, a.config.Database.URL, postgres.Options{
			MaxConns:        int32(a.config.Database.MaxConnections),
			MinConns:        int32(a.config.Database.MinConnections),
			MaxConnIdleTime: a.config.Database.IdleTimeout,
		})
		if err != nil {
			return err
		}
		a.onShutdown(func(context.Context) error {
			storage.Close()
			return nil
		})
		if err := storage.Migrate(ctx); err != nil {
			return err
		}
		a.tasks, a.users = storage.Tasks(), storage.Users()

	default:
		a.tasks, a.users = inmemory.NewTaskStorage(), inmemory.NewUserStorage()
	}
	return nil
}

func (a *App) initLimiter(ctx context.Context) error {
	if a.config.RateLimit.Backend != config.RateLimitRedis {
		a.limiter = middleware.NewMemoryLimiter(a.config.RateLimit.RPM, time.Minute)
		return nil
	}

	opts, err := redis.ParseURL(a.config.Redis.URL)
	if err != nil {
		return fmt.Errorf("разбор redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("проверка соединения redis: %w", err)
	}
	a.onShutdown(func(context.Context) error {
		return client.Close()
	})

	a.limiter = middleware.NewRedisLimiter(client, a.config.RateLimit.RPM, time.Minute)
	return nil
}

func (a *App) onShutdown(fn func(context.Context) error) {
	a.shutdowns = append(a.shutdowns, fn)
}

func (a *App) Router() http.Handler {
	return a.router
}

// Run блокируется до остановки сервера
func (a *App) Run() error {
	if a.worker != nil {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})

		a.mu.Lock()
		a.stopWorker, a.workerDone = cancel, done
		a.mu.Unlock()

		go func() {
			defer close(done)
			a.worker.Start(ctx)
		}()
	}

	logger.Info("Server started", zap.String("addr", a.server.Addr))
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server: Ошибка запуска", err)
		return err
	}
	return nil
}

// Shutdown останавливает сервер, воркер и закрывает ресурсы
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error

	if a.server != nil {
		logger.Info("Server: Остановка HTTP сервера")
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("остановка сервера: %w", err))
		}
	}

	a.mu.Lock()
	stopWorker, workerDone := a.stopWorker, a.workerDone
	a.stopWorker = nil
	a.mu.Unlock()

	if stopWorker != nil {
		stopWorker()
		select {
		case <-workerDone:
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("остановка воркера: %w", ctx.Err()))
		}
	}

	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		if err := a.shutdowns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.shutdowns = nil

	return errors.Join(errs...)
}
