package worker

import (
	"context"
	"fmt"
	"time"

	"kanban/internal/logger"
	"kanban/internal/models/task"
	"kanban/internal/models/user"

	"go.uber.org/zap"
)

type TaskReader interface {
	List(context.Context) ([]*task.Task, error)
	GetTasksDueBefore(ctx context.Context, deadline time.Time, limit int) ([]*task.Task, error)
}

type UserReader interface {
	List(context.Context) ([]*user.User, error)
}

// Report результат одной проверки
type Report struct {
	Overdue  []string
	Orphaned []string
	Checked  int
}

// AuditWorker периодически ищет просроченные задачи и задачи,
// чей владелец удалён. Ничего не меняет, только пишет в лог.
type AuditWorker struct {
	tasks     TaskReader
	users     UserReader
	interval  time.Duration
	batchSize int
	now       func() time.Time
}

func NewAuditWorker(tasks TaskReader, users UserReader, interval *time.Duration, batchSize *int) *AuditWorker {
	intervalToSet := 5 * time.Minute
	if interval != nil && *interval > 0 {
		intervalToSet = *interval
	}

	batchToSet := 100
	if batchSize != nil && *batchSize > 0 {
		batchToSet = *batchSize
	}

	return &AuditWorker{
		tasks:     tasks,
		users:     users,
		interval:  intervalToSet,
		batchSize: batchToSet,
		now:       time.Now,
	}
}

func (w *AuditWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logger.Info("Worker: Фоновая проверка задач", zap.Time("started_at", w.now()))
			if _, err := w.Check(ctx); err != nil {
				logger.Warn("Worker: Ошибка проверки", zap.Error(err))
			}
		case <-ctx.Done():
			logger.Info("Worker: Фоновая проверка останавливается")
			return
		}
	}
}

func (w *AuditWorker) Check(ctx context.Context) (Report, error) {
	start := time.Now()
	var report Report

	overdue, err := w.tasks.GetTasksDueBefore(ctx, w.now(), w.batchSize)
	if err != nil {
		return report, fmt.Errorf("получение просроченных задач: %w", err)
	}
	for _, t := range overdue {
		report.Overdue = append(report.Overdue, t.ID)
		logger.Warn("Worker: Задача просрочена",
			zap.String("task_id", t.ID),
			zap.String("owner", t.Owner),
			zap.Timep("deadline", t.Deadline))
	}

	orphaned, checked, err := w.findOrphaned(ctx)
	if err != nil {
		return report, err
	}
	report.Orphaned = orphaned
	report.Checked = checked

	logger.Info(
		"Worker: Завершение проверки задач",
		zap.Duration("ms", time.Since(start)),
		zap.Int("checked", report.Checked),
		zap.Int("overdue", len(report.Overdue)),
		zap.Int("orphaned", len(report.Orphaned)),
	)
	return report, nil
}

// findOrphaned задачи, чей владелец не unassigned и не найден среди пользователей
func (w *AuditWorker) findOrphaned(ctx context.Context) ([]string, int, error) {
	tasks, err := w.tasks.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("получение задач: %w", err)
	}

	users, err := w.users.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("получение пользователей: %w", err)
	}

	known := make(map[string]struct{}, len(users))
	for _, u := range users {
		known[u.ID] = struct{}{}
	}

	var orphaned []string
	for _, t := range tasks {
		if t.Owner == task.Unassigned {
			continue
		}
		if _, ok := known[t.Owner]; ok {
			continue
		}
		orphaned = append(orphaned, t.ID)
		logger.Warn("Worker: Владелец задачи не найден",
			zap.String("task_id", t.ID),
			zap.String("owner", t.Owner))

		if len(orphaned) >= w.batchSize {
			break
		}
	}
	return orphaned, len(tasks), nil
}
