package task

import (
	"fmt"
	"time"
)

type Task struct {
	ID          string     `json:"_id" db:"id"`
	Todo        string     `json:"todo" db:"todo"`
	Description string     `json:"description" db:"description"`
	Owner       string     `json:"owner" db:"owner"`
	Status      Status     `json:"status" db:"status"`
	Deadline    *time.Time `json:"deadline,omitempty" db:"deadline"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

type Status string

const StatusTodo Status = "todo"
const StatusDoing Status = "doing"
const StatusComplete Status = "complete"

// Unassigned владелец, который не ссылается на пользователя
const Unassigned = "unassigned"

// Statuses возвращает статусы в порядке колонок доски
func Statuses() []Status {
	return []Status{StatusTodo, StatusDoing, StatusComplete}
}

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusComplete:
		return true
	}
	return false
}

// Overdue true, если срок прошёл, а задача не завершена
func (t *Task) Overdue(now time.Time) bool {
	return t.Deadline != nil && t.Status != StatusComplete && t.Deadline.Before(now)
}

func (t *Task) Clone() *Task {
	c := *t
	if t.Deadline != nil {
		d := *t.Deadline
		c.Deadline = &d
	}
	return &c
}

const DateLayout = "2006-01-02"

// ParseDeadline разбирает срок в RFC3339 или в виде даты, пустая строка означает отсутствие срока
func ParseDeadline(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, DateLayout} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			parsed = parsed.UTC()
			return &parsed, nil
		}
	}
	return nil, fmt.Errorf("неверный формат даты %q", raw)
}
