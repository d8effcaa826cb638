package board

import (
	"sort"

	"kanban/internal/models/task"
	"kanban/internal/models/user"
)

// All фильтр без ограничения по владельцу
const All = "all"

// UnassignedName отображаемое имя для владельца без пользователя
const UnassignedName = "Unassigned"

// Column задачи колонки в порядке доски
func (b *Board) Column(status task.Status) []task.Task {
	return b.View(status, All)
}

// View колонка, суженная до задач владельца filter
func (b *Board) View(status task.Status, filter string) []task.Task {
	b.mu.Lock()
	defer b.mu.Unlock()

	res := make([]task.Task, 0)
	for i := range b.tasks {
		t := &b.tasks[i]
		if t.Status != status {
			continue
		}
		if filter != All && filter != "" && t.Owner != filter {
			continue
		}
		res = append(res, *t.Clone())
	}
	return res
}

// OwnersMenu различные владельцы всех задач, по возрастанию
func (b *Board) OwnersMenu() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	seen := make(map[string]struct{}, len(b.tasks))
	res := make([]string, 0)
	for _, t := range b.tasks {
		if _, ok := seen[t.Owner]; ok {
			continue
		}
		seen[t.Owner] = struct{}{}
		res = append(res, t.Owner)
	}
	sort.Strings(res)
	return res
}

// AssignedUsers пользователи, у которых есть хотя бы одна задача
func (b *Board) AssignedUsers() []user.User {
	b.mu.Lock()
	defer b.mu.Unlock()

	owners := make(map[string]struct{}, len(b.tasks))
	for _, t := range b.tasks {
		owners[t.Owner] = struct{}{}
	}
	res := make([]user.User, 0)
	for _, u := range b.users {
		if _, ok := owners[u.ID]; ok {
			res = append(res, u)
		}
	}
	return res
}

func (b *Board) Users() []user.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]user.User(nil), b.users...)
}

// OwnerName имя пользователя по id, для неизвестных и unassigned возвращает UnassignedName
func (b *Board) OwnerName(id string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.userIndex(id); i >= 0 {
		return b.users[i].Name
	}
	return UnassignedName
}

// Locate колонка и позиция задачи в ней
func (b *Board) Locate(id string) (Position, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return Position{}, false
	}
	status := b.tasks[i].Status
	index := 0
	for j := 0; j < i; j++ {
		if b.tasks[j].Status == status {
			index++
		}
	}
	return Position{Status: status, Index: index}, true
}
