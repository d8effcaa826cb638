package board

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"kanban/internal/logger"
	"kanban/internal/models/user"

	"github.com/google/uuid"
)

func (b *Board) AddUser(ctx context.Context, name string) (user.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return user.User{}, ErrMissingFields
	}
	placeholder := user.User{ID: tempIDPrefix + uuid.NewString(), Name: name}

	return optimistic(ctx, b, mutation[user.User]{
		name: "add_user",
		apply: func() (func(), error) {
			b.users = append(b.users, placeholder)
			user.SortByName(b.users)
			return func() {
				if i := b.userIndex(placeholder.ID); i >= 0 {
					b.users = slices.Delete(b.users, i, i+1)
				}
			}, nil
		},
		remote: func(ctx context.Context) (user.User, error) {
			return b.remote.CreateUser(ctx, name)
		},
		commit: func(created user.User) {
			if i := b.userIndex(placeholder.ID); i >= 0 {
				b.users[i] = created
			} else {
				b.users = append(b.users, created)
			}
			user.SortByName(b.users)
		},
	})
}

func (b *Board) RenameUser(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrMissingFields
	}

	_, err := optimistic(ctx, b, mutation[struct{}]{
		name: "rename_user",
		apply: func() (func(), error) {
			i := b.userIndex(id)
			if i < 0 {
				return nil, ErrUnknownUser
			}
			previous := b.users[i].Name
			b.users[i].Name = name
			user.SortByName(b.users)

			// имя, выставленное более поздней операцией, не трогаем
			return func() {
				if j := b.userIndex(id); j >= 0 && b.users[j].Name == name {
					b.users[j].Name = previous
					user.SortByName(b.users)
				}
			}, nil
		},
		remote: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, b.remote.UpdateUser(ctx, id, name)
		},
	})
	return err
}

// RemoveUser задачи пользователя не трогает, владелец у них остаётся прежним
func (b *Board) RemoveUser(ctx context.Context, id string) error {
	_, err := optimistic(ctx, b, mutation[struct{}]{
		name: "remove_user",
		apply: func() (func(), error) {
			i := b.userIndex(id)
			if i < 0 {
				return nil, ErrUnknownUser
			}
			removed := b.users[i]
			b.users = slices.Delete(b.users, i, i+1)
			return func() {
				if b.userIndex(id) < 0 {
					b.users = append(b.users, removed)
					user.SortByName(b.users)
				}
			}, nil
		},
		remote: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, b.remote.DeleteUser(ctx, id)
		},
	})
	return err
}

// ReloadUsers перечитывает список пользователей, задачи не трогает
func (b *Board) ReloadUsers(ctx context.Context) error {
	if b.isClosed() {
		return ErrClosed
	}
	ctx, done := b.join(ctx)
	defer done()

	users, err := b.remote.ListUsers(ctx)
	if err != nil {
		logger.Error("Board: не удалось загрузить пользователей", err)
		return b.closedOr(fmt.Errorf("загрузка пользователей: %w", err))
	}
	user.SortByName(users)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	b.users = users
	return nil
}
