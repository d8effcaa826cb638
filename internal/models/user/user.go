package user

import (
	"sort"
	"time"
)

type User struct {
	ID        string    `json:"_id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}

// SortByName сортирует по имени, при равных именах сохраняет исходный порядок
func SortByName(users []User) {
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Name < users[j].Name
	})
}

// Index строит отображение id -> имя
func Index(users []User) map[string]string {
	res := make(map[string]string, len(users))
	for _, u := range users {
		res[u.ID] = u.Name
	}
	return res
}
