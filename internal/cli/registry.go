package cli

import (
	"fmt"
	"sort"
	"sync"
)

type Registry struct {
	mu   sync.RWMutex
	cmds map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]Command)}
}

// Register возвращает ошибку, если имя уже занято
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cmds[c.Name()]; exists {
		return fmt.Errorf("command already registered: %s", c.Name())
	}
	r.cmds[c.Name()] = c
	return nil
}

func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// All команды по имени
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]Command, 0, len(r.cmds))
	for _, c := range r.cmds {
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}

var DefaultRegistry = NewRegistry()

func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
