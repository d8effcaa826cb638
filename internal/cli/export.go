package cli

import (
	"context"
	"flag"
	"io"

	"kanban/internal/board"
	"kanban/internal/models/task"

	"gopkg.in/yaml.v3"
)

func init() {
	Register(&ExportCmd{})
}

type exportTask struct {
	ID          string `yaml:"id"`
	Todo        string `yaml:"todo"`
	Description string `yaml:"description,omitempty"`
	Owner       string `yaml:"owner"`
	OwnerName   string `yaml:"owner_name"`
	Deadline    string `yaml:"deadline,omitempty"`
}

type exportUser struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// exportDoc колонки идут в порядке доски
type exportDoc struct {
	Todo     []exportTask `yaml:"todo"`
	Doing    []exportTask `yaml:"doing"`
	Complete []exportTask `yaml:"complete"`
	Owners   []string     `yaml:"owners"`
	Users    []exportUser `yaml:"users"`
}

// ExportCmd выгружает доску в YAML
type ExportCmd struct {
	owner string
}

func (c *ExportCmd) Name() string     { return "export" }
func (c *ExportCmd) Synopsis() string { return "Print the board as YAML" }
func (c *ExportCmd) Usage() string    { return "board export [-owner <user>]" }
func (c *ExportCmd) NeedsBoard() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.owner, "owner", board.All, "")
}

func (c *ExportCmd) Run(ctx context.Context, b *board.Board, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return usageError(errOut, c)
	}
	owner := resolveOwner(b, c.owner)

	column := func(status task.Status) []exportTask {
		res := make([]exportTask, 0)
		for _, t := range b.View(status, owner) {
			e := exportTask{
				ID:          t.ID,
				Todo:        t.Todo,
				Description: t.Description,
				Owner:       t.Owner,
				OwnerName:   b.OwnerName(t.Owner),
			}
			if t.Deadline != nil {
				e.Deadline = t.Deadline.Format(task.DateLayout)
			}
			res = append(res, e)
		}
		return res
	}

	doc := exportDoc{
		Todo:     column(task.StatusTodo),
		Doing:    column(task.StatusDoing),
		Complete: column(task.StatusComplete),
		Owners:   b.OwnersMenu(),
		Users:    make([]exportUser, 0),
	}
	for _, u := range b.Users() {
		doc.Users = append(doc.Users, exportUser{ID: u.ID, Name: u.Name})
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fail(errOut, err)
	}
	if err := enc.Close(); err != nil {
		return fail(errOut, err)
	}
	return ExitSuccess
}
