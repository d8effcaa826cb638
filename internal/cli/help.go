package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"kanban/internal/board"
)

func init() {
	Register(&HelpCmd{registry: DefaultRegistry})
}

type HelpCmd struct {
	registry *Registry
}

func (c *HelpCmd) Name() string                   { return "help" }
func (c *HelpCmd) Synopsis() string               { return "Print usage" }
func (c *HelpCmd) Usage() string                  { return "board help" }
func (c *HelpCmd) NeedsBoard() bool               { return false }
func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, b *board.Board, args []string, out, errOut io.Writer) int {
	fmt.Fprintln(out, "Usage:")
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, cmd := range c.registry.All() {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Usage(), cmd.Synopsis())
	}
	_ = tw.Flush()

	fmt.Fprint(out, `
Common flags:
  -debug   Print debug logs to stderr

Environment:
  KANBAN_API_URL   Task Store address (default http://localhost:5555)
`)
	return ExitSuccess
}
