package cli

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/worklog/internal/tui"
	"github.com/mrz1836/worklog/internal/worklog"
)

// AddListCommand adds the list command to the root command.
func AddListCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every logged task",
		Long: `Print every task in the work log in file order.

Examples:
  worklog list                  # Table of all tasks
  worklog list --output json    # JSON array, one object per task
  worklog list -f team.csv      # List another work log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	})
}

// listResponse is the JSON form of the list command.
type listResponse struct {
	Path  string         `json:"path"`
	Tasks []worklog.Task `json:"tasks"`
}

func runList(ctx context.Context, w io.Writer, flags *GlobalFlags) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cfg, err := loadConfig(ctx, flags)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	tasks, err := st.ReadAll(ctx)
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Int("tasks", len(tasks)).Str("store", st.Path()).Msg("listing work log")

	out := tui.NewOutput(w, flags.Output)
	if flags.Output == OutputJSON {
		return out.JSON(listResponse{Path: st.Path(), Tasks: tasks})
	}

	if len(tasks) == 0 {
		out.Warning(tui.NoticeNotFound)
		return nil
	}
	tui.WriteTaskTable(w, tasks)
	return nil
}
