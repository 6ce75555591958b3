package cli

import "github.com/spf13/cobra"

// AddConfigCommand adds the config command group to the root command.
func AddConfigCommand(root *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect worklog configuration",
	}
	AddConfigShowCommand(cmd, flags)
	root.AddCommand(cmd)
}
