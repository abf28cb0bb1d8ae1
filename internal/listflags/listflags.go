package listflags

import "github.com/spf13/cobra"

// AddAllFlag adds a shared --all flag to list commands.
func AddAllFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().Bool("all", false, "Include complete todos")
		return
	}

	cmd.Flags().BoolVar(target, "all", false, "Include complete todos")
}
