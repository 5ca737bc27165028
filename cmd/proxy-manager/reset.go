package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetInteractive bool

var resetCmd = &cobra.Command{
	Use:   "reset [targets...]",
	Short: "Reset targets to their original config",
	Long: "Reset restores each target's config from the original backup taken the\n" +
		"very first time it was enabled. Targets without an original backup are\n" +
		"left untouched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}

		names, cancelled, err := resolveTargetNames(cmd, m, args, resetInteractive, "Select targets to reset:")
		if err != nil || cancelled {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No targets selected.")
			return nil
		}

		printReport(cmd.OutOrStdout(), m.Reset(names))
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetInteractive, "interactive", "i", false, "Interactively select targets")
	rootCmd.AddCommand(resetCmd)
}
