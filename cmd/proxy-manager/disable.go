package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var disableInteractive bool

var disableCmd = &cobra.Command{
	Use:   "disable [targets...]",
	Short: "Disable proxy settings on targets",
	Long: "Disable restores each target's config from the backup taken at the last\n" +
		"enable. Targets that were never backed up get their proxy directives\n" +
		"stripped instead.",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}

		names, cancelled, err := resolveTargetNames(cmd, m, args, disableInteractive, "Select targets to disable:")
		if err != nil || cancelled {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No targets selected.")
			return nil
		}

		printReport(cmd.OutOrStdout(), m.Disable(names))
		return nil
	},
}

func init() {
	disableCmd.Flags().BoolVarP(&disableInteractive, "interactive", "i", false, "Interactively select targets")
	rootCmd.AddCommand(disableCmd)
}
