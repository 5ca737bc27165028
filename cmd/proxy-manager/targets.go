package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List managed software targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}

		for _, t := range m.Targets() {
			mark := dimStyle.Render("-")
			if t.Installed {
				mark = successStyle.Render("✓")
			}
			name := t.Name
			if t.IsCustom {
				name += " *"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %-20s %-4s %s\n",
				mark, name, t.Kind, dimStyle.Render(t.ConfigPath))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}
