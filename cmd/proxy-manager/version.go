package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print proxy-manager version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "proxy-manager %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
