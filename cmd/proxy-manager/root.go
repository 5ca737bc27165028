package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "proxy-manager",
	Short: "Toggle HTTP(S) proxy settings across developer tools",
	Long: "proxy-manager enables, disables, and resets proxy settings for Git, npm,\n" +
		"VS Code, Cursor, IntelliJ IDEA, and the Windows user environment,\n" +
		"keeping backups so every change can be undone.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
