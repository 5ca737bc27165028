package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/youjizi/proxy-manager/internal/domain"
	"github.com/youjizi/proxy-manager/internal/editor"
	"github.com/youjizi/proxy-manager/internal/profile"
	"github.com/youjizi/proxy-manager/internal/util"
)

var customCmd = &cobra.Command{
	Use:   "custom",
	Short: "Manage custom software targets",
}

var customAddCmd = &cobra.Command{
	Use:   "add <name> <kind> <config-path>",
	Short: "Register custom software by config format and path",
	Long: "Kind must be one of ini (sectioned key-value), kv (flat key-value),\n" +
		"json (settings document), or xml (generated proxy file).",
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := domain.FormatKind(args[1])
		if _, err := editor.ForKind(kind); err != nil {
			return err
		}

		store := profile.NewStore(profile.DefaultPath())
		sw := domain.CustomSoftware{
			Name:       args[0],
			Kind:       kind,
			ConfigPath: util.ExpandHome(args[2]),
		}
		if _, err := store.AddCustomSoftware(sw); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added custom software %s (%s: %s)\n", sw.Name, sw.Kind, sw.ConfigPath)
		return nil
	},
}

var customRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove custom software and any mappings that reference it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := profile.NewStore(profile.DefaultPath())
		if _, err := store.DeleteCustomSoftware(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed custom software %s\n", args[0])
		return nil
	},
}

func init() {
	customCmd.AddCommand(customAddCmd)
	customCmd.AddCommand(customRmCmd)
	rootCmd.AddCommand(customCmd)
}
