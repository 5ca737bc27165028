package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/youjizi/proxy-manager/internal/domain"
	"github.com/youjizi/proxy-manager/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage named proxy endpoints",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := profile.NewStore(profile.DefaultPath()).Load()
		for _, p := range cfg.Profiles {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-16s %s:%d\n", p.Name, p.Host, p.Port)
		}
		return nil
	},
}

var profileAddCmd = &cobra.Command{
	Use:   "add <name> <host> <port>",
	Short: "Add a profile",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		port, err := parsePort(args[2])
		if err != nil {
			return err
		}
		store := profile.NewStore(profile.DefaultPath())
		if _, err := store.AddProfile(domain.ProxyProfile{Name: args[0], Host: args[1], Port: port}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added profile %s (%s:%d)\n", args[0], args[1], port)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set <name> <host> <port>",
	Short: "Update a profile's endpoint",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		port, err := parsePort(args[2])
		if err != nil {
			return err
		}
		store := profile.NewStore(profile.DefaultPath())
		if _, err := store.UpdateProfile(args[0], domain.ProxyProfile{Name: args[0], Host: args[1], Port: port}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated profile %s (%s:%d)\n", args[0], args[1], port)
		return nil
	},
}

var profileRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a profile and any mappings that reference it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := profile.NewStore(profile.DefaultPath())
		if _, err := store.DeleteProfile(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %s\n", args[0])
		return nil
	},
}

func parsePort(raw string) (uint16, error) {
	port, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", raw)
	}
	return uint16(port), nil
}

func init() {
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileRmCmd)
	rootCmd.AddCommand(profileCmd)
}
