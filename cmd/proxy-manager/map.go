package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/youjizi/proxy-manager/internal/profile"
)

var mapApply bool

var mapCmd = &cobra.Command{
	Use:   "map [software] [profile]",
	Short: "Map software to profiles and apply the mappings",
	Long: "With two arguments, map records that the software should use the named\n" +
		"profile. Without arguments it lists the stored mappings. With --apply it\n" +
		"enables the proxy on every mapped software using its profile's endpoint.",
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if mapApply {
			m, err := newManager()
			if err != nil {
				return err
			}
			mappings := m.Profiles.Load().Mappings
			if len(mappings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No mappings configured.")
				return nil
			}
			printReport(cmd.OutOrStdout(), m.EnableWithProfiles(mappings))
			return nil
		}

		store := profile.NewStore(profile.DefaultPath())

		if len(args) == 2 {
			if _, err := store.SetMapping(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mapped %s -> %s\n", args[0], args[1])
			return nil
		}
		if len(args) == 1 {
			return fmt.Errorf("map needs both a software and a profile name")
		}

		for _, mapping := range store.Load().Mappings {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-20s -> %s\n", mapping.SoftwareName, mapping.ProfileName)
		}
		return nil
	},
}

func init() {
	mapCmd.Flags().BoolVar(&mapApply, "apply", false, "Enable proxies per the stored mappings")
	rootCmd.AddCommand(mapCmd)
}
