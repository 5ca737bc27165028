package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect <vpn-name>",
	Short: "Detect the listening ports of a VPN client",
	Long: "Detect looks for a running VPN client (Clash, V2Ray, Veee, Shadowsocks,\n" +
		"Surge, or any process name) and reports its listening proxy ports. When a\n" +
		"known client is not running its default ports are reported instead.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result := newDetector().DetectByName(cmd.Context(), args[0])

		if !result.Success {
			fmt.Fprintln(cmd.OutOrStdout(), errorStyle.Render(result.Message))
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		for _, p := range result.Ports {
			detail := ""
			if p.PID != 0 {
				detail = dimStyle.Render(fmt.Sprintf("(%s, pid %d)", p.ProcessName, p.PID))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %-6d %-7s %s\n", p.Port, p.PortType, detail)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
