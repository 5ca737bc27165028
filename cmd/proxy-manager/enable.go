package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/youjizi/proxy-manager/internal/domain"
)

var (
	enableHost        string
	enablePort        uint16
	enableHTTP        string
	enableHTTPS       string
	enableNoProxy     string
	enableInteractive bool
)

var enableCmd = &cobra.Command{
	Use:   "enable [targets...]",
	Short: "Enable proxy settings on targets",
	Long: "Enable writes proxy settings into each target's config file, backing up\n" +
		"the previous content first. Without target arguments every installed\n" +
		"target is enabled.",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}

		names, cancelled, err := resolveTargetNames(cmd, m, args, enableInteractive, "Select targets to enable:")
		if err != nil || cancelled {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No targets selected.")
			return nil
		}

		httpProxy := enableHTTP
		if httpProxy == "" {
			httpProxy = fmt.Sprintf("http://%s:%d", enableHost, enablePort)
		}
		httpsProxy := enableHTTPS
		if httpsProxy == "" {
			httpsProxy = httpProxy
		}

		settings := domain.ProxySettings{
			HTTPProxy:  httpProxy,
			HTTPSProxy: httpsProxy,
			NoProxy:    enableNoProxy,
		}

		printReport(cmd.OutOrStdout(), m.Enable(names, settings))
		return nil
	},
}

func init() {
	enableCmd.Flags().StringVar(&enableHost, "host", "127.0.0.1", "Proxy host")
	enableCmd.Flags().Uint16Var(&enablePort, "port", 7890, "Proxy port")
	enableCmd.Flags().StringVar(&enableHTTP, "http", "", "Full HTTP proxy URL (overrides --host/--port)")
	enableCmd.Flags().StringVar(&enableHTTPS, "https", "", "Full HTTPS proxy URL (defaults to the HTTP one)")
	enableCmd.Flags().StringVar(&enableNoProxy, "no-proxy", domain.DefaultNoProxy, "Bypass list")
	enableCmd.Flags().BoolVarP(&enableInteractive, "interactive", "i", false, "Interactively select targets")
	rootCmd.AddCommand(enableCmd)
}
