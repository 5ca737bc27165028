package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/youjizi/proxy-manager/internal/domain"
	"github.com/youjizi/proxy-manager/internal/winenv"
)

var statusOutput string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show install and backup state per target",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}

		hostname, _ := os.Hostname()
		report := domain.NewStatusReport(hostname, runtime.GOOS)

		for _, t := range m.Targets() {
			status := domain.TargetStatus{
				Name:       t.Name,
				Kind:       t.Kind,
				Installed:  t.Installed,
				ConfigPath: t.ConfigPath,
				IsCustom:   t.IsCustom,
			}
			if t.Kind == domain.KindOSEnv {
				if a, ok := m.Env.(*winenv.Applier); ok {
					status.OriginalBackup = a.HasOriginal()
					status.CurrentBackup = a.HasCurrent()
				}
			} else {
				status.OriginalBackup = m.Backups.HasOriginal(t.Name)
				status.CurrentBackup = m.Backups.HasCurrent(t.Name)
			}
			report.Targets = append(report.Targets, status)
		}

		if statusOutput != "" {
			if err := domain.WriteReport(report, statusOutput); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Status written to %s\n", statusOutput)
			return nil
		}

		data, err := domain.MarshalReport(report)
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		cmd.Print(string(data))
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "", "Write a TOML report to this path instead of stdout")
	rootCmd.AddCommand(statusCmd)
}
