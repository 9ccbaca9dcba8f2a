// File: cmd/scan.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/exposcan/internal/observability"
	"github.com/xkilldash9x/exposcan/internal/reporting"
)

// newScanCmd creates and configures the `scan` command.
func newScanCmd() *cobra.Command {
	var (
		githubUsername string
		output         string
		format         string
		noStore        bool
	)

	scanCmd := &cobra.Command{
		Use:   "scan <email>",
		Short: "Runs a one-off exposure scan for an email address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Use the signal-aware context from Execute().
			ctx := cmd.Context()
			logger := observability.GetLogger()
			email := args[0]

			logger.Info("Starting new scan", zap.String("githubUsername", githubUsername))

			c, err := initializeComponents(ctx, cfg, !noStore, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize scan components: %w", err)
			}
			defer c.Shutdown()

			assessment, err := c.Orchestrator.Scan(ctx, email, githubUsername)
			if err != nil {
				return err
			}

			reporter, err := reporting.New(format, output)
			if err != nil {
				return err
			}
			defer func() {
				if err := reporter.Close(); err != nil {
					logger.Error("Failed to close reporter", zap.Error(err))
				}
			}()

			if err := reporter.Write(assessment); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			if output != "" && output != "stdout" {
				fmt.Printf("\nScan complete. Scan ID: %s. Report written to %s\n", assessment.ScanID, output)
			}
			return nil
		},
	}

	scanCmd.Flags().StringVarP(&githubUsername, "github", "g", "", "GitHub username to include in the assessment")
	scanCmd.Flags().StringVarP(&output, "output", "o", "", "Output file path for the report. Defaults to stdout.")
	scanCmd.Flags().StringVarP(&format, "format", "f", "text", "Report format ('text' or 'json').")
	scanCmd.Flags().BoolVar(&noStore, "no-store", false, "Skip persisting the assessment even when a database is configured.")

	return scanCmd
}
