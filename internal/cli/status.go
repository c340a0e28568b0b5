package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/runsage/runsage/internal/artifact"
	"github.com/runsage/runsage/internal/report"
	"github.com/runsage/runsage/pkg/models"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize the current report and check model freshness",
		Long: `Fetch the configured report, print a summary of its test cases and
report whether the trained model still matches the report content.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client := report.NewClient(&cfg.Source)
			cases, hash, err := client.Load(ctx)
			if err != nil {
				return err
			}

			summary := models.Summarize(cases)
			fmt.Printf("Report: %d test cases (%s)\n", summary.Total, hash[:12])
			fmt.Printf("  passed:   %d\n", summary.Passed)
			fmt.Printf("  failed:   %d\n", summary.Failed)
			fmt.Printf("  skipped:  %d\n", summary.Skipped)
			fmt.Printf("  flaky:    %d\n", summary.Flaky)
			if !summary.LastRun.IsZero() {
				fmt.Printf("  last run: %s\n", summary.LastRun.Format("2006-01-02 15:04:05 MST"))
			}

			store := artifact.NewStore(cfg.Artifacts.Dir)
			man, err := store.LoadManifest()
			switch {
			case err != nil && errors.Is(err, artifact.ErrNotFound):
				fmt.Println("\nModel: not trained yet (run 'runsage train')")
			case err != nil:
				fmt.Printf("\nModel: unreadable (%v)\n", err)
			case man.ReportSHA256 == hash:
				fmt.Printf("\nModel: up to date (trained %s, %d answers)\n",
					man.TrainedAt.Format("2006-01-02 15:04:05 MST"), man.Answers)
			default:
				fmt.Println("\nModel: stale, the report changed since training (run 'runsage train')")
			}

			return nil
		},
	}
}
