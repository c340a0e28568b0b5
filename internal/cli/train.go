package cli

import (
	"context"
	"fmt"

	"github.com/runsage/runsage/internal/pipeline"
	"github.com/spf13/cobra"
)

func newTrainCmd() *cobra.Command {
	var ifChanged bool

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fetch the test report and train the answer model",
		Long: `Fetch the configured test report, synthesize question/answer pairs from
it and train the resolver. The trained model is written to the artifact
directory and replaces any previous model atomically.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			trainer, err := pipeline.NewTrainer(cfg, dryRun, ifChanged)
			if err != nil {
				return fmt.Errorf("failed to create trainer: %w", err)
			}
			defer trainer.Close()

			result, err := trainer.Run(ctx)
			if err != nil {
				return fmt.Errorf("training failed: %w", err)
			}

			if result.Skipped {
				fmt.Printf("Skipped: %s\n", result.SkipReason)
				return nil
			}

			fmt.Printf("Trained on %d test cases: %d pairs, %d answers, %d vocabulary terms in %dms\n",
				result.Stats.Cases, result.Stats.Pairs, result.Stats.Answers,
				result.Stats.Vocabulary, result.Stats.DurationMs)
			if dryRun {
				fmt.Println("Dry run: no artifacts written")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&ifChanged, "if-changed", false, "skip training if the report is unchanged since the last run")

	return cmd
}
