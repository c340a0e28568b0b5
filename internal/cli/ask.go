package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask one question against the trained model",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			responder, _, closeFn, err := buildResponder(cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			question := strings.Join(args, " ")
			answer, err := responder.Respond(context.Background(), question)
			if err != nil {
				return fmt.Errorf("failed to answer: %w", err)
			}

			fmt.Println(answer)
			return nil
		},
	}
}
