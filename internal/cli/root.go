package cli

import (
	"fmt"

	"github.com/runsage/runsage/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	dryRun  bool
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "runsage",
	Short: "Ask questions about your automated test runs",
	Long: `runsage turns a Playwright JSON report into a question-answering model:
it synthesizes question/answer pairs from the test results, trains a
bag-of-words classifier over them and answers free-text questions like
"how many tests failed" or "did test login pass".

Train against a report with 'runsage train', then query with 'runsage ask'
or serve the web form with 'runsage serve'.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "skip all writes (artifacts + Qdrant)")

	rootCmd.AddCommand(newTrainCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// loadConfig resolves, loads and validates the configuration. When no config
// file exists the defaults are enough to train against the public sample
// report, so a missing file is not an error.
func loadConfig() (*config.Config, error) {
	cfgPath := config.FindConfigPath(cfgFile)

	var cfg *config.Config
	if cfgPath == "" {
		cfg = config.Default()
	} else {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		for _, e := range errs {
			fmt.Printf("config error: %v\n", e)
		}
		return nil, fmt.Errorf("invalid configuration")
	}

	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("runsage version %s\n", version)
		},
	}
}
