package cli

import (
	"fmt"

	"github.com/runsage/runsage/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}

	cmd.AddCommand(newConfigValidateCmd())
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := config.FindConfigPath(cfgFile)
			if cfgPath == "" {
				fmt.Println("No config file found; built-in defaults apply")
				return nil
			}

			fmt.Printf("Validating config: %s\n", cfgPath)

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			errs := config.Validate(cfg)
			if len(errs) > 0 {
				fmt.Println("\nValidation errors:")
				for _, e := range errs {
					fmt.Printf("  - %v\n", e)
				}
				return fmt.Errorf("configuration is invalid")
			}

			fmt.Println("\nConfiguration is valid!")
			fmt.Printf("  - Report source: %s\n", sourceSummary(cfg))
			fmt.Printf("  - Artifact dir: %s\n", cfg.Artifacts.Dir)
			fmt.Printf("  - Resolver backend: %s\n", cfg.Resolver.Backend)
			if cfg.Resolver.Backend == "semantic" {
				fmt.Printf("  - Qdrant URL: %s\n", cfg.Qdrant.URL)
				fmt.Printf("  - Primary embedding: %s (%s)\n",
					cfg.Embedding.Primary.Provider, cfg.Embedding.Primary.Model)
			}

			return nil
		},
	}
}

func sourceSummary(cfg *config.Config) string {
	switch cfg.Source.Kind {
	case "file":
		return fmt.Sprintf("file %s", cfg.Source.Path)
	case "github":
		return fmt.Sprintf("github %s/%s", cfg.Source.GitHub.Repo, cfg.Source.GitHub.Path)
	default:
		return fmt.Sprintf("http %s", cfg.Source.URL)
	}
}
