package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for errors
func Validate(cfg *Config) []error {
	var errs []error

	switch cfg.Source.Kind {
	case "http":
		if cfg.Source.URL == "" {
			errs = append(errs, ValidationError{"source.url", "required for http source"})
		}
	case "file":
		if cfg.Source.Path == "" {
			errs = append(errs, ValidationError{"source.path", "required for file source"})
		}
	case "github":
		if cfg.Source.GitHub.Repo == "" {
			errs = append(errs, ValidationError{"source.github.repo", "required for github source"})
		} else if !strings.Contains(cfg.Source.GitHub.Repo, "/") {
			errs = append(errs, ValidationError{"source.github.repo", "must be in format 'owner/name'"})
		}
		if cfg.Source.GitHub.Path == "" {
			errs = append(errs, ValidationError{"source.github.path", "required for github source"})
		}
	default:
		errs = append(errs, ValidationError{"source.kind", "must be 'http', 'file' or 'github'"})
	}

	if cfg.Source.TimeoutSeconds < 0 {
		errs = append(errs, ValidationError{"source.timeout_seconds", "must not be negative"})
	}

	if cfg.Artifacts.Dir == "" {
		errs = append(errs, ValidationError{"artifacts.dir", "required"})
	}

	switch cfg.Resolver.Backend {
	case "bayes":
		if cfg.Resolver.Alpha <= 0 {
			errs = append(errs, ValidationError{"resolver.alpha", "must be greater than 0"})
		}
	case "semantic":
		if cfg.Embedding.Primary.Provider == "" {
			errs = append(errs, ValidationError{"embedding.primary.provider", "required for semantic backend"})
		} else if cfg.Embedding.Primary.Provider != "gemini" && cfg.Embedding.Primary.Provider != "openai" {
			errs = append(errs, ValidationError{"embedding.primary.provider", "must be 'gemini' or 'openai'"})
		}
		if cfg.Embedding.Primary.APIKey == "" {
			errs = append(errs, ValidationError{"embedding.primary.api_key", "required for semantic backend"})
		}
		if cfg.Qdrant.URL == "" {
			errs = append(errs, ValidationError{"qdrant.url", "required for semantic backend"})
		}
	default:
		errs = append(errs, ValidationError{"resolver.backend", "must be 'bayes' or 'semantic'"})
	}

	if cfg.Chat.MinConfidence < 0 || cfg.Chat.MinConfidence > 1 {
		errs = append(errs, ValidationError{"chat.min_confidence", "must be between 0 and 1"})
	}

	if cfg.Chat.Timezone != "" && cfg.Chat.Timezone != "Local" {
		if _, err := time.LoadLocation(cfg.Chat.Timezone); err != nil {
			errs = append(errs, ValidationError{"chat.timezone", "unknown timezone"})
		}
	}

	if cfg.Server.Addr == "" {
		errs = append(errs, ValidationError{"server.addr", "required"})
	}

	return errs
}
