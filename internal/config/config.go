package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the full application configuration
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Resolver  ResolverConfig  `yaml:"resolver"`
	Chat      ChatConfig      `yaml:"chat"`
	Server    ServerConfig    `yaml:"server"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Qdrant    QdrantConfig    `yaml:"qdrant"`
}

// SourceConfig describes where the test-results JSON comes from
type SourceConfig struct {
	Kind           string             `yaml:"kind"` // "http", "file" or "github"
	URL            string             `yaml:"url"`
	Path           string             `yaml:"path"`
	GitHub         GitHubSourceConfig `yaml:"github"`
	TimeoutSeconds int                `yaml:"timeout_seconds"`
}

// GitHubSourceConfig fetches the report file through the GitHub contents API
type GitHubSourceConfig struct {
	Repo string `yaml:"repo"` // "owner/name"
	Path string `yaml:"path"` // path to the JSON file within the repo
	Ref  string `yaml:"ref,omitempty"`
}

// ArtifactsConfig contains persistence settings for trained model state
type ArtifactsConfig struct {
	Dir string `yaml:"dir"`
}

// ResolverConfig contains answer-resolver settings
type ResolverConfig struct {
	Backend string  `yaml:"backend"` // "bayes" (default) or "semantic"
	Alpha   float64 `yaml:"alpha"`   // Laplace smoothing for the bayes backend
}

// ChatConfig contains conversational front-end settings
type ChatConfig struct {
	// MinConfidence below which the responder replies "I didn't catch that".
	// Zero disables the fallback and the resolver always answers.
	MinConfidence float64 `yaml:"min_confidence"`
	Timezone      string  `yaml:"timezone"`
}

// ServerConfig contains HTTP front-end settings
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// EmbeddingConfig contains embedding provider settings (semantic backend)
type EmbeddingConfig struct {
	Primary  ProviderConfig `yaml:"primary"`
	Fallback ProviderConfig `yaml:"fallback"`
}

// ProviderConfig contains settings for an embedding provider
type ProviderConfig struct {
	Provider   string `yaml:"provider"` // "gemini" or "openai"
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key"`
	Dimensions int    `yaml:"dimensions"`
}

// QdrantConfig contains Qdrant connection settings (semantic backend)
type QdrantConfig struct {
	URL        string `yaml:"url"`
	APIKey     string `yaml:"api_key"`
	Collection string `yaml:"collection"`
}

// DefaultReportURL keeps `runsage train` working out of the box when no
// config file is present.
const DefaultReportURL = "https://raw.githubusercontent.com/faruklmu17/browser_extension_test/refs/heads/main/tests/test-results.json"

// Load reads and parses config from the given path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandConfigEnvVars(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

// Default returns a configuration with all defaults applied and no file read
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// FindConfigPath looks for config in common locations
func FindConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	paths := []string{
		"runsage.yaml",
		"runsage.yml",
		".github/runsage.yaml",
		".github/runsage.yml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, ".config", "runsage", "config.yaml")
		if _, err := os.Stat(homePath); err == nil {
			return homePath
		}
	}

	return ""
}

// applyDefaults sets default values for unset fields
func applyDefaults(cfg *Config) {
	if cfg.Source.Kind == "" {
		cfg.Source.Kind = "http"
	}
	if cfg.Source.Kind == "http" && cfg.Source.URL == "" {
		cfg.Source.URL = DefaultReportURL
	}
	if cfg.Source.TimeoutSeconds == 0 {
		cfg.Source.TimeoutSeconds = 20
	}
	if cfg.Artifacts.Dir == "" {
		cfg.Artifacts.Dir = "model"
	}
	if cfg.Resolver.Backend == "" {
		cfg.Resolver.Backend = "bayes"
	}
	if cfg.Resolver.Alpha == 0 {
		cfg.Resolver.Alpha = 1.0
	}
	if cfg.Chat.Timezone == "" {
		cfg.Chat.Timezone = "Local"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Embedding.Primary.Dimensions == 0 {
		cfg.Embedding.Primary.Dimensions = 768
	}
	if cfg.Embedding.Fallback.Dimensions == 0 {
		cfg.Embedding.Fallback.Dimensions = 768
	}
	if cfg.Qdrant.Collection == "" {
		cfg.Qdrant.Collection = "runsage_qa"
	}
}
