package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/runsage/runsage/internal/artifact"
	"github.com/runsage/runsage/internal/chat"
	"github.com/runsage/runsage/internal/config"
	"github.com/runsage/runsage/internal/semantic"
	"github.com/runsage/runsage/internal/server"
	"github.com/runsage/runsage/internal/vectordb"
	"github.com/runsage/runsage/pkg/models"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the question-answering web form",
		Long: `Load the trained model and serve the browser chat form plus the JSON
API. Serving requires a complete artifact set; run 'runsage train' first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			responder, manifest, closeFn, err := buildResponder(cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.NewServer(responder, manifest, cfg.Server.Addr)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// buildResponder loads the trained model for the configured backend and
// wraps it in the chat layer. The returned close function releases any
// backend connections.
func buildResponder(cfg *config.Config) (*chat.Responder, *models.Manifest, func() error, error) {
	store := artifact.NewStore(cfg.Artifacts.Dir)
	noop := func() error { return nil }

	var (
		res     chat.Resolver
		man     *models.Manifest
		closeFn = noop
	)

	switch cfg.Resolver.Backend {
	case "semantic":
		var err error
		man, err = store.LoadManifest()
		if err != nil {
			return nil, nil, noop, fmt.Errorf("failed to load manifest (run 'runsage train' first): %w", err)
		}

		embedder, err := semantic.NewFallbackProvider(&cfg.Embedding)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("failed to create embedding provider: %w", err)
		}
		vdb, err := vectordb.NewClient(&cfg.Qdrant)
		if err != nil {
			embedder.Close()
			return nil, nil, noop, fmt.Errorf("failed to create vector DB client: %w", err)
		}

		sem := semantic.NewResolver(embedder, vdb, cfg.Qdrant.Collection, cfg.Embedding.Primary.Dimensions)
		res = sem
		closeFn = sem.Close

	default:
		loaded, manifest, err := store.Load()
		if err != nil {
			return nil, nil, noop, err
		}
		res = loaded
		man = manifest
	}

	responder, err := chat.NewResponder(res, man, &cfg.Chat)
	if err != nil {
		closeFn()
		return nil, nil, noop, err
	}

	return responder, man, closeFn, nil
}
