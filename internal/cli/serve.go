package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/shikhar5647/sfiles/internal/server"
	"github.com/shikhar5647/sfiles/pkg/cache"
	"github.com/shikhar5647/sfiles/pkg/pipeline"
	"github.com/shikhar5647/sfiles/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		mongoURI string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP encoding API",
		Long: `Run the HTTP encoding API.

Backends are optional: with --redis the notation cache is shared across
instances, with --mongo encodings can be archived and listed via
/api/records. Without them the server uses the local file cache and
disables archiving.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if addr != "" {
				cfg.Addr = addr
			}
			if redisURL != "" {
				cfg.RedisURL = redisURL
			}
			if mongoURI != "" {
				cfg.MongoURI = mongoURI
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else :8080)")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis address for a shared cache (e.g. localhost:6379)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "mongodb URI for the encoding archive")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg ServerConfig) error {
	backend, err := c.serveCache(ctx, cfg)
	if err != nil {
		return err
	}

	var archive store.Store
	if cfg.MongoURI != "" {
		archive, err = store.NewMongoStore(ctx, store.MongoConfig{URI: cfg.MongoURI})
		if err != nil {
			return fmt.Errorf("connect mongodb: %w", err)
		}
		defer archive.Close(context.Background())
		c.Logger.Info("archive enabled", "uri", cfg.MongoURI)
	}

	runner := pipeline.NewRunner(backend, nil, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.New(runner, archive, c.Logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// serveCache picks the cache backend: redis when configured, the local
// file cache otherwise.
func (c *CLI) serveCache(ctx context.Context, cfg ServerConfig) (cache.Cache, error) {
	if cfg.RedisURL == "" {
		return newCache(false)
	}
	backend, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.RedisURL})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	c.Logger.Info("shared cache enabled", "addr", cfg.RedisURL)
	return backend, nil
}
