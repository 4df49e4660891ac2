package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rpgo/mortgage-calculator/internal/config"
	"github.com/rpgo/mortgage-calculator/internal/logging"
	"github.com/rpgo/mortgage-calculator/internal/server"
	"github.com/rpgo/mortgage-calculator/internal/store"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Long: `serve starts the JSON API. Configuration comes from the environment or a
.env file: PORT, ENV, CORS_ORIGINS, REDIS_ADDR, REDIS_PASSWORD, REDIS_DB,
QUOTE_CACHE_TTL, RATE_LIMIT_PER_MINUTE and RATE_LIMIT_BURST. Without
REDIS_ADDR quotes are cached in memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := logging.Setup(os.Stderr, cfg.Env, verbose)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cache, closeCache := newQuoteCache(ctx, cfg, logger)
			defer closeCache()

			return server.New(cfg, cache, logger).Run(ctx)
		},
	}
}

// newQuoteCache connects to Redis when configured and falls back to the
// in-memory cache when it is not or cannot be reached.
func newQuoteCache(ctx context.Context, cfg *config.ServerConfig, logger zerolog.Logger) (store.QuoteCache, func()) {
	if cfg.RedisAddr == "" {
		logger.Info().Dur("ttl", cfg.QuoteCacheTTL).Msg("Using in-memory quote cache")
		return store.NewMemoryQuoteCache(cfg.QuoteCacheTTL), func() {}
	}

	client := store.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	cache := store.NewRedisQuoteCache(client, cfg.QuoteCacheTTL)
	if err := cache.Ping(ctx); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable, using in-memory quote cache")
		_ = client.Close()
		return store.NewMemoryQuoteCache(cfg.QuoteCacheTTL), func() {}
	}

	logger.Info().Str("addr", cfg.RedisAddr).Int("db", cfg.RedisDB).Msg("Connected to Redis quote cache")
	return cache, func() {
		if err := client.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close Redis client")
		}
	}
}
