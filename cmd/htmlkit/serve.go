package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vango-dev/htmlkit/internal/cache"
	"github.com/vango-dev/htmlkit/internal/config"
	"github.com/vango-dev/htmlkit/internal/logging"
	"github.com/vango-dev/htmlkit/pkg/server"
)

// memoryCacheEntries bounds the in-process render cache.
const memoryCacheEntries = 1024

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the fragment server",
		Long: `Serve rendering over HTTP, WebSocket and Server-Sent Events.

Configuration is read from htmlkit.json (or --config), then .env and
HTMLKIT_* environment variables. Rendered documents are cached in
memory, or in Redis when redis.addr is set.

Examples:
  htmlkit serve
  htmlkit serve --addr 127.0.0.1:9090
  HTMLKIT_REDIS_ADDR=localhost:6379 htmlkit serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Address = addr
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var c cache.Cache = cache.NewMemory(memoryCacheEntries)
			if cfg.UseRedis() {
				r, err := cache.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
				if err != nil {
					return err
				}
				defer r.Close()
				c = r
				logger.Info("using redis cache", zap.String("addr", cfg.Redis.Addr))
			}

			srv := server.New(server.ConfigFrom(cfg),
				server.WithLogger(logger),
				server.WithCache(c),
				server.WithRegistry(prometheus.DefaultRegisterer),
			)
			success(cmd, "Serving on %s", cfg.Server.Address)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to htmlkit.json")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from htmlkit.json)")

	return cmd
}
