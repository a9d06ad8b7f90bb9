package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/josuesanchez96/umessenger/internal/app"
	"github.com/josuesanchez96/umessenger/internal/config"
	"github.com/josuesanchez96/umessenger/internal/log"
)

func main() {
	var (
		configPath string
		addr       string
		redisAddr  string
		storeKind  string
		logLevel   string
	)

	rootCmd := &cobra.Command{
		Use:          "umessenger",
		Short:        "Real-time two-party messaging relay",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := log.New(logLevel)

			cfg, path, err := config.Load(logger, configPath)
			if err != nil {
				return err
			}
			logger.Info().Str("path", path).Msg("config loaded")

			// Flags set explicitly override config file and env values.
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("redis-addr") {
				cfg.RedisAddr = redisAddr
			}
			if cmd.Flags().Changed("store") {
				cfg.Store = storeKind
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			logger = log.New(cfg.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.New(ctx, cfg, logger)
			if err != nil {
				return err
			}

			if err := application.Run(ctx); err != nil {
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	defaults := config.Default()
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.Flags().StringVar(&addr, "addr", defaults.Addr, "HTTP listen address")
	rootCmd.Flags().StringVar(&redisAddr, "redis-addr", defaults.RedisAddr, "Redis server address")
	rootCmd.Flags().StringVar(&storeKind, "store", defaults.Store, "store backend (redis or memory)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", defaults.LogLevel, "log level (debug, info, warn, error)")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
