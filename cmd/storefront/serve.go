package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	storefront "github.com/asianjeff44490-crypto/discord-bot"
	"github.com/asianjeff44490-crypto/discord-bot/internal/config"
	"github.com/asianjeff44490-crypto/discord-bot/internal/logging"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/adapters/discord"
	httpAdapter "github.com/asianjeff44490-crypto/discord-bot/pkg/adapters/http"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/adapters/memory"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/adapters/redis"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/catalog"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/observability"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/ticket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to Discord and serve the shop",
	Long: `Connects to the Discord gateway, registers the slash commands and answers
interactions until interrupted. A keep-alive HTTP server exposes /, /healthz and /metrics.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.FromConfig(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	logger.Debug("Configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot, err := discord.New(cfg.Token, cfg.ClientID,
		discord.WithGuild(cfg.GuildID),
		discord.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)

	opts, cleanup, err := appOptions(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()
	opts = append(opts, storefront.WithLifecycleHooks(metrics.Hooks(logger)))

	app, err := storefront.New(bot, opts...)
	if err != nil {
		return err
	}
	logger.Info("Catalog ready", "products", app.Catalog.Len())

	handler := httpAdapter.NewHandler(
		httpAdapter.WithGatherer(reg),
		httpAdapter.WithReady(bot.Ready),
		httpAdapter.WithLogger(logger),
	)
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- httpAdapter.Serve(ctx, cfg.KeepAliveAddr, handler, logger)
	}()

	if err := bot.Start(ctx, app); err != nil {
		return err
	}
	defer func() {
		if err := bot.Close(); err != nil {
			logger.Warn("Failed to close gateway", "err", err)
		}
	}()

	if err := bot.RegisterCommands(ctx, app.Commands()); err != nil {
		// The bot still answers commands registered by an earlier run.
		logger.Error("Failed to register commands", "err", err)
	}

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("keep-alive server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutting down...")
	}
	stop()
	return <-serverErrors
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("catalog") {
		cfg.CatalogFile, _ = cmd.Flags().GetString("catalog")
	}
	if cmd.Flags().Changed("addr") {
		cfg.KeepAliveAddr, _ = cmd.Flags().GetString("addr")
	}
	return cfg, nil
}

// appOptions turns the configuration into storefront options. cleanup
// releases any connections opened along the way.
func appOptions(cfg config.Config, logger *slog.Logger) ([]storefront.Option, func(), error) {
	opts := []storefront.Option{
		storefront.WithLogger(logger),
		storefront.WithTicketOptions(
			ticket.WithCategory(cfg.TicketCategory),
			ticket.WithPrefix(cfg.TicketPrefix),
			ticket.WithTimeout(cfg.ProvisionTimeout),
			ticket.WithRateLimit(cfg.ChannelCreateRate, 1),
		),
	}
	cleanup := func() {}

	if cfg.CatalogFile != "" {
		c, err := catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			return nil, cleanup, err
		}
		opts = append(opts, storefront.WithCatalog(c))
	}

	switch {
	case cfg.UseRedis():
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redis.WithTTL(cfg.SelectionTTL))
		if err := store.Client().Ping(context.Background()).Err(); err != nil {
			_ = store.Close()
			return nil, cleanup, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		opts = append(opts,
			storefront.WithSelectionStore(store),
			storefront.WithLocker(redis.NewLocker(store.Client(), "storefront:")),
		)
		cleanup = func() {
			if err := store.Close(); err != nil {
				logger.Warn("Failed to close redis client", "err", err)
			}
		}
		logger.Info("Using redis for selections", "addr", cfg.RedisAddr)
	case cfg.SelectionTTL > 0:
		opts = append(opts, storefront.WithSelectionStore(memory.NewStore(memory.WithTTL(cfg.SelectionTTL))))
	}
	return opts, cleanup, nil
}
