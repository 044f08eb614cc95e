package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/events"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/events/natscast"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/gateway"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if getEnv("LOG_PRETTY", "") != "" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := godotenv.Load(); err != nil {
		logger.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		logger.Warn().Err(err).Msg("no config file, using defaults")
		cfg = defaultConfig()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, cleanup, err := setupStore(ctx, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up store")
	}
	defer cleanup()

	var broadcaster events.Broadcaster = events.Nop{}
	if cfg.NATS.Enabled {
		pub, err := natscast.NewPublisher(natscast.Config{
			URL:           cfg.NATS.URL,
			MaxReconnects: -1,
			ReconnectWait: 2 * time.Second,
		}, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to NATS")
		}
		defer pub.Close()
		broadcaster = pub
	}

	var cm *gateway.ConnectionManager
	if cfg.Gateway.Enabled {
		cm = gateway.NewConnectionManager(gateway.DefaultConnectionConfig(), logger)
		go cm.Start(ctx)

		if cfg.NATS.Enabled {
			consumerCfg := gateway.DefaultConsumerConfig()
			consumerCfg.URL = cfg.NATS.URL
			consumer, err := gateway.NewEventConsumer(cm, consumerCfg, logger)
			if err != nil {
				logger.Fatal().Err(err).Msg("failed to start event consumer")
			}
			defer consumer.Stop()
			go func() {
				if err := consumer.Start(ctx); err != nil {
					logger.Error().Err(err).Msg("event consumer stopped")
				}
			}()
		}
	}

	services := newServices(st, broadcaster, cm, clockwork.NewRealClock(), logger)
	server := setupServer(cfg, services)

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("auction engine listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
