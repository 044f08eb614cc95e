package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/events"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/events/natscast"
)

// ConsumerConfig holds NATS subscription settings for the gateway.
type ConsumerConfig struct {
	URL           string
	Subject       string
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultConsumerConfig subscribes to every auction room on a local server.
func DefaultConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		URL:           nats.DefaultURL,
		Subject:       natscast.SubjectPrefix + ".>",
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

// EventConsumer bridges NATS auction events to WebSocket rooms.
type EventConsumer struct {
	cm     *ConnectionManager
	nc     *nats.Conn
	sub    *nats.Subscription
	config ConsumerConfig
	logger zerolog.Logger
}

// NewEventConsumer connects to NATS with reconnect handling.
func NewEventConsumer(cm *ConnectionManager, config ConsumerConfig, logger zerolog.Logger) (*EventConsumer, error) {
	logger = logger.With().Str("component", "gateway-consumer").Logger()

	opts := []nats.Option{
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}
	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &EventConsumer{cm: cm, nc: nc, config: config, logger: logger}, nil
}

// Start subscribes and forwards envelopes until ctx is canceled.
func (ec *EventConsumer) Start(ctx context.Context) error {
	sub, err := ec.nc.Subscribe(ec.config.Subject, ec.handleMessage)
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", ec.config.Subject, err)
	}
	ec.sub = sub

	ec.logger.Info().Str("subject", ec.config.Subject).Msg("event consumer started")
	<-ctx.Done()
	ec.logger.Info().Msg("event consumer shutting down")
	return sub.Unsubscribe()
}

func (ec *EventConsumer) handleMessage(msg *nats.Msg) {
	var env events.Envelope
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		ec.logger.Error().Err(err).Str("subject", msg.Subject).Msg("malformed envelope")
		return
	}

	ec.cm.BroadcastToAuction(env.AuctionID, msg.Data)

	ec.logger.Debug().
		Str("event_id", env.EventID.String()).
		Str("event_type", env.EventType).
		Str("auction_id", env.AuctionID.String()).
		Int("connections", ec.cm.ConnectionCount(env.AuctionID)).
		Msg("event forwarded to room")
}

// Stop closes the NATS connection.
func (ec *EventConsumer) Stop() {
	if ec.nc != nil {
		ec.nc.Close()
	}
}
