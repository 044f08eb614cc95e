// Package natscast publishes broadcast envelopes to NATS so gateway
// processes can fan them out to connected clients.
package natscast

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/events"
)

// SubjectPrefix is the root of every auction event subject. The full subject
// is "<prefix>.<auctionId>.<eventType>" so a gateway can subscribe to one
// room or to everything with "<prefix>.>".
const SubjectPrefix = "auction.events"

// Config holds NATS connection settings for the publisher.
type Config struct {
	URL           string
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultConfig returns settings suitable for a local NATS server.
func DefaultConfig() Config {
	return Config{
		URL:           nats.DefaultURL,
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

// Publisher is an events.Broadcaster backed by a NATS connection.
type Publisher struct {
	nc     *nats.Conn
	logger zerolog.Logger
}

// NewPublisher connects to NATS with reconnect handling and returns a
// publisher. Close releases the connection.
func NewPublisher(cfg Config, logger zerolog.Logger) (*Publisher, error) {
	logger = logger.With().Str("component", "natscast").Logger()

	opts := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			logger.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &Publisher{nc: nc, logger: logger}, nil
}

// Broadcast wraps the payload in an envelope and publishes it. Errors are
// returned so callers can log them, but broadcast failures never fail the
// originating operation.
func (p *Publisher) Broadcast(_ context.Context, auctionID uuid.UUID, eventType string, payload any) error {
	env, err := events.NewEnvelope(auctionID, eventType, payload)
	if err != nil {
		return fmt.Errorf("building envelope: %w", err)
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshaling envelope: %w", err)
	}

	subject := fmt.Sprintf("%s.%s.%s", SubjectPrefix, auctionID, eventType)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}

	p.logger.Debug().
		Str("subject", subject).
		Str("event_id", env.EventID.String()).
		Msg("event published")
	return nil
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
