package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Envelope is the wire form every adapter publishes: the payload wrapped with
// routing metadata.
type Envelope struct {
	EventID   uuid.UUID       `json:"event_id"`
	EventType string          `json:"event_type"`
	AuctionID uuid.UUID       `json:"auction_id"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Broadcaster fans out named events to interested listeners. Delivery is
// best-effort: implementations may drop events, and callers never treat a
// broadcast failure as an operation failure.
type Broadcaster interface {
	Broadcast(ctx context.Context, auctionID uuid.UUID, eventType string, payload any) error
}

// NewEnvelope marshals payload and stamps routing metadata.
func NewEnvelope(auctionID uuid.UUID, eventType string, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:   uuid.New(),
		EventType: eventType,
		AuctionID: auctionID,
		Timestamp: time.Now().UTC(),
		Payload:   raw,
	}, nil
}

// Nop discards every event. Used when no fan-out layer is configured.
type Nop struct{}

func (Nop) Broadcast(context.Context, uuid.UUID, string, any) error { return nil }

// Fanout broadcasts to several adapters, returning the first error after
// attempting all of them.
type Fanout []Broadcaster

func (f Fanout) Broadcast(ctx context.Context, auctionID uuid.UUID, eventType string, payload any) error {
	var first error
	for _, b := range f {
		if err := b.Broadcast(ctx, auctionID, eventType, payload); err != nil && first == nil {
			first = err
		}
	}
	return first
}
