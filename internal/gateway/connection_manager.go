// Package gateway fans auction events out to WebSocket clients. Events arrive
// over NATS from whichever process mutated the auction and are forwarded to
// every client connected to that auction's room.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// ConnectionConfig holds WebSocket tuning knobs.
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultConnectionConfig returns defaults suitable for browser clients.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  4096,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(*http.Request) bool { return true },
	}
}

// ConnectionManager tracks WebSocket connections per auction room.
type ConnectionManager struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[*Connection]bool

	upgrader    websocket.Upgrader
	config      ConnectionConfig
	broadcastCh chan roomMessage
	logger      zerolog.Logger
}

// Connection is one client's WebSocket session.
type Connection struct {
	ID          string
	UserID      string
	AuctionID   uuid.UUID
	Conn        *websocket.Conn
	Send        chan []byte
	manager     *ConnectionManager
	ConnectedAt time.Time
}

type roomMessage struct {
	auctionID uuid.UUID
	data      []byte
}

// NewConnectionManager creates a connection manager.
func NewConnectionManager(config ConnectionConfig, logger zerolog.Logger) *ConnectionManager {
	return &ConnectionManager{
		rooms: make(map[uuid.UUID]map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		broadcastCh: make(chan roomMessage, 1000),
		logger:      logger.With().Str("component", "gateway").Logger(),
	}
}

// Start drains the broadcast channel until ctx is canceled.
func (cm *ConnectionManager) Start(ctx context.Context) {
	cm.logger.Info().Msg("connection manager started")
	for {
		select {
		case <-ctx.Done():
			cm.logger.Info().Msg("connection manager shutting down")
			return
		case msg := <-cm.broadcastCh:
			cm.deliver(msg)
		}
	}
}

// UpgradeConnection upgrades an HTTP request to a WebSocket session and joins
// it to the auction's room.
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request, userID string, auctionID uuid.UUID) error {
	ws, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("upgrading connection: %w", err)
	}

	conn := &Connection{
		ID:          uuid.New().String(),
		UserID:      userID,
		AuctionID:   auctionID,
		Conn:        ws,
		Send:        make(chan []byte, 256),
		manager:     cm,
		ConnectedAt: time.Now(),
	}
	cm.register(conn)

	go conn.writePump()
	go conn.readPump()

	cm.logger.Info().
		Str("connection_id", conn.ID).
		Str("user_id", userID).
		Str("auction_id", auctionID.String()).
		Msg("WebSocket connection established")
	return nil
}

// BroadcastToAuction queues raw bytes for every client in the room. Drops the
// message if the queue is full.
func (cm *ConnectionManager) BroadcastToAuction(auctionID uuid.UUID, data []byte) {
	select {
	case cm.broadcastCh <- roomMessage{auctionID: auctionID, data: data}:
	default:
		cm.logger.Warn().Str("auction_id", auctionID.String()).Msg("broadcast channel full, dropping message")
	}
}

// ConnectionCount returns the number of clients in the auction's room.
func (cm *ConnectionManager) ConnectionCount(auctionID uuid.UUID) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.rooms[auctionID])
}

func (cm *ConnectionManager) register(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.rooms[conn.AuctionID] == nil {
		cm.rooms[conn.AuctionID] = make(map[*Connection]bool)
	}
	cm.rooms[conn.AuctionID][conn] = true
}

func (cm *ConnectionManager) unregister(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	room, ok := cm.rooms[conn.AuctionID]
	if !ok {
		return
	}
	if _, ok := room[conn]; !ok {
		return
	}
	delete(room, conn)
	close(conn.Send)
	if len(room) == 0 {
		delete(cm.rooms, conn.AuctionID)
	}
	cm.logger.Info().
		Str("connection_id", conn.ID).
		Str("auction_id", conn.AuctionID.String()).
		Msg("connection unregistered")
}

func (cm *ConnectionManager) deliver(msg roomMessage) {
	cm.mu.RLock()
	room := cm.rooms[msg.auctionID]
	targets := make([]*Connection, 0, len(room))
	for conn := range room {
		targets = append(targets, conn)
	}
	cm.mu.RUnlock()

	for _, conn := range targets {
		select {
		case conn.Send <- msg.data:
		default:
			// Slow client; close rather than block the room.
			cm.logger.Warn().
				Str("connection_id", conn.ID).
				Msg("send buffer full, closing connection")
			cm.unregister(conn)
			conn.Conn.Close()
		}
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(c.manager.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.manager.unregister(c)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.manager.config.WriteTimeout))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.manager.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Connection) readPump() {
	defer func() {
		c.manager.unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.manager.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.manager.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.manager.config.ReadTimeout))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.manager.logger.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("unexpected WebSocket close")
			}
			return
		}
		// Clients only listen; inbound frames just refresh the deadline.
		c.Conn.SetReadDeadline(time.Now().Add(c.manager.config.ReadTimeout))
	}
}
