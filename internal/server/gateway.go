// Package server exposes the breach engine over websockets. Each client
// attaches to one game as one side; after every action the gateway pushes
// each attached client its own redacted view of the session.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/breachline/breach-server-go/internal/game"
	"github.com/breachline/breach-server-go/internal/game/card"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is the wire envelope in both directions.
type Message struct {
	Type    string          `json:"type"`
	GameID  string          `json:"gameId,omitempty"`
	Side    string          `json:"side,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Archiver receives finished-game summaries. Satisfied by
// repository.Archive; nil disables archiving.
type Archiver interface {
	Save(ctx context.Context, s *game.Summary) error
}

// Client is one websocket connection attached to a game as a side.
type Client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	gameID string
	side   card.Side
}

// Gateway owns the client set and routes messages to the engine.
type Gateway struct {
	engine  *game.BreachEngine
	logger  *zap.Logger
	archive Archiver

	register   chan *Client
	unregister chan *Client
	inbound    chan inboundMessage
	done       chan struct{}

	mu      sync.RWMutex
	clients map[*Client]bool
}

type inboundMessage struct {
	client *Client
	msg    Message
}

// NewGateway wires a gateway over the engine. archive may be nil.
func NewGateway(engine *game.BreachEngine, archive Archiver, logger *zap.Logger) *Gateway {
	return &Gateway{
		engine:     engine,
		logger:     logger,
		archive:    archive,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundMessage, 64),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
	}
}

// Run processes registrations and inbound messages until ctx is cancelled.
func (g *Gateway) Run(ctx context.Context) {
	defer close(g.done)
	for {
		select {
		case <-ctx.Done():
			g.closeAll()
			return

		case client := <-g.register:
			g.mu.Lock()
			g.clients[client] = true
			g.mu.Unlock()
			if g.logger != nil {
				g.logger.Info("client connected", zap.String("client_id", client.id))
			}

		case client := <-g.unregister:
			g.mu.Lock()
			if _, ok := g.clients[client]; ok {
				delete(g.clients, client)
				close(client.send)
			}
			g.mu.Unlock()
			if g.logger != nil {
				g.logger.Info("client disconnected", zap.String("client_id", client.id))
			}

		case in := <-g.inbound:
			g.handleMessage(ctx, in.client, in.msg)
		}
	}
}

func (g *Gateway) closeAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for client := range g.clients {
		close(client.send)
		if client.conn != nil {
			client.conn.Close()
		}
		delete(g.clients, client)
	}
}

// ServeWS upgrades an HTTP request and attaches the connection.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if g.logger != nil {
			g.logger.Warn("websocket upgrade failed", zap.Error(err))
		}
		return
	}

	client := &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, 256),
	}
	select {
	case g.register <- client:
	case <-g.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(g)
}

func (c *Client) readPump(g *Gateway) {
	defer func() {
		select {
		case g.unregister <- c:
		case <-g.done:
		}
		c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			if g.logger != nil {
				g.logger.Warn("bad client message", zap.String("client_id", c.id), zap.Error(err))
			}
			continue
		}
		select {
		case g.inbound <- inboundMessage{client: c, msg: msg}:
		case <-g.done:
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for raw := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			return
		}
	}
}
