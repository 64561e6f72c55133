package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"horse.fit/pulse/internal/aggregate"
	"horse.fit/pulse/internal/store"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// dataUpdate is the message pushed to every websocket client when a new
// snapshot is published.
type dataUpdate struct {
	Event      string                    `json:"event"`
	PostCount  int                       `json:"post_count"`
	FetchedAt  time.Time                 `json:"fetched_at"`
	Sentiments aggregate.SentimentTotals `json:"sentiments"`
}

type hub struct {
	clients    map[*wsClient]struct{}
	register   chan *wsClient
	unregister chan *wsClient
	logger     zerolog.Logger
}

type wsClient struct {
	hub  *hub
	conn *websocket.Conn
	send chan []byte
}

func newHub(logger zerolog.Logger) *hub {
	return &hub{
		clients:    make(map[*wsClient]struct{}),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		logger:     logger.With().Str("component", "ws").Logger(),
	}
}

// run fans snapshot replacements out to connected clients until the
// context is done.
func (h *hub) run(ctx context.Context, snapshots <-chan *store.Snapshot) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.logger.Debug().Int("clients", len(h.clients)).Msg("websocket client connected")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.logger.Debug().Int("clients", len(h.clients)).Msg("websocket client disconnected")
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			payload, err := json.Marshal(dataUpdate{
				Event:      "data_update",
				PostCount:  len(snap.Posts),
				FetchedAt:  snap.FetchedAt,
				Sentiments: aggregate.Sentiments(snap.Posts),
			})
			if err != nil {
				h.logger.Error().Err(err).Msg("encode data_update failed")
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

func (s *Server) handleWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &wsClient{hub: s.hub, conn: conn, send: make(chan []byte, 8)}
	s.hub.register <- client

	go client.writePump()
	go client.readPump()
	return nil
}

// readPump discards inbound messages; its job is to notice the close
// handshake and pong replies.
func (c *wsClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
