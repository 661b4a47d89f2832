package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"campus-board/domain"
	"campus-board/domain/event"
	apperrors "campus-board/errors"
	"campus-board/sink"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum frame size allowed from peer.
	maxMessageSize = 4096

	// Outbound events buffered per session before drops kick in.
	sessionBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// clientEnvelope is what the browser sends over the socket.
type clientEnvelope struct {
	Type    string `json:"type"` // join_room | send_message
	Scope   string `json:"scope,omitempty"`
	Target  string `json:"target,omitempty"`
	Content string `json:"content,omitempty"`
}

// serverEnvelope is what the browser receives.
type serverEnvelope struct {
	Type    string          `json:"type"` // receive_message | error
	Message *domain.Message `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Client is one live WebSocket session. Its subscription state lives entirely
// in the registry, keyed by sessionID.
type Client struct {
	server    *Server
	conn      *websocket.Conn
	sink      *sink.SessionSink
	sessionID string
	user      domain.User

	// errs carries send failures back to this client only.
	errs chan string
}

// handleWebSocket upgrades the connection and starts the session pumps.
// Authentication already happened in the middleware.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	user := callerFrom(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		server:    s,
		conn:      conn,
		sink:      sink.NewSessionSink(sessionBufferSize),
		sessionID: uuid.NewString(),
		user:      user,
		errs:      make(chan string, 8),
	}
	s.log.Info("session connected", "session_id", client.sessionID, "username", user.Username)

	go client.writePump()
	go client.readPump()
}

// readPump pumps envelopes from the socket into the chat service.
func (c *Client) readPump() {
	defer func() {
		// Disconnect is idempotent and covers the never-joined case.
		c.server.chatService.Disconnect(c.sessionID)
		c.conn.Close()
		c.server.log.Info("session closed", "session_id", c.sessionID)
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	joined := false
	var room domain.Room

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.server.log.Warn("websocket read failed", "session_id", c.sessionID, "error", err)
			}
			return
		}

		var env clientEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.pushError("invalid message format")
			continue
		}

		switch env.Type {
		case "join_room":
			newRoom, err := c.parseRoom(env)
			if err != nil {
				c.pushError(err.Error())
				continue
			}
			// Join moves the session atomically out of any previous room.
			c.server.chatService.JoinRoom(c.sessionID, newRoom, c.sink)
			room, joined = newRoom, true

		case "send_message":
			if !joined {
				c.pushError("join a room first")
				continue
			}
			sender := domain.Sender{ID: c.user.ID, Name: c.user.FullName}
			_, err := c.server.chatService.PostMessage(context.Background(), sender, room, env.Content)
			if err != nil {
				// Explicit "not sent": nothing was stored, nobody saw it.
				c.pushError(err.Error())
			}

		default:
			c.pushError("unknown message type")
		}
	}
}

func (c *Client) parseRoom(env clientEnvelope) (domain.Room, error) {
	scope, err := domain.ParseScope(env.Scope)
	if err != nil {
		return domain.Room{}, err
	}
	room, err := domain.NewRoom(scope, env.Target)
	if err != nil {
		return domain.Room{}, err
	}
	if !c.user.CanAccess(room) {
		return domain.Room{}, apperrors.ErrForbidden
	}
	return room, nil
}

// pushError queues an error envelope for this session only. Non-blocking.
func (c *Client) pushError(message string) {
	select {
	case c.errs <- message:
	default:
	}
}

// writePump serializes all outbound traffic for the session: broadcast events
// from the sink, error envelopes, and keepalive pings. Being the sink
// channel's only consumer preserves per-subscriber delivery order.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case e := <-c.sink.Events:
			broadcast, ok := e.(event.MessageBroadcast)
			if !ok {
				continue
			}
			if err := c.writeEnvelope(serverEnvelope{Type: "receive_message", Message: &broadcast.Message}); err != nil {
				return
			}
		case msg := <-c.errs:
			if err := c.writeEnvelope(serverEnvelope{Type: "error", Error: msg}); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) writeEnvelope(env serverEnvelope) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(env)
}
