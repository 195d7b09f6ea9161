package ws

import (
	"time"

	"rps_webapp/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 30 * time.Second
	pingPeriod     = 25 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 64
)

type Client struct {
	SessionID string
	Conn      *websocket.Conn
	Send      chan []byte

	Hub  *Hub
	Room *Room
}

func NewClient(sessionID string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		SessionID: sessionID,
		Conn:      conn,
		Send:      make(chan []byte, sendBuffer),
		Hub:       hub,
	}
}

// Run starts the writer, joins the session room and reads until the
// connection drops.
func (c *Client) Run() {
	go c.writePump()

	c.Send <- []byte(`{"type":"ready"}`)

	c.Room = c.Hub.AssignClient(c)
	if c.Room == nil {
		logger.Warn("ws: no room for session", "session", c.SessionID)
		close(c.Send)
		return
	}

	c.readPump()
}

func (c *Client) readPump() {
	defer c.Hub.OnDisconnect(c)

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("ws read error", "session", c.SessionID, "error", err)
			}
			return
		}
		c.Room.HandleMessage(c, msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("ws write error", "session", c.SessionID, "error", err)
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
