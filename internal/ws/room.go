package ws

import (
	"encoding/json"
	"errors"
	"sync"

	"rps_webapp/internal/game"
	"rps_webapp/internal/logger"
	"rps_webapp/internal/service"
)

// Room groups the live connections of one session. Every state change is
// broadcast to all of them, so several tabs stay in sync.
type Room struct {
	ID      string
	Clients map[*Client]struct{}

	mu       sync.Mutex
	sessions *service.SessionService
}

func NewRoom(sessionID string, sessions *service.SessionService) *Room {
	return &Room{
		ID:       sessionID,
		Clients:  make(map[*Client]struct{}),
		sessions: sessions,
	}
}

func (r *Room) register(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Clients[c] = struct{}{}
	logger.Debug("ws client joined", "session", r.ID, "clients", len(r.Clients))

	view, err := r.sessions.State(r.ID)
	if err != nil {
		r.send(c, errorMessage(err))
		return
	}
	r.send(c, Message{Type: MsgState, Payload: view})
}

// unregister removes c and closes its send channel. It reports whether the
// room is now empty.
func (r *Room) unregister(c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.Clients[c]; ok {
		delete(r.Clients, c)
		close(c.Send)
	}
	logger.Debug("ws client left", "session", r.ID, "clients", len(r.Clients))
	return len(r.Clients) == 0
}

// HandleMessage applies one client event to the session. Events of a room
// are handled one at a time.
func (r *Room) HandleMessage(c *Client, raw []byte) {
	var msg Inbound
	if err := json.Unmarshal(raw, &msg); err != nil {
		r.mu.Lock()
		r.send(c, Message{Type: MsgError, Payload: ErrorPayload{Message: "malformed message"}})
		r.mu.Unlock()
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch msg.Type {
	case MsgPick:
		move, err := game.ParseMove(msg.Value)
		if err != nil {
			r.send(c, errorMessage(err))
			return
		}
		view, resolved, err := r.sessions.Pick(r.ID, move)
		if err != nil {
			r.send(c, errorMessage(err))
			return
		}
		if resolved {
			r.broadcast(Message{Type: MsgResult, Payload: view})
		} else {
			r.send(c, Message{Type: MsgState, Payload: view})
		}

	case MsgRestart:
		view, err := r.sessions.Restart(r.ID)
		if err != nil {
			r.send(c, errorMessage(err))
			return
		}
		r.broadcast(Message{Type: MsgState, Payload: view})

	case MsgState:
		view, err := r.sessions.State(r.ID)
		if err != nil {
			r.send(c, errorMessage(err))
			return
		}
		r.send(c, Message{Type: MsgState, Payload: view})

	case MsgPing:
		r.send(c, Message{Type: MsgPong})

	default:
		r.send(c, Message{Type: MsgError, Payload: ErrorPayload{Message: "unknown message type"}})
	}
}

// send must be called with r.mu held.
func (r *Room) send(c *Client, msg Message) {
	if _, ok := r.Clients[c]; !ok {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error("ws marshal error", "session", r.ID, "error", err)
		return
	}

	select {
	case c.Send <- data:
	default:
		logger.Warn("ws send buffer full, dropping message", "session", r.ID, "type", msg.Type)
	}
}

// broadcast must be called with r.mu held.
func (r *Room) broadcast(msg Message) {
	for c := range r.Clients {
		r.send(c, msg)
	}
}

func errorMessage(err error) Message {
	text := "internal error"
	switch {
	case errors.Is(err, game.ErrInvalidMove):
		text = "invalid move"
	case errors.Is(err, service.ErrSessionNotFound):
		text = "session not found"
	}
	return Message{Type: MsgError, Payload: ErrorPayload{Message: text}}
}
