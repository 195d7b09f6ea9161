package ws

import (
	"context"
	"sync"
	"time"

	"rps_webapp/internal/logger"
	"rps_webapp/internal/service"
)

type Hub struct {
	Rooms    map[string]*Room
	mu       sync.Mutex
	sessions *service.SessionService
}

func NewHub(sessions *service.SessionService) *Hub {
	return &Hub{
		Rooms:    make(map[string]*Room),
		sessions: sessions,
	}
}

// AssignClient puts c into the room of its session, creating the room on
// first use. Unknown sessions get no room.
func (h *Hub) AssignClient(c *Client) *Room {
	if _, err := h.sessions.Get(c.SessionID); err != nil {
		return nil
	}

	h.mu.Lock()
	room, ok := h.Rooms[c.SessionID]
	if !ok {
		room = NewRoom(c.SessionID, h.sessions)
		h.Rooms[c.SessionID] = room
		logger.Debug("ws room created", "session", c.SessionID)
	}
	// register under the hub lock so OnDisconnect cannot drop the room in between
	room.register(c)
	h.mu.Unlock()

	return room
}

func (h *Hub) OnDisconnect(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.Rooms[c.SessionID]
	if !ok {
		return
	}
	if room.unregister(c) {
		delete(h.Rooms, c.SessionID)
		logger.Debug("ws room closed", "session", c.SessionID)
	}
}

func (h *Hub) RoomCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.Rooms)
}

func (h *Hub) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.cleanupStaleRooms()
			}
		}
	}()
}

// cleanupStaleRooms closes connections whose session has expired. The read
// pumps then unregister the clients and drop the room.
func (h *Hub) cleanupStaleRooms() {
	h.mu.Lock()
	var stale []*Room
	for id, room := range h.Rooms {
		if !h.sessions.Exists(id) {
			stale = append(stale, room)
		}
	}
	h.mu.Unlock()

	for _, room := range stale {
		room.mu.Lock()
		for c := range room.Clients {
			_ = c.Conn.Close()
		}
		room.mu.Unlock()
		logger.Info("cleaned up stale room", "session", room.ID)
	}
}
