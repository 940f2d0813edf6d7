package services

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/bellapacxx/bingo-engine/game"
	"github.com/bellapacxx/bingo-engine/utils/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans session snapshots out to websocket subscribers. Rooms are keyed
// by session identifier; a client belongs to exactly one room.
type Hub struct {
	mu       sync.RWMutex
	registry *game.Registry
	store    *GameStore
	rooms    map[uint64]map[*Client]bool
}

func NewHub(registry *game.Registry, store *GameStore) *Hub {
	return &Hub{
		registry: registry,
		store:    store,
		rooms:    make(map[uint64]map[*Client]bool),
	}
}

// HandleWebSocket upgrades the connection and subscribes it to the session
// in the :id route parameter. The user query parameter identifies the
// participant for mark/bingo actions sent over the socket.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}
	session, err := h.registry.Get(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	userID, err := strconv.ParseInt(c.Query("user"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid user query param"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("websocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		userID:    userID,
		sessionID: sessionID,
		conn:      conn,
		hub:       h,
		send:      make(chan []byte, 32),
	}
	h.addClient(client)
	go client.writePump()
	go client.readPump()

	// Send the current state straight away so the client can render.
	h.sendSnapshot(client, session.Snapshot())
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	room, ok := h.rooms[c.sessionID]
	if !ok {
		room = make(map[*Client]bool)
		h.rooms[c.sessionID] = room
	}
	room[c] = true
	h.mu.Unlock()
	logger.Infof("user %d subscribed to session %d", c.userID, c.sessionID)
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	if room, ok := h.rooms[c.sessionID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, c.sessionID)
		}
	}
	h.mu.Unlock()
	c.Close()
}

// Broadcast pushes a fresh snapshot of the session to every subscriber and
// persists it when it has just finished.
func (h *Hub) Broadcast(sessionID uint64) {
	session, err := h.registry.Get(sessionID)
	if err != nil {
		return
	}
	snap := session.Snapshot()
	if snap.State == game.StateFinished {
		h.store.SaveFinished(snap)
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[sessionID]))
	for c := range h.rooms[sessionID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	payload, _ := json.Marshal(snap)
	for _, c := range clients {
		select {
		case c.send <- payload:
		default:
			logger.Warnf("dropping snapshot for user %d", c.userID)
		}
	}
}

func (h *Hub) sendSnapshot(c *Client, snap game.Snapshot) {
	payload, _ := json.Marshal(snap)
	select {
	case c.send <- payload:
	default:
	}
}

func (h *Hub) handleAction(c *Client, action clientAction) {
	session, err := h.registry.Get(c.sessionID)
	if err != nil {
		c.notify("session no longer exists")
		return
	}

	switch action.Action {
	case "mark":
		if err := session.Mark(c.userID, action.Number); err != nil {
			c.notify(err.Error())
			return
		}
		h.Broadcast(c.sessionID)
	case "bingo":
		res, err := session.CheckWinner(c.userID)
		if err != nil {
			c.notify(err.Error())
			return
		}
		if !res.Won {
			c.notify("no winning pattern yet, keep playing")
			return
		}
		h.Broadcast(c.sessionID)
	default:
		logger.Warnf("user %d sent unknown action %q", c.userID, action.Action)
	}
}
