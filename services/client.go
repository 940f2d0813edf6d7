package services

import (
	"encoding/json"
	"sync"

	"github.com/bellapacxx/bingo-engine/utils/logger"
	"github.com/gorilla/websocket"
)

// Client is one websocket subscriber to a session feed.
type Client struct {
	userID    int64
	sessionID uint64
	conn      *websocket.Conn
	hub       *Hub
	send      chan []byte
	once      sync.Once
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

type clientAction struct {
	Action string `json:"action"`
	Number int    `json:"number"`
}

func (c *Client) readPump() {
	defer func() {
		c.hub.removeClient(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("client %d disconnected", c.userID)
			} else {
				logger.Errorf("client %d read error: %v", c.userID, err)
			}
			return
		}

		var action clientAction
		if err := json.Unmarshal(message, &action); err != nil {
			logger.Warnf("client %d sent invalid message: %v", c.userID, err)
			continue
		}
		c.hub.handleAction(c, action)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Errorf("client %d write error: %v", c.userID, err)
			return
		}
	}
}

func (c *Client) notify(message string) {
	payload, _ := json.Marshal(map[string]string{
		"type":    "notification",
		"message": message,
	})
	select {
	case c.send <- payload:
	default:
		logger.Warnf("dropping notification to user %d", c.userID)
	}
}
