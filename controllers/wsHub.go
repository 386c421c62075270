package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"go-meal-delivery/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// Message is the envelope pushed over websocket connections.
type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// WsHub keeps the open websocket connections per recipient id so
// notifications can be pushed to whoever is online. Push is best
// effort: a dead connection is dropped, never reported to the caller.
type WsHub struct {
	mu      sync.Mutex
	clients map[string][]*websocket.Conn
}

func NewWsHub() *WsHub {
	return &WsHub{clients: make(map[string][]*websocket.Conn)}
}

// HandleWebSocket upgrades the request and registers the connection
// under the caller's uid until it closes.
func (h *WsHub) HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Query("uid")
		if uid == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "uid is required"})
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			fmt.Println("Error during connection upgrade:", err)
			return
		}
		defer conn.Close()

		h.register(uid, conn)
		defer h.unregister(uid, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}

// Push sends the notification to every open connection of the recipient.
func (h *WsHub) Push(recipientId string, n models.Notification) {
	message := Message{
		Event:   "notification",
		Payload: n,
	}
	messageBytes, err := json.Marshal(message)
	if err != nil {
		fmt.Println("Error marshaling message:", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	alive := h.clients[recipientId][:0]
	for _, conn := range h.clients[recipientId] {
		if err := conn.WriteMessage(websocket.TextMessage, messageBytes); err != nil {
			fmt.Println("Error writing message:", err)
			conn.Close()
			continue
		}
		alive = append(alive, conn)
	}
	if len(alive) == 0 {
		delete(h.clients, recipientId)
	} else {
		h.clients[recipientId] = alive
	}
}

func (h *WsHub) register(uid string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[uid] = append(h.clients[uid], conn)
}

func (h *WsHub) unregister(uid string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.clients[uid]
	for i, cc := range conns {
		if cc == conn {
			h.clients[uid] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.clients[uid]) == 0 {
		delete(h.clients, uid)
	}
}
