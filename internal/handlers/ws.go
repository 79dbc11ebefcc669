package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/collabsphere/collabsphere/internal/types"
	"github.com/collabsphere/collabsphere/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	userClients   = make(map[uint]map[*websocket.Conn]bool)
	userClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type wsNotification struct {
	Type         string               `json:"type"`
	Notification NotificationResponse `json:"notification"`
}

// BroadcastNotification pushes a freshly created notification to every
// open socket of the target user. Delivery is best effort; the row is
// already persisted and shows up on the next poll either way.
func BroadcastNotification(userID uint, notification NotificationResponse) {
	userClientsMu.RLock()
	clients, exists := userClients[userID]
	if !exists || len(clients) == 0 {
		userClientsMu.RUnlock()
		return
	}

	// Copy the connections so the lock is not held while writing.
	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	userClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(wsNotification{
			Type:         "notification",
			Notification: notification,
		})

		if err != nil {
			log.Printf("Failed to broadcast notification to client: %v", err)
			removeClient(userID, conn)
			conn.Close()
		}
	}
}

func removeClient(userID uint, conn *websocket.Conn) {
	userClientsMu.Lock()
	if clients, exists := userClients[userID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(userClients, userID)
		}
	}
	userClientsMu.Unlock()
}

// NotificationSocket upgrades the connection and keeps it registered
// under the authenticated user until the peer goes away.
func NotificationSocket(c *gin.Context) {
	currentUser, err := utils.GetCurrentUser(c)

	if err != nil {
		c.JSON(401, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	userClientsMu.Lock()
	if userClients[currentUser.ID] == nil {
		userClients[currentUser.ID] = make(map[*websocket.Conn]bool)
	}
	userClients[currentUser.ID][conn] = true
	userClientsMu.Unlock()

	defer func() {
		removeClient(currentUser.ID, conn)
		conn.Close()
	}()

	done := make(chan struct{})

	// Ping loop keeps intermediaries from timing the connection out.
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	// The client never sends application messages; the read loop exists
	// to process pongs and notice the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			close(done)
			return
		}
	}
}
