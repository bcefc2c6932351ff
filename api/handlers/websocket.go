package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/dejavas-ai/arena/communication"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

func HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	// Register client
	wsManager := communication.GetWSManager()
	wsManager.Register() <- conn

	// Read until the peer disconnects, then unregister. The read loop also
	// services control frames so close handshakes complete.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	wsManager.Unregister() <- conn
}
