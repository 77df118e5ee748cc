package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"vitacoin.app/rewardsplatform/internal/realtime"
	"vitacoin.app/rewardsplatform/internal/service"
)

type WSHandler struct {
	hub                *realtime.Hub
	leaderboardService service.LeaderboardService
	leaderboardSize    int
	upgrader           websocket.Upgrader
}

func NewWSHandler(hub *realtime.Hub, leaderboardService service.LeaderboardService, leaderboardSize int) *WSHandler {
	if leaderboardSize <= 0 {
		leaderboardSize = service.DefaultLeaderboardSize
	}
	return &WSHandler{
		hub:                hub,
		leaderboardService: leaderboardService,
		leaderboardSize:    leaderboardSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for now
			},
		},
	}
}

// HandleWebSocket upgrades the request and parks the connection in the hub.
// The read loop exists only to detect disconnects; clients never send
// meaningful frames.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket: %v", err)
		return
	}

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID, conn)

	// Seed the fresh connection with the current ranking.
	if entries, err := h.leaderboardService.GetLeaderboard(c.Request.Context(), h.leaderboardSize); err == nil {
		h.hub.SendToUser(userID, realtime.NewLeaderboardUpdate(entries))
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
