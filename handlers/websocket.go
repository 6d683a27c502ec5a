package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"rent-server/auth"
	"rent-server/services"
	"rent-server/ws"
)

// WebSocket message envelopes
type incomingMessage struct {
	Type string `json:"type"` // refresh | heartbeat
}

// WSHandler groups dependencies for the dashboard alert feed.
type WSHandler struct {
	mgr       *ws.Manager
	auth      *auth.Service
	processor *services.AlertProcessor
}

func NewWSHandler(mgr *ws.Manager, svc *auth.Service, processor *services.AlertProcessor) *WSHandler {
	return &WSHandler{mgr: mgr, auth: svc, processor: processor}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleDashboardWS upgrades to websocket and streams the caller's alerts.
// GET /ws?token=<session token>
func (h *WSHandler) HandleDashboardWS(c *gin.Context) {
	userID := h.auth.Identity(auth.TokenFrom(c))
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade failed")
		return
	}
	log := logrus.WithField("user_id", userID)
	h.mgr.Register(userID, conn)
	log.Info("dashboard connected")

	defer func() {
		h.mgr.Unregister(userID, conn)
		log.Info("dashboard disconnected")
	}()

	// the current list goes out right away
	h.processor.Push(c.Request.Context(), userID)

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("dashboard closed connection")
			} else {
				log.WithError(err).Debug("websocket read error")
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		var base incomingMessage
		if err := json.Unmarshal(message, &base); err != nil {
			log.WithError(err).Debug("invalid json on websocket")
			continue
		}

		switch base.Type {
		case "refresh":
			h.processor.Push(c.Request.Context(), userID)
		case "heartbeat":
			// No-op
		default:
			log.WithField("type", base.Type).Debug("unknown websocket message type")
		}
	}
}

// GetConnection handles GET /api/v1/dashboard/live
func (h *WSHandler) GetConnection(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"connected": h.mgr.IsConnected(auth.UserID(c))})
}
