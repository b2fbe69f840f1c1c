package handlers

import (
	"net/http"

	"github.com/foundic-app/foundic-backend/internal/ws"
	jwtutil "github.com/foundic-app/foundic-backend/pkg/jwt"
	"github.com/foundic-app/foundic-backend/pkg/logger"
	"github.com/gorilla/websocket"
)

// WSHandler upgrades clients to WebSocket and registers them on the hub so
// notifications and chat messages reach them live.
type WSHandler struct {
	Hub       *ws.Hub
	JWTSecret string
	upgrader  websocket.Upgrader
}

func NewWSHandler(hub *ws.Hub, jwtSecret string) *WSHandler {
	return &WSHandler{
		Hub:       hub,
		JWTSecret: jwtSecret,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin is enforced by the CORS layer; the ws endpoint
			// authenticates with the token instead.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS authenticates the connection from a "token" query parameter
// (browsers cannot set headers on WebSocket dials), registers it on the hub
// and holds it open until the client disconnects.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	claims, err := jwtutil.ValidateToken(token, h.JWTSecret)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to upgrade websocket")
		return
	}

	h.Hub.Register(claims.UserID, conn)
	logger.Log.Infof("WebSocket connected for user %s", claims.UserID)

	// The read loop only drains control frames and detects disconnect; all
	// writes go through the hub.
	go func() {
		defer func() {
			h.Hub.Unregister(claims.UserID, conn)
			logger.Log.Infof("WebSocket disconnected for user %s", claims.UserID)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
