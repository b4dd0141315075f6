package handler

import (
	"net/http"

	"skinconsult-api/internal/delivery/http/middleware"
	"skinconsult-api/internal/delivery/ws"
	"skinconsult-api/pkg/response"
)

type WebSocketHandler struct {
	hub *ws.Hub
}

func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// Connect upgrades the request to a WebSocket session. Auth runs in the
// regular middleware chain before the upgrade.
func (h *WebSocketHandler) Connect(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	ws.Serve(h.hub, userID, w, r)
}
