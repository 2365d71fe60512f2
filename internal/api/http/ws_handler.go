package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"agriconnect-backend/internal/events"
	"agriconnect-backend/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// WebsocketHandler bridges the in-process fan-out hub to browser clients.
// Each connection is subscribed to its account's personal channel; auction
// rooms are joined and left with explicit client messages.
type WebsocketHandler struct {
	hub      *events.Hub
	upgrader websocket.Upgrader
}

func NewWebsocketHandler(hub *events.Hub) *WebsocketHandler {
	return &WebsocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

type roomMessage struct {
	Action    string `json:"action"` // "join" or "leave"
	AuctionID int64  `json:"auction_id"`
}

func (h *WebsocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Websocket upgrade failed", "error", err)
		return
	}

	sub := h.hub.Subscribe(actor.AccountID)
	go h.writeLoop(conn, sub)
	h.readLoop(conn, sub)
}

func (h *WebsocketHandler) readLoop(conn *websocket.Conn, sub *events.Subscriber) {
	defer func() {
		h.hub.Unsubscribe(sub)
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg roomMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("Websocket closed unexpectedly", "subscriber", sub.ID, "error", err)
			}
			return
		}
		switch msg.Action {
		case "join":
			h.hub.JoinRoom(sub, msg.AuctionID)
		case "leave":
			h.hub.LeaveRoom(sub, msg.AuctionID)
		}
	}
}

func (h *WebsocketHandler) writeLoop(conn *websocket.Conn, sub *events.Subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case ev, ok := <-sub.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
