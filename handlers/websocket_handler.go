package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/icedout/league-system/league"
	"github.com/icedout/league-system/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: сузить до доменов фронтенда перед выкаткой наружу.
		return true
	},
}

type WebSocketHandler struct {
	hub    *league.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *league.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		logger: logger,
	}
}

// ServeTier подключает клиента к комнате анонсов дивизиона:
// /ws/tiers/{tier}.
func (h *WebSocketHandler) ServeTier(w http.ResponseWriter, r *http.Request) {
	tier := models.Tier(chi.URLParam(r, "tier"))
	if !tier.Valid() {
		http.Error(w, "Unknown tier", http.StatusBadRequest)
		return
	}
	h.serve(w, r, league.TierRoom(tier))
}

// ServeUser подключает клиента к его личной комнате уведомлений:
// /ws/users/{userID}.
func (h *WebSocketHandler) ServeUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	h.serve(w, r, league.UserRoom(userID))
}

func (h *WebSocketHandler) serve(w http.ResponseWriter, r *http.Request, roomID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту HTTP-ошибкой.
		h.logger.Error("failed to upgrade websocket connection",
			slog.String("room", roomID),
			slog.Any("error", err))
		return
	}

	client := &league.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: roomID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	h.logger.Info("websocket client registered", slog.String("room", roomID))
}
