package league

import (
	"context"
	"fmt"

	"github.com/icedout/league-system/models"
)

// TierRoom — имя комнаты анонсов дивизиона.
func TierRoom(tier models.Tier) string {
	return "tier_" + string(tier)
}

// UserRoom — имя комнаты личных уведомлений игрока.
func UserRoom(userID int64) string {
	return fmt.Sprintf("user_%d", userID)
}

// HubNotifier доставляет уведомления и анонсы через websocket-хаб.
// Реализует интерфейсы Notifier и Announcer сервисного слоя.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyUser(_ context.Context, userID int64, text string) error {
	return n.hub.BroadcastToRoom(UserRoom(userID), WebSocketMessage{
		Type:    "BACKUP_REQUIRED",
		Payload: text,
		RoomID:  UserRoom(userID),
	})
}

func (n *HubNotifier) AnnounceToTier(_ context.Context, tier models.Tier, text string) error {
	return n.hub.BroadcastToRoom(TierRoom(tier), WebSocketMessage{
		Type:    "MATCH_ANNOUNCED",
		Payload: text,
		RoomID:  TierRoom(tier),
	})
}
