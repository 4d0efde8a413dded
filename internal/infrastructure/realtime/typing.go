package realtime

import (
	"encoding/json"
	"log/slog"
)

// TypingCoordinator relays the ephemeral typing signals. Nothing is
// persisted and no timeout-based auto-clear is applied: a client that sends
// isTyping and vanishes leaves no reset signal, and a stop typing arriving
// after every viewer left the room lands on an empty target set, which is a
// no-op rather than an error.
type TypingCoordinator struct {
	hub *Hub
	log *slog.Logger
}

// NewTypingCoordinator constructs the coordinator over the hub.
func NewTypingCoordinator(hub *Hub, log *slog.Logger) *TypingCoordinator {
	if log == nil {
		log = slog.Default()
	}
	return &TypingCoordinator{hub: hub, log: log}
}

// Relay fans the typing signal out to every member of the chat room except
// the sender.
func (t *TypingCoordinator) Relay(conn *Connection, event string, data json.RawMessage) {
	var payload TypingPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ChatID == "" {
		t.log.Warn("typing event dropped: chatId not defined",
			"event", event, "connection_id", conn.ID)
		return
	}

	out, err := EncodeFrame(event, data)
	if err != nil {
		t.log.Warn("typing event dropped: encode failed", "event", event, "error", err)
		return
	}
	t.hub.Broadcast(payload.ChatID, out, conn.ID)
}
