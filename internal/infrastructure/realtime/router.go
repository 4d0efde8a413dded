package realtime

import (
	"encoding/json"
	"log/slog"
)

// IdentityVerifier is the identity collaborator consulted before a setup
// event is trusted. Verify returns the user id the token was issued for.
type IdentityVerifier interface {
	Verify(token string) (string, error)
}

// Router validates tagged events, computes their target sets and fans them
// out through the Hub. Per connection it enforces the unidentified ->
// identified progression: only setup is accepted before the connection has
// been identified.
//
// Delivery is best-effort, at most once per connection, and a failure toward
// one target never aborts delivery to the rest. Routing failures are never
// reported to the client; error frames are reserved for protocol violations.
type Router struct {
	hub      *Hub
	typing   *TypingCoordinator
	verifier IdentityVerifier
	log      *slog.Logger
}

// NewRouter constructs a Router over the hub. A nil logger falls back to the
// process default.
func NewRouter(hub *Hub, verifier IdentityVerifier, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{
		hub:      hub,
		typing:   NewTypingCoordinator(hub, log),
		verifier: verifier,
		log:      log,
	}
}

// Dispatch routes one inbound frame from the connection.
func (r *Router) Dispatch(conn *Connection, frame Frame) {
	switch frame.Event {
	case EventSetup:
		r.handleSetup(conn, frame.Data)
	case EventJoinChat:
		r.handleJoinChat(conn, frame.Data)
	case EventIsTyping, EventStopTyping:
		r.typing.Relay(conn, frame.Event, frame.Data)
	case EventNewMessage:
		r.handleNewMessage(conn, frame.Data)
	case EventGroupRename:
		r.handleGroupMutation(conn, EventGroupRename, frame.Data)
	case EventGroupRemove:
		r.handleGroupRemove(conn, frame.Data)
	case EventGroupAdd:
		r.handleGroupAdd(conn, frame.Data)
	default:
		r.replyError(conn, "unsupported_event", "unknown event name")
	}
}

func (r *Router) handleSetup(conn *Connection, data json.RawMessage) {
	var payload SetupPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ID == "" {
		r.replyError(conn, "bad_request", "setup requires an id")
		return
	}

	userID := payload.ID
	if r.verifier != nil {
		verified, err := r.verifier.Verify(payload.Token)
		if err != nil {
			r.log.Warn("setup rejected: token verification failed",
				"connection_id", conn.ID, "error", err)
			r.replyError(conn, "unauthorized", "invalid token")
			return
		}
		if verified != payload.ID {
			r.log.Warn("setup id does not match token subject; using verified id",
				"connection_id", conn.ID, "claimed_id", payload.ID, "verified_id", verified)
		}
		userID = verified
	}

	r.hub.Identify(conn.ID, userID)

	if ack, err := EncodeFrame(EventConnected, struct{}{}); err == nil {
		_ = conn.Send(ack)
	}
}

// handleJoinChat joins the sender to the named chat room. The source accepted
// joins from unidentified connections; here they are rejected explicitly.
func (r *Router) handleJoinChat(conn *Connection, data json.RawMessage) {
	if _, ok := r.hub.IdentityOf(conn.ID); !ok {
		r.log.Warn("join chat before setup rejected", "connection_id", conn.ID)
		r.replyError(conn, "setup_required", "setup must complete before joining a chat")
		return
	}

	var roomID string
	if err := json.Unmarshal(data, &roomID); err != nil || roomID == "" {
		r.replyError(conn, "bad_request", "join chat requires a room id")
		return
	}

	r.hub.Join(roomID, conn)
}

// handleNewMessage delivers the message body to the identity room of every
// chat participant, the sender's own other devices included. A body without a
// participant list is dropped whole; it is never delivered partially.
func (r *Router) handleNewMessage(conn *Connection, data json.RawMessage) {
	var envelope messageEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil || len(envelope.Chat.Users) == 0 {
		r.log.Warn("new message dropped: chat.users not defined", "connection_id", conn.ID)
		return
	}

	payload, err := EncodeFrame(EventMessageReceived, data)
	if err != nil {
		r.log.Warn("new message dropped: encode failed", "connection_id", conn.ID, "error", err)
		return
	}

	for _, user := range envelope.Chat.Users {
		key := user.Key()
		if key == "" {
			continue
		}
		r.hub.NotifyUser(key, payload)
	}
}

// handleGroupMutation serves group rename: every participant except the user
// who performed the mutation.
func (r *Router) handleGroupMutation(conn *Connection, event string, data json.RawMessage) {
	var payload groupEventPayload
	if err := json.Unmarshal(data, &payload); err != nil || len(payload.Chat.Users) == 0 {
		r.log.Warn("group event dropped: chat.users not defined",
			"event", event, "connection_id", conn.ID)
		return
	}
	r.notifyParticipants(payload.Chat.Users, payload.UserID, event, data)
}

// handleGroupRemove additionally reaches the removed user, who is no longer
// on the participant list.
func (r *Router) handleGroupRemove(conn *Connection, data json.RawMessage) {
	var payload groupEventPayload
	if err := json.Unmarshal(data, &payload); err != nil || len(payload.Chat.Users) == 0 {
		r.log.Warn("group event dropped: chat.users not defined",
			"event", EventGroupRemove, "connection_id", conn.ID)
		return
	}

	r.notifyParticipants(payload.Chat.Users, payload.UserID, EventGroupRemove, data)

	if payload.RemovedUser != "" {
		if out, err := EncodeFrame(EventGroupRemove, data); err == nil {
			r.hub.NotifyUser(payload.RemovedUser, out)
		}
	}
}

// handleGroupAdd carries the chat itself as payload; the administrator who
// performed the addition is excluded.
func (r *Router) handleGroupAdd(conn *Connection, data json.RawMessage) {
	var chat ChatRef
	if err := json.Unmarshal(data, &chat); err != nil || len(chat.Users) == 0 || chat.GroupAdmin == nil {
		r.log.Warn("group add dropped: chat.users or groupAdmin not defined",
			"connection_id", conn.ID)
		return
	}
	r.notifyParticipants(chat.Users, chat.GroupAdmin.Key(), EventGroupAdd, data)
}

func (r *Router) notifyParticipants(users []UserRef, excludeUserID string, event string, data json.RawMessage) {
	payload, err := EncodeFrame(event, data)
	if err != nil {
		r.log.Warn("group event dropped: encode failed", "event", event, "error", err)
		return
	}
	for _, user := range users {
		key := user.Key()
		if key == "" || key == excludeUserID {
			continue
		}
		r.hub.NotifyUser(key, payload)
	}
}

func (r *Router) replyError(conn *Connection, code, message string) {
	if payload, err := EncodeFrame(EventError, ErrorPayload{Code: code, Error: message}); err == nil {
		_ = conn.Send(payload)
	}
}
