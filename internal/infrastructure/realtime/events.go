package realtime

import "encoding/json"

// Wire event names. Inbound and outbound names match the client protocol;
// a client-sent "new message" fans out as "message received".
const (
	EventSetup           = "setup"
	EventConnected       = "connected"
	EventJoinChat        = "join chat"
	EventIsTyping        = "isTyping"
	EventStopTyping      = "stop typing"
	EventNewMessage      = "new message"
	EventMessageReceived = "message received"
	EventGroupRename     = "group rename"
	EventGroupRemove     = "group remove"
	EventGroupAdd        = "group add"
	EventError           = "error"
)

// Frame is the JSON envelope exchanged on the socket. Data stays opaque to
// the router except for the fields each event's dispatch rule needs.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// EncodeFrame marshals an envelope around the given payload.
func EncodeFrame(event string, data any) ([]byte, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return json.Marshal(Frame{Event: event, Data: raw})
}

// SetupPayload identifies the connection. The token is checked by the
// identity collaborator before the id is trusted.
type SetupPayload struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// TypingPayload carries the ephemeral typing signal. UserName is only set on
// isTyping.
type TypingPayload struct {
	ChatID   string `json:"chatId"`
	UserID   string `json:"userId"`
	UserName string `json:"userName,omitempty"`
}

// UserRef is a participant reference inside a chat payload. The client mixes
// two spellings of the identifier between message and group events, so both
// are accepted.
type UserRef struct {
	ID       string `json:"id"`
	ObjectID string `json:"_id"`
}

// Key returns whichever identifier spelling is present.
func (u UserRef) Key() string {
	if u.ID != "" {
		return u.ID
	}
	return u.ObjectID
}

// ChatRef is the slice of a chat payload the router inspects: the participant
// list and, for group add, the administrator.
type ChatRef struct {
	ID         string    `json:"id"`
	Users      []UserRef `json:"users"`
	GroupAdmin *UserRef  `json:"groupAdmin"`
}

// messageEnvelope picks the participant list out of a new-message body. The
// rest of the body is re-emitted untouched.
type messageEnvelope struct {
	Chat ChatRef `json:"chat"`
}

// groupEventPayload is the shared shape of the three group mutation events.
// RemovedUser is only present on group remove.
type groupEventPayload struct {
	Chat        ChatRef `json:"chat"`
	UserID      string  `json:"userId"`
	RemovedUser string  `json:"removedUser"`
}

// ErrorPayload is sent for protocol violations only; routing failures are
// silent from the client's perspective.
type ErrorPayload struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}
