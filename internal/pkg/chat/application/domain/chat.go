package chat

import (
	"errors"
	"time"
)

// Domain-level errors for chat behaviors
var (
	ErrNotParticipant = errors.New("chat: user is not a participant in the chat")
	ErrNotGroup       = errors.New("chat: operation requires a group chat")
	ErrNotAdmin       = errors.New("chat: only the group administrator may do that")
	ErrNotFound       = errors.New("chat: record not found")
	ErrEmptyMessage   = errors.New("chat: message content is required")
)

// Chat is a conversation: a 1:1 thread or a named group with an admin.
type Chat struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	IsGroup      bool      `db:"is_group"`
	GroupAdminID *string   `db:"group_admin_id"`
	UserIDs      []string  `db:"-"`
	CreatedAt    time.Time `db:"created_at"`
}

// HasParticipant tells whether userID is part of this chat.
func (c *Chat) HasParticipant(userID string) bool {
	if c == nil {
		return false
	}
	for _, id := range c.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsAdmin tells whether userID administers this group.
func (c *Chat) IsAdmin(userID string) bool {
	return c != nil && c.IsGroup && c.GroupAdminID != nil && *c.GroupAdminID == userID
}
