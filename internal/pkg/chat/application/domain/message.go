package chat

import (
	"errors"
	"strings"
	"time"
)

// Message is an immutable log entry in a chat.
type Message struct {
	ID        string    `db:"id"`
	ChatID    string    `db:"chat_id"`
	SenderID  string    `db:"sender_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

// NewMessage validates and normalizes a message ready to persist.
func NewMessage(m Message) (*Message, error) {
	if m.ChatID == "" || m.SenderID == "" {
		return nil, errors.New("chat: chat_id and sender_id are required")
	}

	m.Content = strings.TrimSpace(m.Content)
	if m.Content == "" {
		return nil, ErrEmptyMessage
	}

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	return &m, nil
}
