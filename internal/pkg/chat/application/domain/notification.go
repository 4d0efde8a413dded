package chat

import "time"

// Notification references a message a user has not seen yet. The row itself
// only holds foreign keys; reads always resolve the related user, message
// and chat, or fail entirely.
type Notification struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	MessageID string    `db:"message_id"`
	ChatID    string    `db:"chat_id"`
	Read      bool      `db:"read"`
	CreatedAt time.Time `db:"created_at"`
}

// UserSummary is the abbreviated user shape exposed on populated reads.
type UserSummary struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
	Photo string `db:"photo"`
}

// PopulatedNotification carries the notification with all three relations
// resolved. Partial population is never surfaced.
type PopulatedNotification struct {
	Notification
	User    UserSummary
	Message Message
	Chat    Chat
}
