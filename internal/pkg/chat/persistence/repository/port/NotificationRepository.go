package repository

import (
	"context"

	chat "github.com/bahaa-alden/chatapp/internal/pkg/chat/application/domain"
)

// NotificationRepository defines persistence operations for notifications.
// Every read resolves the user, message and chat relations; a notification
// whose relations cannot all be resolved makes the whole read fail.
type NotificationRepository interface {
	// Create inserts a notification. Inserting the same (user, message) pair
	// twice is a no-op; handlers that create notifications must be idempotent.
	Create(ctx context.Context, n chat.Notification) (string, error)

	ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]chat.PopulatedNotification, error)
	GetPopulated(ctx context.Context, id string) (*chat.PopulatedNotification, error)
	MarkRead(ctx context.Context, id string) error
}
