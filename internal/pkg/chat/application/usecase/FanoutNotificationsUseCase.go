package usecase

import (
	"context"
	"fmt"

	cacheport "github.com/bahaa-alden/chatapp/internal/infrastructure/cache/port"
	chat "github.com/bahaa-alden/chatapp/internal/pkg/chat/application/domain"
	repository "github.com/bahaa-alden/chatapp/internal/pkg/chat/persistence/repository/port"
)

// FanoutNotificationsInput creates notification rows for every chat
// participant except the sender, after the message write has committed.
type FanoutNotificationsInput struct {
	MessageID string
	ChatID    string
	SenderID  string
}

// FanoutNotificationsUseCase materializes per-recipient notifications and
// invalidates each recipient's cached listing. Creation is idempotent per
// (recipient, message), so queue retries are safe.
type FanoutNotificationsUseCase struct {
	Chats         repository.ChatRepository
	Notifications repository.NotificationRepository
	Cache         cacheport.Cache
}

func NewFanoutNotificationsUseCase(
	chats repository.ChatRepository,
	notifications repository.NotificationRepository,
	cache cacheport.Cache,
) *FanoutNotificationsUseCase {
	return &FanoutNotificationsUseCase{Chats: chats, Notifications: notifications, Cache: cache}
}

func (uc *FanoutNotificationsUseCase) Execute(ctx context.Context, in FanoutNotificationsInput) error {
	if in.MessageID == "" || in.ChatID == "" || in.SenderID == "" {
		return fmt.Errorf("messageId, chatId and senderId are required")
	}

	c, err := uc.Chats.GetChat(ctx, in.ChatID)
	if err != nil {
		return wrapRepoErr(err)
	}

	for _, uid := range c.UserIDs {
		if uid == in.SenderID {
			continue
		}
		_, err := uc.Notifications.Create(ctx, chat.Notification{
			UserID:    uid,
			MessageID: in.MessageID,
			ChatID:    in.ChatID,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if uc.Cache != nil {
			_, _ = uc.Cache.Del(ctx, NotificationCacheKey(uid))
		}
	}
	return nil
}
