package usecase

import (
	"context"
	"fmt"

	cacheport "github.com/bahaa-alden/chatapp/internal/infrastructure/cache/port"
	repository "github.com/bahaa-alden/chatapp/internal/pkg/chat/persistence/repository/port"
)

// MarkNotificationReadInput flips the read flag of one notification.
type MarkNotificationReadInput struct {
	NotificationID string
	UserID         string
}

// MarkNotificationReadUseCase marks a notification read and drops the user's
// cached listing.
type MarkNotificationReadUseCase struct {
	Repo  repository.NotificationRepository
	Cache cacheport.Cache
}

func NewMarkNotificationReadUseCase(repo repository.NotificationRepository, cache cacheport.Cache) *MarkNotificationReadUseCase {
	return &MarkNotificationReadUseCase{Repo: repo, Cache: cache}
}

func (uc *MarkNotificationReadUseCase) Execute(ctx context.Context, in MarkNotificationReadInput) error {
	if in.NotificationID == "" {
		return fmt.Errorf("notificationId is required")
	}

	if err := uc.Repo.MarkRead(ctx, in.NotificationID); err != nil {
		return wrapRepoErr(err)
	}

	if uc.Cache != nil && in.UserID != "" {
		_, _ = uc.Cache.Del(ctx, NotificationCacheKey(in.UserID))
	}
	return nil
}
