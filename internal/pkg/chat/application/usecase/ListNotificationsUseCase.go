package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	cacheport "github.com/bahaa-alden/chatapp/internal/infrastructure/cache/port"
	chat "github.com/bahaa-alden/chatapp/internal/pkg/chat/application/domain"
	repository "github.com/bahaa-alden/chatapp/internal/pkg/chat/persistence/repository/port"
)

// notificationCacheTTL bounds staleness of the cached per-user listing; the
// fan-out task and read-flag updates invalidate eagerly as well.
const notificationCacheTTL = 30 * time.Second

// NotificationCacheKey is the cache key for a user's populated notification
// listing. Shared with the fan-out task for invalidation.
func NotificationCacheKey(userID string) string {
	return "notifications:" + userID
}

// ListNotificationsInput fetches the populated notifications of one user.
type ListNotificationsInput struct {
	UserID     string
	UnreadOnly bool
}

// ListNotificationsUseCase reads populated notifications cache-aside. Only
// the full unread listing is cached; population failures are never cached.
type ListNotificationsUseCase struct {
	Repo  repository.NotificationRepository
	Cache cacheport.Cache
}

func NewListNotificationsUseCase(repo repository.NotificationRepository, cache cacheport.Cache) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{Repo: repo, Cache: cache}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, in ListNotificationsInput) ([]chat.PopulatedNotification, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("userId is required")
	}

	key := NotificationCacheKey(in.UserID)
	if uc.Cache != nil && in.UnreadOnly {
		if cached, err := uc.Cache.Get(ctx, key); err == nil {
			var out []chat.PopulatedNotification
			if json.Unmarshal([]byte(cached), &out) == nil {
				return out, nil
			}
		} else if !errors.Is(err, cacheport.ErrMiss) {
			// Cache trouble is not a read failure; fall through to the repo.
			_ = err
		}
	}

	out, err := uc.Repo.ListForUser(ctx, in.UserID, in.UnreadOnly)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Cache != nil && in.UnreadOnly {
		if encoded, err := json.Marshal(out); err == nil {
			_ = uc.Cache.Set(ctx, key, string(encoded), notificationCacheTTL)
		}
	}
	return out, nil
}
