package task

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/bahaa-alden/chatapp/internal/infrastructure/cache/port"
	qport "github.com/bahaa-alden/chatapp/internal/infrastructure/queue/port"
	"github.com/bahaa-alden/chatapp/internal/pkg/chat/application/usecase"
	repoAdapter "github.com/bahaa-alden/chatapp/internal/pkg/chat/persistence/repository/adapter"
)

// FanoutNotificationsTaskType is the queue task name for materializing
// notifications after a message write commits.
const FanoutNotificationsTaskType = "chat:fanout_notifications"

// FanoutNotificationsTaskPayload is the JSON payload transported via the
// queue. Kept decoupled from domain types to avoid tight coupling with JSON
// tags.
type FanoutNotificationsTaskPayload struct {
	MessageID string `json:"messageId"`
	ChatID    string `json:"chatId"`
	SenderID  string `json:"senderId"`
}

// RegisterFanoutNotificationsTask binds the task handler to the provided
// server. The handler executes the fan-out use case against the DB pool and
// invalidates recipient listings in the cache.
func RegisterFanoutNotificationsTask(srv qport.Server, pool *pgxpool.Pool, cache cacheport.Cache) {
	srv.Register(FanoutNotificationsTaskType, func(ctx context.Context, t qport.Task) error {
		var p FanoutNotificationsTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}

		uc := usecase.NewFanoutNotificationsUseCase(
			repoAdapter.NewPgChatRepository(pool),
			repoAdapter.NewPgNotificationRepository(pool),
			cache,
		)

		// give DB a reasonable time budget per task execution
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		return uc.Execute(ctx, usecase.FanoutNotificationsInput{
			MessageID: p.MessageID,
			ChatID:    p.ChatID,
			SenderID:  p.SenderID,
		})
	})
}
