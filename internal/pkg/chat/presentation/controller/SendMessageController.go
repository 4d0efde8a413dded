package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	queueport "github.com/bahaa-alden/chatapp/internal/infrastructure/queue/port"
	chat "github.com/bahaa-alden/chatapp/internal/pkg/chat/application/domain"
	"github.com/bahaa-alden/chatapp/internal/pkg/chat/application/task"
	"github.com/bahaa-alden/chatapp/internal/pkg/chat/application/usecase"
	"github.com/bahaa-alden/chatapp/internal/pkg/chat/persistence/repository/adapter"
)

// SendMessageController handles the send-message endpoint only (one
// controller per endpoint). After the write commits it enqueues the
// notification fan-out; the live socket event for the message itself is
// emitted by the client once this request resolves.
type SendMessageController struct {
	UC *usecase.SendMessageUseCase
	Q  queueport.Client
}

func NewSendMessageController(pool *pgxpool.Pool, client queueport.Client) *SendMessageController {
	repo := adapter.NewPgChatRepository(pool)
	return &SendMessageController{UC: usecase.NewSendMessageUseCase(repo), Q: client}
}

// sendMessageRequest is the DTO for the HTTP request body
type sendMessageRequest struct {
	SenderID string `json:"sender_id" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// Handle returns a gin handler that persists a message then queues the
// notification fan-out.
func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chatId")
		if chatID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatId is required"})
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msg, err := h.UC.Execute(ctx, usecase.SendMessageInput{
			ChatID:   chatID,
			SenderID: req.SenderID,
			Content:  req.Content,
		})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		h.enqueueFanout(ctx, msg)

		c.JSON(http.StatusCreated, gin.H{
			"id":         msg.ID,
			"chat_id":    msg.ChatID,
			"sender_id":  msg.SenderID,
			"content":    msg.Content,
			"created_at": msg.CreatedAt,
		})
	}
}

// enqueueFanout is best-effort: the message is already persisted, and the
// queue retries the task on its own once accepted.
func (h *SendMessageController) enqueueFanout(ctx context.Context, msg *chat.Message) {
	if h.Q == nil {
		return
	}
	payload, err := json.Marshal(task.FanoutNotificationsTaskPayload{
		MessageID: msg.ID,
		ChatID:    msg.ChatID,
		SenderID:  msg.SenderID,
	})
	if err != nil {
		return
	}
	opts := queueport.EnqueueOption{Queue: "chat", MaxRetry: 20}
	_, _ = h.Q.Enqueue(ctx, queueport.Task{Type: task.FanoutNotificationsTaskType, Payload: payload}, opts)
}

// statusFor maps use case errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError
	case errors.Is(err, chat.ErrNotParticipant), errors.Is(err, chat.ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, chat.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
