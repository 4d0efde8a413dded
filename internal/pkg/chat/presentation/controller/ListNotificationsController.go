package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/bahaa-alden/chatapp/internal/infrastructure/cache/port"
	chat "github.com/bahaa-alden/chatapp/internal/pkg/chat/application/domain"
	"github.com/bahaa-alden/chatapp/internal/pkg/chat/application/usecase"
	"github.com/bahaa-alden/chatapp/internal/pkg/chat/persistence/repository/adapter"
)

// ListNotificationsController handles fetching a user's notifications with
// their sender, message and chat resolved.
type ListNotificationsController struct {
	UC *usecase.ListNotificationsUseCase
}

func NewListNotificationsController(pool *pgxpool.Pool, cache cacheport.Cache) *ListNotificationsController {
	repo := adapter.NewPgNotificationRepository(pool)
	return &ListNotificationsController{UC: usecase.NewListNotificationsUseCase(repo, cache)}
}

func (h *ListNotificationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
			return
		}

		// Unread-only is the default; ?all=true returns read ones too.
		unreadOnly := c.Query("all") != "true"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		notifs, err := h.UC.Execute(ctx, usecase.ListNotificationsInput{
			UserID:     userID,
			UnreadOnly: unreadOnly,
		})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(notifs))
		for i := range notifs {
			out = append(out, notificationResponse(&notifs[i]))
		}

		c.JSON(http.StatusOK, gin.H{
			"notifications": out,
			"count":         len(out),
		})
	}
}

func notificationResponse(n *chat.PopulatedNotification) gin.H {
	return gin.H{
		"id":         n.ID,
		"read":       n.Read,
		"created_at": n.CreatedAt,
		"user": gin.H{
			"id":    n.User.ID,
			"name":  n.User.Name,
			"email": n.User.Email,
			"photo": n.User.Photo,
		},
		"message": gin.H{
			"id":         n.Message.ID,
			"chat_id":    n.Message.ChatID,
			"sender_id":  n.Message.SenderID,
			"content":    n.Message.Content,
			"created_at": n.Message.CreatedAt,
		},
		"chat": chatResponse(&n.Chat),
	}
}
