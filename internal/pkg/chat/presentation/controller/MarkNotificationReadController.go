package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/bahaa-alden/chatapp/internal/infrastructure/cache/port"
	"github.com/bahaa-alden/chatapp/internal/pkg/chat/application/usecase"
	"github.com/bahaa-alden/chatapp/internal/pkg/chat/persistence/repository/adapter"
)

// MarkNotificationReadController flips one notification's read flag.
type MarkNotificationReadController struct {
	UC *usecase.MarkNotificationReadUseCase
}

func NewMarkNotificationReadController(pool *pgxpool.Pool, cache cacheport.Cache) *MarkNotificationReadController {
	repo := adapter.NewPgNotificationRepository(pool)
	return &MarkNotificationReadController{UC: usecase.NewMarkNotificationReadUseCase(repo, cache)}
}

type markNotificationReadRequest struct {
	UserID string `json:"user_id"`
}

func (h *MarkNotificationReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		notificationID := c.Param("notificationId")
		if notificationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "notificationId is required"})
			return
		}

		// user_id is optional; it only scopes cache invalidation.
		var req markNotificationReadRequest
		_ = c.ShouldBindJSON(&req)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		err := h.UC.Execute(ctx, usecase.MarkNotificationReadInput{
			NotificationID: notificationID,
			UserID:         req.UserID,
		})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": notificationID, "read": true})
	}
}
