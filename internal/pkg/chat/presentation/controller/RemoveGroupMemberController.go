package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bahaa-alden/chatapp/internal/pkg/chat/application/usecase"
	"github.com/bahaa-alden/chatapp/internal/pkg/chat/persistence/repository/adapter"
)

// RemoveGroupMemberController handles removing a member from a group. The
// administrator may remove anyone; a member may remove themselves.
type RemoveGroupMemberController struct {
	UC *usecase.RemoveGroupMemberUseCase
}

func NewRemoveGroupMemberController(pool *pgxpool.Pool) *RemoveGroupMemberController {
	repo := adapter.NewPgChatRepository(pool)
	return &RemoveGroupMemberController{UC: usecase.NewRemoveGroupMemberUseCase(repo)}
}

type removeGroupMemberRequest struct {
	ActorID string `json:"actor_id" binding:"required"`
	UserID  string `json:"user_id" binding:"required"`
}

func (h *RemoveGroupMemberController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chatId")
		if chatID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatId is required"})
			return
		}

		var req removeGroupMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		group, err := h.UC.Execute(ctx, usecase.RemoveGroupMemberInput{
			ChatID:        chatID,
			ActorID:       req.ActorID,
			RemovedUserID: req.UserID,
		})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, chatResponse(group))
	}
}
