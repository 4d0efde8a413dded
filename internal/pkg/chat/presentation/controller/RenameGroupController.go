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

// RenameGroupController handles the group rename endpoint. The response body
// is what the renaming client echoes into the socket rename event.
type RenameGroupController struct {
	UC *usecase.RenameGroupUseCase
}

func NewRenameGroupController(pool *pgxpool.Pool) *RenameGroupController {
	repo := adapter.NewPgChatRepository(pool)
	return &RenameGroupController{UC: usecase.NewRenameGroupUseCase(repo)}
}

type renameGroupRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

func (h *RenameGroupController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chatId")
		if chatID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatId is required"})
			return
		}

		var req renameGroupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		group, err := h.UC.Execute(ctx, usecase.RenameGroupInput{
			ChatID: chatID,
			UserID: req.UserID,
			Name:   req.Name,
		})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, chatResponse(group))
	}
}
