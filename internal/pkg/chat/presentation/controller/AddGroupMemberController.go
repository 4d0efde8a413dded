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

// AddGroupMemberController handles adding a member to a group.
type AddGroupMemberController struct {
	UC *usecase.AddGroupMemberUseCase
}

func NewAddGroupMemberController(pool *pgxpool.Pool) *AddGroupMemberController {
	repo := adapter.NewPgChatRepository(pool)
	return &AddGroupMemberController{UC: usecase.NewAddGroupMemberUseCase(repo)}
}

type addGroupMemberRequest struct {
	AdminID string `json:"admin_id" binding:"required"`
	UserID  string `json:"user_id" binding:"required"`
}

func (h *AddGroupMemberController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chatId")
		if chatID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatId is required"})
			return
		}

		var req addGroupMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		group, err := h.UC.Execute(ctx, usecase.AddGroupMemberInput{
			ChatID:  chatID,
			AdminID: req.AdminID,
			UserID:  req.UserID,
		})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, chatResponse(group))
	}
}
