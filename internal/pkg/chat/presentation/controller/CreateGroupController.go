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

// CreateGroupController handles the group creation endpoint.
type CreateGroupController struct {
	UC *usecase.CreateGroupUseCase
}

func NewCreateGroupController(pool *pgxpool.Pool) *CreateGroupController {
	repo := adapter.NewPgChatRepository(pool)
	return &CreateGroupController{UC: usecase.NewCreateGroupUseCase(repo)}
}

type createGroupRequest struct {
	Name    string   `json:"name" binding:"required"`
	AdminID string   `json:"admin_id" binding:"required"`
	UserIDs []string `json:"user_ids" binding:"required"`
}

func (h *CreateGroupController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createGroupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		group, err := h.UC.Execute(ctx, usecase.CreateGroupInput{
			Name:    req.Name,
			AdminID: req.AdminID,
			UserIDs: req.UserIDs,
		})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, chatResponse(group))
	}
}
