package controller

import (
	"github.com/gin-gonic/gin"

	chat "github.com/bahaa-alden/chatapp/internal/pkg/chat/application/domain"
)

// chatResponse serializes the mutated chat the way clients echo it back into
// the socket layer: a users array of {id} refs plus the group admin.
func chatResponse(c *chat.Chat) gin.H {
	users := make([]gin.H, 0, len(c.UserIDs))
	for _, id := range c.UserIDs {
		users = append(users, gin.H{"id": id})
	}

	out := gin.H{
		"id":         c.ID,
		"name":       c.Name,
		"is_group":   c.IsGroup,
		"users":      users,
		"created_at": c.CreatedAt,
	}
	if c.GroupAdminID != nil {
		out["groupAdmin"] = gin.H{"id": *c.GroupAdminID}
	}
	return out
}
