package v1

import (
	"github.com/gin-gonic/gin"

	httpHandler "github.com/bahaa-alden/chatapp/internal/pkg/chat/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(r *gin.Engine, deps httpHandler.Deps) {
	v1 := r.Group("/api/v1")
	// Pass the shared infrastructure down to the HTTP layer
	httpHandler.RegisterRoutes(v1, deps)
}
