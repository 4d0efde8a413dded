package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/bahaa-alden/chatapp/internal/infrastructure/cache/port"
	qport "github.com/bahaa-alden/chatapp/internal/infrastructure/queue/port"
	"github.com/bahaa-alden/chatapp/internal/infrastructure/realtime"
	"github.com/bahaa-alden/chatapp/internal/pkg/chat/presentation/controller"
)

// Deps carries the shared infrastructure the chat endpoints are built on.
type Deps struct {
	Pool   *pgxpool.Pool
	Cache  cacheport.Cache
	Queue  qport.Client
	Hub    *realtime.Hub
	Router *realtime.Router
	Log    *slog.Logger
}

// RegisterRoutes registers chat-related HTTP endpoints under the given router group
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, d Deps) {
	createGroupCtl := controller.NewCreateGroupController(d.Pool)
	renameCtl := controller.NewRenameGroupController(d.Pool)
	addMemberCtl := controller.NewAddGroupMemberController(d.Pool)
	removeMemberCtl := controller.NewRemoveGroupMemberController(d.Pool)
	sendMsgCtl := controller.NewSendMessageController(d.Pool, d.Queue)
	listMsgCtl := controller.NewListMessagesController(d.Pool)
	listNotifCtl := controller.NewListNotificationsController(d.Pool, d.Cache)
	markReadCtl := controller.NewMarkNotificationReadController(d.Pool, d.Cache)
	socketCtl := controller.NewChatSocketController(d.Hub, d.Router, d.Log)

	// POST /api/v1/chat/group -> create a group chat
	g.POST("/chat/group", createGroupCtl.Handle())

	// PUT /api/v1/chat/:chatId/name -> rename a group
	g.PUT("/chat/:chatId/name", renameCtl.Handle())

	// POST /api/v1/chat/:chatId/members -> add a member to a group
	g.POST("/chat/:chatId/members", addMemberCtl.Handle())

	// DELETE /api/v1/chat/:chatId/members -> remove a member from a group
	g.DELETE("/chat/:chatId/members", removeMemberCtl.Handle())

	// POST /api/v1/chat/:chatId -> send a message into a chat
	g.POST("/chat/:chatId", sendMsgCtl.Handle())

	// GET /api/v1/chat/:chatId/messages -> fetch messages by chat id
	g.GET("/chat/:chatId/messages", listMsgCtl.Handle())

	// GET /api/v1/notifications/:userId -> fetch a user's notifications
	g.GET("/notifications/:userId", listNotifCtl.Handle())

	// PUT /api/v1/notifications/read/:notificationId -> mark one as read
	g.PUT("/notifications/read/:notificationId", markReadCtl.Handle())

	// GET /api/v1/chat/ws -> websocket endpoint for realtime chat
	g.GET("/chat/ws", socketCtl.Handle())
}
