package controller

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/bahaa-alden/chatapp/internal/infrastructure/realtime"
)

// ChatSocketController handles the websocket endpoint for realtime chat
// traffic. It owns the transport only: frames are decoded here and handed to
// the event router, which decides targets and exclusions.
type ChatSocketController struct {
	hub    *realtime.Hub
	router *realtime.Router
	log    *slog.Logger
}

func NewChatSocketController(hub *realtime.Hub, router *realtime.Router, log *slog.Logger) *ChatSocketController {
	if log == nil {
		log = slog.Default()
	}
	return &ChatSocketController{hub: hub, router: router, log: log}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; the token check on setup gates identity.
		return true
	},
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades HTTP connections to websocket and routes frames until the
// client disconnects.
func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just return.
			return
		}

		conn := realtime.NewConnection(ws)
		ctl.hub.Register(conn)
		defer func() {
			ctl.hub.Deregister(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				ctl.log.Debug("socket read ended", "connection_id", conn.ID, "error", err)
				return
			}

			var frame realtime.Frame
			if err := json.Unmarshal(data, &frame); err != nil || frame.Event == "" {
				ctl.replyError(conn, "bad_request", "invalid frame")
				continue
			}

			ctl.router.Dispatch(conn, frame)
		}
	}
}

func (ctl *ChatSocketController) replyError(conn *realtime.Connection, code string, message string) {
	payload, err := realtime.EncodeFrame(realtime.EventError, realtime.ErrorPayload{Code: code, Error: message})
	if err == nil {
		_ = conn.Send(payload)
	}
}
