package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Shriramtantry/task-manager/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Live task feed
// @Description  WebSocket stream of {"type":"tasks","data":[...]} for one user.
// @Tags         tasks
// @Param        userId       path   int     true   "owner id"
// @Param        interval     query  string  false  "push interval, e.g. 2s (max 10s)"
// @Param        interval_ms  query  int     false  "push interval in ms (max 10000)"
// @Success      101
// @Failure      500  {string}  string
// @Router       /ws/tasks/{userId} [get]
func (h *Handler) wsTasks(c *gin.Context) {
	userID, err := pathInt(c, "userId", "tasks.feed")
	if err != nil {
		h.logAndString(c, http.StatusInternalServerError, msgFetchFailed, "ws_bad_user", err,
			"user_id", c.Param("userId"))
		return
	}
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// the reader handles control frames and detects disconnects
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	if err := h.sendTasks(ctx, conn, userID); err != nil {
		h.log.Infow("ws_write_failed_initial", "err", err, "user_id", userID)
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case <-ticker.C:
			if err := h.sendTasks(ctx, conn, userID); err != nil {
				h.log.Infow("ws_write_failed", "err", err, "user_id", userID)
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return defaultInterval
}

// startReader drains incoming messages until the peer goes away.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

// sendTasks pushes the user's current task list. A failed lookup is reported
// to the client as an error frame and keeps the stream open.
func (h *Handler) sendTasks(ctx context.Context, conn *websocket.Conn, userID int) error {
	env := wsEnvelope{Type: "tasks"}

	tasks, err := h.services.Tasks.ListByUser(ctx, userID)
	if err != nil {
		h.log.Errorw("ws_list_tasks_failed", "err", err, "user_id", userID)
		env = wsEnvelope{Type: "error", Error: msgFetchFailed}
	} else {
		if tasks == nil {
			tasks = []models.Task{}
		}
		env.Data = tasks
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}
