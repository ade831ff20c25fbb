package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"proxboard/internal/model"
	"proxboard/internal/stream"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StreamController serves live classified log records over WebSocket.
// Each connection owns one adapter session; the connection limiter
// bounds how fast clients may spawn new follow processes.
type StreamController struct {
	adapter  stream.Adapter
	backfill int
	limiter  *rate.Limiter
}

func NewStreamController(adapter stream.Adapter, backfill int) *StreamController {
	return &StreamController{
		adapter:  adapter,
		backfill: backfill,
		limiter:  rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

func RegisterStreamRoutes(router *gin.Engine, controller *StreamController) {
	router.GET("/ws/logs", controller.StreamLogs)
}

// StreamLogs godoc
// @Summary      Stream classified balancer logs
// @Description  Upgrades to a WebSocket and sends one classified log record as JSON per text message, starting with a backfill of recent lines and continuing live until the client disconnects.
// @Tags         logs
// @Param        lines  query  int  false  "Backfill lines to replay before live records (default: configured backfill)"
// @Success      101  {string}  string  "Switching protocols"
// @Failure      429  {object}  model.Response "Too many stream connections"
// @Router       /ws/logs [get]
func (c *StreamController) StreamLogs(ctx *gin.Context) {
	if !c.limiter.Allow() {
		ctx.JSON(http.StatusTooManyRequests, model.NewResponse("Too many stream connections", nil))
		return
	}

	backfill := c.backfill
	if raw := ctx.Query("lines"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			backfill = v
		}
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	session, err := c.adapter.Open(ctx.Request.Context(), backfill)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open log stream session")
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "log source unavailable"))
		return
	}
	defer session.Close()

	log.Info().Str("session", session.ID()).Int("backfill", backfill).Msg("Log stream client connected")

	// Read pump, detects client disconnect. The hijacked connection no
	// longer cancels the request context, so closing the session here is
	// what ends the write loop below.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				session.Close()
				return
			}
		}
	}()

	for record := range session.Records() {
		if err := conn.WriteJSON(record); err != nil {
			log.Debug().Str("session", session.ID()).Err(err).Msg("Log stream client went away")
			return
		}
	}

	// Source ended; say goodbye cleanly.
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	log.Info().Str("session", session.ID()).Msg("Log stream session ended")
}
