package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"cotizador_seguros/internal/infrastructure/logger"
	"cotizador_seguros/internal/usecase/interfaces"
	"cotizador_seguros/pkg"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 16 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventsHandler streams the events of one conversation channel over a websocket.
type EventsHandler struct {
	subscriber    interfaces.IEventSubscriber
	channelPrefix string
	logger        *zap.Logger
}

func NewEventsHandler(subscriber interfaces.IEventSubscriber, channelPrefix string, l *zap.Logger) *EventsHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &EventsHandler{subscriber: subscriber, channelPrefix: channelPrefix, logger: l.Named("events")}
}

// Stream godoc
// @Summary      Stream conversation events
// @Description  Upgrades to a websocket and forwards every event published for the conversation, e.g. QUOTE_READY.
// @Tags         conversations
// @Param        external_id  path  string  true  "External conversation ID"
// @Success      101
// @Failure      400  {object}  pkg.HTTPError
// @Router       /conversations/{external_id}/events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	externalID := strings.TrimSpace(c.Param("external_id"))
	if externalID == "" {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	channel := h.channelPrefix + externalID
	log := logger.FromGin(c, h.logger).With(zap.String("channel", channel))

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	events, unsubscribe, err := h.subscriber.Subscribe(ctx, channel)
	if err != nil {
		log.Error("subscribe failed", zap.Error(err))
		_ = ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "subscribe failed"),
			time.Now().Add(wsWriteWait))
		return
	}
	defer unsubscribe()
	log.Info("websocket client connected")

	// The client never sends data; reading only drives pong and close handling.
	go func() {
		defer cancel()
		ws.SetReadLimit(512)
		_ = ws.SetReadDeadline(time.Now().Add(wsPongWait))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("websocket client disconnected")
			return
		case payload, ok := <-events:
			if !ok {
				_ = ws.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "subscription closed"),
					time.Now().Add(wsWriteWait))
				return
			}
			_ = ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Warn("websocket write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}
