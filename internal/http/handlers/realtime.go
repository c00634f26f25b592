package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/recipebook-backend/internal/http/response"
	"github.com/yungbote/recipebook-backend/internal/observability"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
	"github.com/yungbote/recipebook-backend/internal/realtime"
)

type RealtimeHandler struct {
	log     *logger.Logger
	hub     *realtime.Hub
	metrics *observability.Metrics
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.Hub, metrics *observability.Metrics) *RealtimeHandler {
	return &RealtimeHandler{
		log:     log.With("handler", "RealtimeHandler"),
		hub:     hub,
		metrics: metrics,
	}
}

// GET /api/events/stream?channels=recipes,pantry
// Without channels the stream carries every change event.
func (h *RealtimeHandler) SSEStream(c *gin.Context) {
	channels, err := parseChannels(c.Query("channels"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_channel", err)
		return
	}

	client := h.hub.NewClient()
	for _, ch := range channels {
		h.hub.Subscribe(client, ch)
	}
	h.metrics.SSEClientsInc()
	h.log.Info("SSEStream open", "client_id", client.ID.String(), "channels", channels)

	h.hub.ServeHTTP(c.Writer, c.Request, client)

	h.hub.CloseClient(client)
	h.metrics.SSEClientsDec()
	h.log.Info("SSEStream closed", "client_id", client.ID.String())
}

func parseChannels(raw string) ([]string, error) {
	known := realtime.DefaultChannels()
	if strings.TrimSpace(raw) == "" {
		return known, nil
	}
	valid := make(map[string]bool, len(known))
	for _, k := range known {
		valid[k] = true
	}
	var out []string
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		ch := strings.TrimSpace(part)
		if ch == "" || seen[ch] {
			continue
		}
		if !valid[ch] {
			return nil, fmt.Errorf("unknown channel %q", ch)
		}
		seen[ch] = true
		out = append(out, ch)
	}
	if len(out) == 0 {
		return known, nil
	}
	return out, nil
}
