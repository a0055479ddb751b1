package handlers

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"

	"planet-randomizer/internal/generator"
	"planet-randomizer/internal/metrics"
	"planet-randomizer/internal/shared/errors"
	"planet-randomizer/internal/shared/response"
	"planet-randomizer/internal/system"
)

const (
	MessagePlacement = "placement"
	MessageSystem    = "system"
	MessageError     = "error"

	writeWait = 5 * time.Second
)

// StreamMessage is the envelope of every frame sent on the placement stream.
type StreamMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type StreamHandler struct {
	service  *system.Service
	metrics  *metrics.Collector
	upgrader websocket.Upgrader
}

// NewStreamHandler accepts upgrades from allowedOrigins and from clients that send no Origin.
func NewStreamHandler(service *system.Service, collector *metrics.Collector, allowedOrigins []string) *StreamHandler {
	return &StreamHandler{
		service: service,
		metrics: collector,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// ServeHTTP generates ?seed= and streams each placement as it is
// committed, then the finished system, then closes the connection.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "stream_system")

	seed, err := seedParam(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already replied.
		logger.Debug("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	h.metrics.StreamOpened()
	defer h.metrics.StreamClosed()

	logger = logger.With("seed", seed, "remote_addr", r.RemoteAddr)
	logger.Debug("Placement stream opened")

	var writeErr error
	send := func(msg StreamMessage) {
		if writeErr != nil {
			return
		}
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			writeErr = err
			return
		}
		writeErr = conn.WriteJSON(msg)
	}

	sys, err := h.service.Preview(seed, func(p generator.Placement) {
		send(StreamMessage{Type: MessagePlacement, Payload: p})
	})
	if err != nil {
		send(StreamMessage{Type: MessageError, Payload: response.ErrorResponse{
			Error:   string(errors.GetType(err)),
			Message: err.Error(),
			Code:    response.StatusCode(errors.GetType(err)),
		}})
	} else {
		send(StreamMessage{Type: MessageSystem, Payload: sys})
	}

	if writeErr != nil {
		logger.Warn("Placement stream aborted", "error", writeErr)
		return
	}

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done")
	if err := conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(writeWait)); err != nil {
		logger.Debug("Failed to send close frame", "error", err)
	}
	logger.Debug("Placement stream completed", "failed", err != nil)
}
