package api

import (
	"errors"
	"io"
	"net/http"

	"messenger-notifier/internal/auth/delivery"
	"messenger-notifier/internal/notification"
	"messenger-notifier/internal/notification/usecase"
	"messenger-notifier/internal/trigger"
	"messenger-notifier/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// maxEventBytes bounds a trigger payload; Firestore documents are at most 1 MiB.
const maxEventBytes = 2 << 20

type Handler struct {
	notifier notification.Handler
	config   *config.Config
	gatherer prometheus.Gatherer
	logger   *zap.Logger
}

func NewHandler(notifier notification.Handler, cfg *config.Config, gatherer prometheus.Gatherer, logger *zap.Logger) *Handler {
	return &Handler{
		notifier: notifier,
		config:   cfg,
		gatherer: gatherer,
		logger:   logger.Named("http"),
	}
}

// Router builds the gin engine serving the trigger, health and metrics routes.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	SetupRoutes(r, h, promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	return r
}

// MessageCreated accepts a Firestore document-created event for
// chatrooms/{chatRoomId}/messages/{messageId}. A 5xx response asks the
// delivering runtime to retry; 4xx responses are final.
func (h *Handler) MessageCreated(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxEventBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "event exceeds size limit"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	event, err := trigger.DecodeFirestoreEvent(body)
	if err != nil {
		h.logger.Warn("Rejected trigger payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if event.EventID == "" {
		// CloudEvents binary mode carries the id in a header
		event.EventID = c.GetHeader("Ce-Id")
	}
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}

	h.logger.Debug("Trigger accepted",
		zap.String("event_id", event.EventID),
		zap.String("caller", c.GetString(delivery.CallerKey)),
	)

	if err := h.notifier.Handle(c.Request.Context(), event); err != nil {
		if errors.Is(err, usecase.ErrInvalidMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "event_id": event.EventID})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message", "event_id": event.EventID})
		return
	}
	c.Status(http.StatusNoContent)
}
