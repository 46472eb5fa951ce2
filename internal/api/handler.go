package api

import (
	"errors"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"amr-fleet-monitor/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	webpush *webpush.Options
	log     *zap.Logger
}

// NewHandler creates a new API handler. A nil logger discards logs.
func NewHandler(s store.Store, webpushOptions *webpush.Options, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		store:   s,
		webpush: webpushOptions,
		log:     log,
	}
}

// storageFailure answers 500 with the raw storage message.
func (h *Handler) storageFailure(c *gin.Context, err error) {
	fields := []zap.Field{zap.String("path", c.FullPath()), zap.Error(err)}
	var storageErr *store.StorageError
	if errors.As(err, &storageErr) {
		fields = append(fields, zap.String("op", storageErr.Op))
	}
	h.log.Error("storage failure", fields...)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
