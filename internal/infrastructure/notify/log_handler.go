package notify

import (
	"context"

	"go.uber.org/zap"

	"opsbus/internal/domain/event"
)

// LogHandler is the NOTIFICATION consumer: it records who should be told
// about an event. Content rendering lives outside this service; the bus
// only guarantees delivery of the fact.
type LogHandler struct {
	log *zap.Logger
}

func NewLogHandler(log *zap.Logger) *LogHandler {
	return &LogHandler{log: log}
}

func (h *LogHandler) Handle(_ context.Context, e event.Event) error {
	h.log.Info("notification",
		zap.String("event_id", e.ID),
		zap.String("event_type", e.Type),
		zap.String("entity_type", e.EntityType),
		zap.String("entity_id", e.EntityID),
		zap.Strings("target_user_ids", e.TargetUserIDs),
	)
	return nil
}
