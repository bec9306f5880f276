package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"opsbus/internal/app/http/handler"
	"opsbus/internal/app/http/middleware"
)

func NewRouter(h *handler.Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		middleware.ZapLogger(log),
		middleware.ZapRecovery(log),
	)

	r.GET("/health", h.Health)

	r.POST("/rpc/publishEvent", h.PublishEvent)
	r.POST("/rpc/publishBulkEvents", h.PublishBulkEvents)
	r.GET("/rpc/eventStatus/:id", h.GetEventStatus)

	r.GET("/events", h.EventList)
	r.GET("/events/:id", h.EventGet)
	r.GET("/stats/events", h.EventStats)

	admin := r.Group("/admin")
	admin.POST("/subscriptions", h.SubscriptionCreate)
	admin.GET("/subscriptions", h.SubscriptionList)
	admin.GET("/subscriptions/:id", h.SubscriptionGet)
	admin.PUT("/subscriptions/:id", h.SubscriptionUpdate)
	admin.POST("/subscriptions/:id/activate", h.SubscriptionActivate)
	admin.POST("/subscriptions/:id/deactivate", h.SubscriptionDeactivate)
	admin.POST("/events/:id/replay", h.EventReplay)

	return r
}
