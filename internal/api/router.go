package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	prom "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"shepherd-laundry/config"
	"shepherd-laundry/internal/metrics"
	"shepherd-laundry/internal/mw"
	"shepherd-laundry/internal/store"
)

// NewRouter creates and configures a new Gin router. The returned func releases
// the router's store subscriptions. reg may be nil, in which case /metrics is
// not served.
func NewRouter(app *store.App, webpushOptions *webpush.Options, server config.ServerConfig, reg *prom.Registry) (*gin.Engine, func()) {
	r := gin.Default()

	handler := NewHandler(app, webpushOptions)

	// Initialize middleware
	rateLimiter := mw.RateLimiter(rate.Limit(server.RateLimitPerSec), server.RateLimitBurst)

	// Cached responses are dropped as soon as any store changes, so the TTL only
	// bounds memory for idle clients.
	responses := mw.NewResponseCache(server.CacheTTL)
	stopFlush := mw.FlushOnChange(responses, app)
	caching := mw.Cache(responses)

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/items", caching, handler.GetItems)
		api.GET("/cycles", caching, handler.GetCycles)
		api.GET("/drying", caching, handler.GetDrying)
		api.GET("/consumables", caching, handler.GetConsumables)
		api.GET("/members", caching, handler.GetMembers)

		api.PUT("/items", handler.PutItems)
		api.PUT("/cycles", handler.PutCycles)
		api.PUT("/drying", handler.PutDrying)
		api.PUT("/consumables", handler.PutConsumables)
		api.PUT("/members", handler.PutMembers)

		views := api.Group("/views", caching)
		views.GET("/hamper", handler.GetHamper)
		views.GET("/active-cycles", handler.GetActiveCycles)
		views.GET("/low-consumables", handler.GetLowConsumables)
		views.GET("/urgent", handler.GetUrgent)
		views.GET("/overdue", handler.GetOverdue)

		api.GET("/labels", caching, handler.GetLabels)
		api.GET("/events/:name", handler.GetEvents)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	if reg != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(reg)))
	}

	return r, stopFlush
}
