package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"amr-fleet-monitor/internal/mw"
	"amr-fleet-monitor/internal/store"
)

// Options configures the router's middleware and optional features.
type Options struct {
	Webpush         *webpush.Options
	RateLimitPerSec float64
	RateLimitBurst  int
	StatsCacheTTL   time.Duration
	Logger          *zap.Logger
}

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, opts Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, opts.Webpush, opts.Logger)

	if opts.RateLimitPerSec <= 0 {
		opts.RateLimitPerSec = 10
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 5
	}

	rateLimiter := mw.RateLimiter(rate.Limit(opts.RateLimitPerSec), opts.RateLimitBurst)
	caching := mw.Cache(cache.New(opts.StatsCacheTTL, 10*time.Minute), opts.StatsCacheTTL)

	r.GET("/", handler.Root)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/robots", handler.GetRobots)
		api.GET("/missions", handler.GetMissions)
		api.GET("/stats", caching, handler.GetStats)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
