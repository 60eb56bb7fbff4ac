package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/komalrathore0521/BookVenue/internal/booking"
	"github.com/komalrathore0521/BookVenue/internal/config"
	"github.com/komalrathore0521/BookVenue/internal/venue"
)

type Server struct {
	router  *gin.Engine
	http    *http.Server
	limiter *RateLimiter
	config  *config.Config
}

// New builds the HTTP server. db is used for health checks only.
func New(cfg *config.Config, db Pinger, venues venue.Service, bookings booking.Service) *Server {
	limiter := NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 3*time.Minute)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())

	router.GET("/health", Health(db))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	api := router.Group("/api")
	api.Use(limiter.Middleware())
	venue.NewHandler(venues).RegisterRoutes(api)
	booking.NewHandler(bookings).RegisterRoutes(api)

	return &Server{
		router:  router,
		limiter: limiter,
		config:  cfg,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
