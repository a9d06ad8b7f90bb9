package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/josuesanchez96/umessenger/internal/config"
	"github.com/josuesanchez96/umessenger/internal/core"
	"github.com/josuesanchez96/umessenger/internal/store"
)

// NewServer builds the HTTP server. The WebSocket endpoint is mounted on a
// plain mux: upgrading needs to hijack the connection, which gin's response
// writer refuses once headers are tracked. REST routes go through gin.
func NewServer(hub *core.Hub, st store.Store, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)

	userHandlers := NewUserHandlers(st, logger)
	router.POST("/api/username/check", userHandlers.CheckUsername)

	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", NewWSHandler(hub, logger))
	mux.Handle("/", router)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
