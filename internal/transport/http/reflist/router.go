package reflist

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RouterConfig carries what NewRouter wires around the handler.
type RouterConfig struct {
	Gate         AdminGate
	Logger       logrus.FieldLogger
	MaxBodyBytes int64

	// Metrics serves /metrics when set.
	Metrics http.Handler

	// Ready backs /healthz; nil means always ready.
	Ready func(ctx context.Context) error
}

func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(cfg.Logger), SecurityHeaders())

	r.GET("/healthz", func(c *gin.Context) {
		if cfg.Ready != nil {
			if err := cfg.Ready(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	admin := r.Group("/api/admin/settings", RequireAdmin(cfg.Gate), LimitBody(cfg.MaxBodyBytes))
	admin.GET("/:list", h.List)
	admin.POST("/:list", h.Reconcile)
	return r
}
