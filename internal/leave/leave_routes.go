package leave

import (
	"go-absensi/internal/guard"
	"go-absensi/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, g *guard.Guard, rdb *redis.Client) {
	mine := r.Group("/leave-requests")
	mine.Use(guard.Require(g, guard.GateActiveEmployee))
	{
		mine.POST("", middleware.Idempotency(rdb), h.Submit)
		mine.GET("/me", h.ListMine)
	}

	admin := r.Group("/leave-requests")
	admin.Use(guard.Require(g, guard.GateAdminOrOwner))
	{
		admin.GET("", h.Search)
		admin.GET("/:id", h.GetByID)
		admin.POST("/:id/decide", h.Decide)
	}
}
