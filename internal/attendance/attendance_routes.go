package attendance

import (
	"go-absensi/internal/guard"
	"go-absensi/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, g *guard.Guard, rdb *redis.Client) {
	attendances := r.Group("/attendance")
	attendances.Use(guard.Require(g, guard.GateActiveEmployee))
	{
		attendances.POST("/check-in", middleware.Idempotency(rdb), h.CheckIn)
		attendances.POST("/check-out", middleware.Idempotency(rdb), h.CheckOut)
		attendances.GET("/me", h.ListMine)
	}

	dashboard := r.Group("/dashboard")
	dashboard.Use(guard.Require(g, guard.GateAdminOrOwner))
	{
		dashboard.GET("/admin-summary", h.AdminSummary)
	}
}
