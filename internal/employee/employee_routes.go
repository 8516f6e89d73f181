package employee

import (
	"go-absensi/internal/guard"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, g *guard.Guard) {
	employees := r.Group("/employees")
	employees.Use(guard.Require(g, guard.GateAdminOrOwner))
	{
		employees.GET("", h.GetAll)
		employees.GET("/:id", h.GetByID)
		employees.POST("", h.Create)
		employees.PUT("/:id", h.Update)
		employees.PATCH("/:id/status", h.SetStatus)
	}
}
