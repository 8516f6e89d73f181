package employeetype

import (
	"go-absensi/internal/guard"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, g *guard.Guard) {
	types := r.Group("/employee-types")
	types.Use(guard.Require(g, guard.GateAdminOrOwner))
	{
		types.GET("", h.GetAll)
		types.GET("/:id", h.GetByID)
		types.POST("", h.Create)
		types.PUT("/:id", h.Update)
	}
}
