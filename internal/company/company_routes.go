package company

import (
	"go-absensi/internal/guard"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, g *guard.Guard) {
	companies := r.Group("/companies")
	companies.Use(guard.Require(g, guard.GateAdminOrOwner))
	{
		companies.GET("", h.GetAll)
		companies.GET("/:id", h.GetByID)
		companies.POST("", h.Create)
		companies.PUT("/:id", h.Update)
		companies.DELETE("/:id", h.Delete)
	}
}
