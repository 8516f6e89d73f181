package inventory

import (
	"go-absensi/internal/guard"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, g *guard.Guard) {
	inv := r.Group("/inventory")
	inv.Use(guard.Require(g, guard.GateAdminOrOwner))
	{
		inv.POST("/stock-in", h.RecordStockIn)
		inv.GET("/stock-in", h.ListStockIn)
		inv.POST("/mortalities", h.RecordMortality)
		inv.GET("/mortalities", h.ListMortality)
		inv.POST("/stock-out", h.RecordStockOut)
		inv.GET("/stock-out", h.ListStockOut)
		inv.GET("/stock", h.StockReport)
		inv.GET("/mortality-rekap", h.MortalityRecap)
	}
}
