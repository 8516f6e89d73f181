package auth

import (
	"go-absensi/internal/guard"
	"go-absensi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, g *guard.Guard) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", guard.Require(g, guard.GateAuthenticated), middleware.RateLimitByUser(2, 5), handler.Me)
		auth.POST("/change-password", guard.Require(g, guard.GateAuthenticated), handler.ChangePassword)
		auth.POST("/reset-request", guard.Require(g, guard.GateAuthenticated), handler.RequestReset)
		auth.GET("/reset-requests", guard.Require(g, guard.GateAdminOrOwner), handler.ListResetRequests)
		auth.POST("/reset-password", guard.Require(g, guard.GateAdminOrOwner), handler.ResetPassword)
		auth.POST("/register", guard.Require(g, guard.GateAdminOrOwner), handler.Register)
	}
}
