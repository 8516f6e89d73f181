package app

import (
	"net/http"

	"go-absensi/internal/attendance"
	"go-absensi/internal/auth"
	"go-absensi/internal/company"
	"go-absensi/internal/employee"
	"go-absensi/internal/employeetype"
	"go-absensi/internal/guard"
	"go-absensi/internal/inventory"
	"go-absensi/internal/leave"
	"go-absensi/internal/messaging/kafka"
	"go-absensi/internal/shared/dateutil"
	"go-absensi/internal/shared/response"
	"go-absensi/internal/token"

	"github.com/gin-gonic/gin"
)

// registerModules merakit seluruh graph repo → service → handler → routes.
func (a *App) registerModules() error {
	loc := dateutil.AppLocation()

	issuer := token.NewIssuer(a.Config.JWTSecret, token.DefaultTTL)

	employeeRepo := employee.NewRepository(a.DB, a.SQLDB)
	g, err := guard.New(issuer, employee.NewGuardResolver(employeeRepo))
	if err != nil {
		return err
	}

	outboxRepo := kafka.NewOutboxRepository(a.SQLDB)

	authRepo := auth.NewRepository(a.DB, a.SQLDB)
	authService := auth.NewService(a.SQLDB, authRepo, employeeRepo, issuer)
	authHandler := auth.NewHandler(authService)

	typeRepo := employeetype.NewRepository(a.DB)
	typeHandler := employeetype.NewHandler(employeetype.NewService(typeRepo))

	employeeService := employee.NewServiceWithOutbox(a.SQLDB, employeeRepo, outboxRepo)
	employeeHandler := employee.NewHandler(employeeService)

	attendanceRepo := attendance.NewRepository(a.DB)
	attendanceService := attendance.NewService(attendanceRepo, employeeRepo, loc)
	attendanceHandler := attendance.NewHandlerWithRedis(attendanceService, a.Redis)

	ledger := attendance.NewLedgerWriter(a.SQLDB)
	leaveRepo := leave.NewRepository(a.DB, a.SQLDB)
	leaveService := leave.NewService(a.SQLDB, leaveRepo, ledger, outboxRepo, loc)
	leaveHandler := leave.NewHandler(leaveService)

	companyRepo := company.NewRepository(a.DB)
	companyHandler := company.NewHandler(company.NewService(companyRepo))

	inventoryService := inventory.NewService(inventory.NewRepository(a.DB), companyRepo)
	inventoryHandler := inventory.NewHandler(inventoryService)

	a.Router.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})

	api := a.Router.Group("/api/v1")
	auth.RegisterRoutes(api, authHandler, g)
	employeetype.RegisterRoutes(api, typeHandler, g)
	employee.RegisterRoutes(api, employeeHandler, g)
	attendance.RegisterRoutes(api, attendanceHandler, g, a.Redis)
	leave.RegisterRoutes(api, leaveHandler, g, a.Redis)
	company.RegisterRoutes(api, companyHandler, g)
	inventory.RegisterRoutes(api, inventoryHandler, g)

	return nil
}
