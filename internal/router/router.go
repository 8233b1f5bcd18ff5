package router

import (
	"net/http"

	"github.com/Aarbaz/perfect-management/internal/config"
	"github.com/Aarbaz/perfect-management/internal/handler"
	"github.com/Aarbaz/perfect-management/internal/middleware"
	"github.com/Aarbaz/perfect-management/internal/repository"
	"github.com/Aarbaz/perfect-management/internal/service"
	"github.com/Aarbaz/perfect-management/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRouter wires repositories, services and handlers onto a Gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB, log *logrus.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	vehicleRepo := repository.NewVehicleRepository(db)
	userRepo := repository.NewUserRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	dashService := service.NewDashboardService(vehicleRepo)
	exportService := service.NewExportService()

	authHandler := handler.NewAuthHandler(authService, userRepo, cfg.Upload.Dir)
	vehicleHandler := handler.NewVehicleHandler(vehicleRepo, cfg.App.PageSize)
	dashHandler := handler.NewDashboardHandler(dashService, exportService, vehicleRepo)
	reportHandler := handler.NewReportHandler(vehicleRepo, exportService)

	// uploaded profile images
	r.Static("/uploads", cfg.Upload.Dir)

	r.GET("/health", func(c *gin.Context) {
		util.Success(c, http.StatusOK, "Vehicle Management API is running", nil)
	})

	// public auth endpoints
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	// everything else requires a session token
	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(authService))

	protected.GET("/auth/profile", authHandler.GetProfile)
	protected.PUT("/auth/profile", authHandler.UpdateProfile)
	protected.PUT("/auth/password", authHandler.ChangePassword)
	protected.POST("/auth/profile-image", authHandler.UploadProfileImage)

	protected.GET("/vehicles", vehicleHandler.List)
	protected.POST("/vehicles", vehicleHandler.Create)
	protected.GET("/vehicles/stats", vehicleHandler.Stats)
	protected.GET("/vehicles/:id", vehicleHandler.GetByID)
	protected.PUT("/vehicles/:id", vehicleHandler.Update)
	protected.DELETE("/vehicles/:id", vehicleHandler.Delete)

	protected.GET("/dashboard-summary", dashHandler.Summary)
	protected.GET("/dashboard-daily-summary", dashHandler.DailySummary)
	protected.GET("/dashboard-weekly-stats", dashHandler.WeeklyStats)
	protected.GET("/dashboard-monthly-stats", dashHandler.MonthlyStats)
	protected.GET("/dashboard-export/:format", dashHandler.ExportDaily)

	protected.GET("/reports-filter", reportHandler.Filter)
	protected.GET("/reports-export/:format", reportHandler.ExportFiltered)

	r.NoRoute(func(c *gin.Context) {
		util.Error(c, http.StatusNotFound, "Route not found")
	})

	return r
}
