package router

import (
	"github.com/capstonec242/Tabungin-API/internal/config"
	"github.com/capstonec242/Tabungin-API/internal/handler"
	"github.com/capstonec242/Tabungin-API/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine, middleware and the API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// uploaded profile photos
	if cfg.Upload.Dir != "" {
		r.Static("/uploads", cfg.Upload.Dir)
	}

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	// registration and login do not require a token
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)

	userHandler := handler.NewUserHandler(db, cfg.Security.BcryptCost, cfg.Upload.Dir)
	protected.GET("/users/:userId", userHandler.GetUser)
	protected.PUT("/users/:userId", userHandler.UpdateUser)
	protected.PUT("/users/:userId/photo", userHandler.UpdatePhoto)
	protected.DELETE("/users/:userId", userHandler.DeleteUser)

	savingHandler := handler.NewSavingHandler(db)
	protected.GET("/savings/:userId", savingHandler.GetSavings)
	protected.PUT("/savings/:userId/add", savingHandler.AddSavings)
	protected.PUT("/savings/:userId/reduce", savingHandler.ReduceSavings)
	protected.GET("/savings/:userId/:savingId/:category", savingHandler.GetCategory)
	protected.PUT("/savings/:userId/:savingId/:transactionId", savingHandler.UpdateTransaction)
	protected.DELETE("/savings/:userId/:savingId/:transactionId", savingHandler.DeleteTransaction)

	budgetHandler := handler.NewBudgetHandler(db)
	protected.POST("/savings/:userId/:savingId/budget", budgetHandler.AddBudget)
	protected.PUT("/savings/:userId/:savingId/budget/:budgetId", budgetHandler.UpdateBudget)
	protected.DELETE("/savings/:userId/:savingId/budget/:budgetId", budgetHandler.DeleteBudget)

	goalHandler := handler.NewGoalHandler(db)
	protected.POST("/goals/:userId/:savingId", goalHandler.AddGoal)
	protected.GET("/goals/:userId/:savingId", goalHandler.GetGoals)
	protected.PUT("/goals/:userId/:savingId/:goalId", goalHandler.UpdateGoal)
	protected.DELETE("/goals/:userId/:savingId/:goalId", goalHandler.DeleteGoal)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	logHandler := handler.NewLogHandler(db, cfg.App.PageSize)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
