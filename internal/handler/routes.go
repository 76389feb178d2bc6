package handler

import (
	"github.com/dafibh/drivelog/drivelog-backend/internal/middleware"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, authHandler *AuthHandler, recordHandler *DailyRecordHandler, vehicleHandler *CarConfigHandler, analysisHandler *AnalysisHandler, wsHandler *WebSocketHandler) {
	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", OpenAPI3Handler(DefaultServers))

	// WebSocket change feed authenticates through the token query parameter
	e.GET("/ws", wsHandler.HandleWS)

	// API version 1
	api := e.Group("/api/v1")

	// Auth routes run before the workspace exists on first login
	auth := api.Group("/auth")
	auth.Use(authMiddleware.Authenticate())
	auth.POST("/callback", authHandler.Callback)
	auth.GET("/me", authHandler.Me)
	auth.PATCH("/me", authHandler.UpdateMe)
	auth.POST("/logout", authHandler.Logout)

	// Everything else needs a provisioned workspace and is rate limited per workspace
	protected := []echo.MiddlewareFunc{
		authMiddleware.Authenticate(),
		middleware.RequireWorkspace(),
		middleware.RateLimitMiddleware(rateLimiter),
	}

	records := api.Group("/records", protected...)
	records.GET("", recordHandler.ListRecords)
	records.POST("", recordHandler.SubmitEarnings)
	records.GET("/:id", recordHandler.GetRecord)
	records.PUT("/:id", recordHandler.UpdateRecord)
	records.DELETE("/:id", recordHandler.DeleteRecord)
	records.POST("/:id/expenses", recordHandler.AddExpense)
	records.DELETE("/:id/expenses/:expenseId", recordHandler.DeleteExpense)
	records.POST("/:id/extra-earnings", recordHandler.AddExtraEarning)
	records.DELETE("/:id/extra-earnings/:earningId", recordHandler.DeleteExtraEarning)

	vehicles := api.Group("/vehicles", protected...)
	vehicles.GET("", vehicleHandler.ListVehicles)
	vehicles.POST("", vehicleHandler.CreateVehicle)
	vehicles.GET("/active", vehicleHandler.GetActiveVehicle)
	vehicles.PUT("/:id", vehicleHandler.UpdateVehicle)
	vehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)
	vehicles.POST("/:id/activate", vehicleHandler.ActivateVehicle)
	vehicles.POST("/:id/photo", vehicleHandler.UploadPhoto)
	vehicles.DELETE("/:id/photo", vehicleHandler.DeletePhoto)

	analysis := api.Group("/analysis", protected...)
	analysis.GET("/day", analysisHandler.GetDay)
	analysis.GET("/week", analysisHandler.GetWeek)
	analysis.GET("/month", analysisHandler.GetMonth)
	analysis.GET("/categories", analysisHandler.GetCategories)

	api.GET("/categories", analysisHandler.GetDefaultCategories, protected...)
}
