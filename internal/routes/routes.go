// internal/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"printer-service/internal/config"
	"printer-service/internal/handler"
	"printer-service/internal/middleware"
	"printer-service/internal/service"
	"printer-service/internal/utils"
)

// Router holds all dependencies for routing
type Router struct {
	config       *config.Config
	logger       *zap.Logger
	printService *service.PrintService
}

// NewRouter creates a new router instance
func NewRouter(config *config.Config, logger *zap.Logger, printService *service.PrintService) *Router {
	return &Router{
		config:       config,
		logger:       logger,
		printService: printService,
	}
}

// SetupRouter creates and configures the Gin router
func (r *Router) SetupRouter() *gin.Engine {
	if r.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	r.addMiddleware(router)
	r.addRoutes(router)

	return router
}

// addMiddleware adds middleware to the router
func (r *Router) addMiddleware(router *gin.Engine) {
	router.Use(middleware.RecoveryMiddleware(r.logger))
	router.Use(middleware.RequestIDMiddleware())

	serviceLogger := utils.NewServiceLogger(r.logger, "http-server")
	router.Use(middleware.LoggingMiddleware(serviceLogger))

	router.Use(middleware.CORSMiddleware(&r.config.Server))

	r.logger.Info("Middleware configured")
}

// addRoutes sets up all application routes
func (r *Router) addRoutes(router *gin.Engine) {
	healthHandler := handler.NewHealthHandler(r.printService, r.config, r.logger)
	printHandler := handler.NewPrintHandler(r.printService, r.logger)

	r.addHealthRoutes(router, healthHandler)

	apiV1 := router.Group("/api/v1")
	r.addPrinterRoutes(apiV1, printHandler)

	r.logger.Info("All routes configured successfully")
}

// addHealthRoutes sets up health check routes
func (r *Router) addHealthRoutes(router *gin.Engine, handler *handler.HealthHandler) {
	router.GET("/health", handler.Health)
	router.GET("/live", handler.Live)
	router.GET("/ready", handler.Ready)
}

// addPrinterRoutes sets up printer job routes
func (r *Router) addPrinterRoutes(api *gin.RouterGroup, handler *handler.PrintHandler) {
	printer := api.Group("/printer")
	{
		printer.POST("/text", handler.PrintText)
		printer.POST("/receipt", handler.PrintReceipt)
		printer.POST("/barcode", handler.PrintBarcode)
		printer.POST("/image", handler.PrintImage)
		printer.POST("/feed", handler.Feed)
		printer.POST("/reset", handler.Reset)
		printer.GET("/status", handler.Status)
	}
}
