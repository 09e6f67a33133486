package routes

import (
	"github.com/ergin84/ShareLand/src/controllers"
	"github.com/ergin84/ShareLand/src/middleware"
	"github.com/ergin84/ShareLand/src/services"
	"github.com/gin-gonic/gin"
)

func SetupResearchRoutes(router *gin.Engine, service *services.ResearchService, audit *services.AuditService) {
	controller := controllers.NewResearchController(service, audit)

	// Public routes
	router.GET("/catalog", controller.Catalog)
	router.GET("/home-stats", controller.HomeStats)

	// Protected routes
	research := router.Group("/research")
	research.Use(middleware.AuthMiddleware())
	{
		research.GET("", controller.ListResearch)
		research.GET("/mine", controller.ListMyResearch)
		research.GET("/:id", controller.GetResearchDetail)
		research.POST("", controller.CreateResearch)
		research.PUT("/:id", controller.UpdateResearch)
		research.DELETE("/:id", controller.DeleteResearch)

		// Shapefile preview for the upload form
		research.POST("/shapefile-preview", controller.PreviewShapefile)
	}
}
