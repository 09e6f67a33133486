package routes

import (
	"github.com/ergin84/ShareLand/src/controllers"
	"github.com/ergin84/ShareLand/src/middleware"
	"github.com/ergin84/ShareLand/src/services"
	"github.com/gin-gonic/gin"
)

func SetupEvidenceRoutes(router *gin.Engine, service *services.EvidenceService, audit *services.AuditService) {
	controller := controllers.NewEvidenceController(service, audit)

	evidence := router.Group("/archaeological-evidence")
	evidence.Use(middleware.AuthMiddleware())
	{
		evidence.GET("", controller.ListEvidences)
		evidence.GET("/:id", controller.GetEvidenceDetail)
		evidence.POST("", controller.CreateEvidence)
		evidence.PUT("/:id", controller.UpdateEvidence)
		evidence.DELETE("/:id", controller.DeleteEvidence)
	}
}
