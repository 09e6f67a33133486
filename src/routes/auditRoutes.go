package routes

import (
	"github.com/ergin84/ShareLand/src/controllers"
	"github.com/ergin84/ShareLand/src/middleware"
	"github.com/ergin84/ShareLand/src/services"
	"github.com/gin-gonic/gin"
)

func SetupAuditRoutes(router *gin.Engine, service *services.AuditService) {
	controller := controllers.NewAuditController(service)

	// Staff only
	audit := router.Group("/audit-logs")
	audit.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		audit.GET("", controller.ListLogs)
		audit.GET("/export/csv", controller.ExportCSV)
		audit.GET("/export/xlsx", controller.ExportXLSX)
	}
}
