package routes

import (
	"github.com/ergin84/ShareLand/src/controllers"
	"github.com/ergin84/ShareLand/src/middleware"
	"github.com/ergin84/ShareLand/src/services"
	"github.com/gin-gonic/gin"
)

func SetupSiteRoutes(router *gin.Engine, service *services.SiteService, audit *services.AuditService) {
	controller := controllers.NewSiteController(service, audit)

	site := router.Group("/site")
	site.Use(middleware.AuthMiddleware())
	{
		site.GET("", controller.ListSites)
		site.GET("/:id", controller.GetSiteDetail)
		site.POST("", controller.CreateSite)
		site.PUT("/:id", controller.UpdateSite)
		site.DELETE("/:id", controller.DeleteSite)
	}
}
