package routes

import (
	"github.com/ergin84/ShareLand/src/controllers"
	"github.com/ergin84/ShareLand/src/middleware"
	"github.com/ergin84/ShareLand/src/services"
	"github.com/gin-gonic/gin"
)

func SetupBrowserRoutes(router *gin.Engine, service *services.BrowserService) {
	controller := controllers.NewBrowserController(service)

	// Staff only
	browser := router.Group("/browser")
	browser.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		browser.GET("/tables", controller.ListTables)
		browser.GET("", controller.BrowseTable)
	}
}
