package routes

import (
	"github.com/ergin84/ShareLand/src/controllers"
	"github.com/ergin84/ShareLand/src/middleware"
	"github.com/ergin84/ShareLand/src/services"
	"github.com/gin-gonic/gin"
)

func SetupLookupRoutes(router *gin.Engine, service *services.LookupService) {
	controller := controllers.NewLookupController(service)

	lookups := router.Group("/lookups")
	lookups.Use(middleware.AuthMiddleware())
	{
		lookups.GET("/countries", controller.GetCountries)
		lookups.GET("/regions", controller.GetRegions)
		lookups.GET("/provinces", controller.GetProvinces)
		lookups.GET("/municipalities", controller.GetMunicipalities)
		lookups.GET("/base-maps", controller.GetBaseMaps)
		lookups.GET("/physiographies", controller.GetPhysiographies)
		lookups.GET("/positioning-modes", controller.GetPositioningModes)
		lookups.GET("/positional-accuracies", controller.GetPositionalAccuracies)
		lookups.GET("/first-discovery-methods", controller.GetFirstDiscoveryMethods)
		lookups.GET("/chronologies", controller.GetChronologies)
		lookups.GET("/functional-classes", controller.GetFunctionalClasses)
		lookups.GET("/sources-types", controller.GetSourcesTypes)
		lookups.GET("/image-types", controller.GetImageTypes)
		lookups.GET("/image-scales", controller.GetImageScales)
		lookups.GET("/investigation-types", controller.GetInvestigationTypes)
		lookups.GET("/evidence-typologies", controller.GetEvidenceTypologies)

		// Dependent dropdowns
		lookups.GET("/load-typologies", controller.LoadTypologies)
		lookups.GET("/load-typology-details", controller.LoadTypologyDetails)
		lookups.GET("/load-provinces", controller.LoadProvinces)
		lookups.GET("/load-municipalities", controller.LoadMunicipalities)
	}
}
