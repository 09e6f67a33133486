package main

import (
	"log"
	"os"

	"github.com/ergin84/ShareLand/src/db"
	"github.com/ergin84/ShareLand/src/middleware"
	"github.com/ergin84/ShareLand/src/models"
	"github.com/ergin84/ShareLand/src/routes"
	"github.com/ergin84/ShareLand/src/seed"
	"github.com/ergin84/ShareLand/src/services"
	"github.com/ergin84/ShareLand/src/utils"
	"github.com/gin-gonic/gin"
)

func main() {

	// Database connection
	db, err := db.Connect()
	if err != nil {
		log.Fatalf("Error connecting to database: %v\n", err)
	}

	secretKey := os.Getenv("SECRET_KEY")
	if secretKey == "" {
		log.Fatal("SECRET_KEY environment variable is required")
	}
	middleware.SetSecretKey(secretKey)

	// Auto-migrate models
	if err := db.AutoMigrate(
		&models.User{}, &models.Profile{},
		&models.Country{}, &models.Region{}, &models.Province{}, &models.Municipality{},
		&models.BaseMap{}, &models.Physiography{}, &models.PositioningMode{},
		&models.PositionalAccuracy{}, &models.FirstDiscoveryMethod{},
		&models.Chronology{}, &models.FunctionalClass{}, &models.Typology{},
		&models.TypologyDetail{}, &models.SourcesType{}, &models.ImageType{},
		&models.ImageScale{}, &models.InvestigationType{},
		&models.Research{}, &models.ResearchAuthor{},
		&models.Bibliography{}, &models.Sources{}, &models.Image{},
		&models.Investigation{},
		&models.Site{}, &models.SiteToponymy{}, &models.Interpretation{},
		&models.SiteBibliography{}, &models.SiteSources{}, &models.SiteRelatedDocumentation{},
		&models.SiteInvestigation{}, &models.SiteResearch{},
		&models.ArchaeologicalEvidenceTypology{}, &models.ArchaeologicalEvidence{},
		&models.ArchEvBiblio{}, &models.ArchEvSources{}, &models.ArchEvRelatedDoc{},
		&models.ArchEvResearch{}, &models.SiteArchEvidence{},
		&models.AuditLog{}, &models.AccessLog{},
	); err != nil {
		log.Fatalf("Error during auto-migration: %v\n", err)
	}

	// Seed admin user and lookup tables
	seed.Seed(db)

	// Port and host setup
	host := os.Getenv("SERVER_HOST")
	if host == "" {
		host = ":8080"
	}

	// Gin router setup
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CorsMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.AccessLogMiddleware(db))

	// Uploaded media
	router.Static("/media", utils.MediaRoot())

	// Services setup
	mailer := utils.NewMailerFromEnv()
	userService := services.NewUserService(db, mailer)
	auditService := services.NewAuditService(db)
	researchService := services.NewResearchService(db, userService)
	siteService := services.NewSiteService(db)
	evidenceService := services.NewEvidenceService(db)
	lookupService := services.NewLookupService(db)
	browserService := services.NewBrowserService(db)

	// Routes setup
	routes.SetupUserRoutes(router, userService)
	routes.SetupResearchRoutes(router, researchService, auditService)
	routes.SetupSiteRoutes(router, siteService, auditService)
	routes.SetupEvidenceRoutes(router, evidenceService, auditService)
	routes.SetupLookupRoutes(router, lookupService)
	routes.SetupAuditRoutes(router, auditService)
	routes.SetupBrowserRoutes(router, browserService)
	routes.SetupHealthRoutes(router, db)

	// Server run
	if err := router.Run(host); err != nil {
		log.Fatalf("Error starting server on %s: %v\n", host, err)
	}
}
