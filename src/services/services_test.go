package services

import (
	"testing"

	"github.com/ergin84/ShareLand/src/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see a different empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
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
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, staff bool) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Username: username,
		Email:    username + "@example.org",
		Password: string(hashed),
		IsStaff:  staff,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}
