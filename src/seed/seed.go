package seed

import (
	"log"
	"os"

	"github.com/ergin84/ShareLand/src/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed creates the admin account and the baseline lookup rows. It is
// idempotent: existing rows are left untouched.
func Seed(db *gorm.DB) {
	seedAdmin(db)

	seedLookup(db, &models.Country{}, "name_country", "Italia", func() interface{} {
		return &models.Country{NameCountry: "Italia"}
	})

	baseMaps := []string{"IGM 1:25000", "CTR 1:10000", "Orthophoto", "Satellite imagery"}
	for _, name := range baseMaps {
		name := name
		seedLookup(db, &models.BaseMap{}, "desc_base_map", name, func() interface{} {
			return &models.BaseMap{DescBaseMap: name}
		})
	}

	physiographies := []string{"Plain", "Hill", "Mountain", "Coast", "Plateau", "Valley"}
	for _, name := range physiographies {
		name := name
		seedLookup(db, &models.Physiography{}, "desc_physiography", name, func() interface{} {
			return &models.Physiography{DescPhysiography: name}
		})
	}

	positioningModes := []string{"GPS survey", "Cartographic", "Aerial photo", "Remote sensing", "Bibliographic"}
	for _, name := range positioningModes {
		name := name
		seedLookup(db, &models.PositioningMode{}, "desc_positioning_mode", name, func() interface{} {
			return &models.PositioningMode{DescPositioningMode: name}
		})
	}

	seedPositionalAccuracies(db)

	discoveryMethods := []string{"Field survey", "Excavation", "Aerial photography", "Archival research", "Chance find", "Remote sensing"}
	for _, name := range discoveryMethods {
		name := name
		seedLookup(db, &models.FirstDiscoveryMethod{}, "desc_first_discovery_method", name, func() interface{} {
			return &models.FirstDiscoveryMethod{DescFirstDiscoveryMethod: name}
		})
	}

	seedChronologies(db)

	functionalClasses := []string{"Settlement", "Funerary", "Productive", "Religious", "Infrastructure", "Military"}
	for _, name := range functionalClasses {
		name := name
		seedLookup(db, &models.FunctionalClass{}, "desc_functional_class", name, func() interface{} {
			return &models.FunctionalClass{DescFunctionalClass: name}
		})
	}

	sourcesTypes := []string{"Bibliographic", "Archival", "Epigraphic", "Cartographic", "Oral"}
	for _, name := range sourcesTypes {
		name := name
		seedLookup(db, &models.SourcesType{}, "desc_sources_type", name, func() interface{} {
			return &models.SourcesType{DescSourcesType: name}
		})
	}

	imageTypes := []string{"Photograph", "Aerial photo", "Satellite image", "Drawing", "Map", "Plan"}
	for _, name := range imageTypes {
		name := name
		seedLookup(db, &models.ImageType{}, "desc_image_type", name, func() interface{} {
			return &models.ImageType{DescImageType: name}
		})
	}

	imageScales := []string{"1:100", "1:1000", "1:10000", "1:25000", "Not to scale"}
	for _, name := range imageScales {
		name := name
		seedLookup(db, &models.ImageScale{}, "desc_image_scale", name, func() interface{} {
			return &models.ImageScale{DescImageScale: name}
		})
	}

	investigationTypes := []string{"Survey", "Excavation", "Geophysical prospection", "Remote sensing", "Archival study"}
	for _, name := range investigationTypes {
		name := name
		seedLookup(db, &models.InvestigationType{}, "desc_investigation_type", name, func() interface{} {
			return &models.InvestigationType{DescInvestigationType: name}
		})
	}

	evidenceTypologies := []string{"Structure", "Necropolis", "Scatter of materials", "Infrastructure", "Quarry", "Wreck"}
	for _, name := range evidenceTypologies {
		name := name
		seedLookup(db, &models.ArchaeologicalEvidenceTypology{}, "desc_typology_archaeological_evidence", name, func() interface{} {
			return &models.ArchaeologicalEvidenceTypology{DescTypologyArchaeologicalEvidence: name}
		})
	}

	log.Println("Seeding completed")
}

func seedAdmin(db *gorm.DB) {
	var user models.User
	result := db.Where("username = ?", "admin").First(&user)
	if result.Error == nil {
		log.Println("User 'admin' already exists")
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
		log.Println("ADMIN_PASSWORD not set, using default")
	}
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	newUser := models.User{
		Username: "admin",
		Email:    os.Getenv("ADMIN_EMAIL"),
		Password: string(hashedPassword),
		IsStaff:  true,
		IsActive: true,
	}
	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Failed to create admin user: %v\n", err)
		return
	}
	log.Println("User 'admin' created")
}

func seedLookup(db *gorm.DB, model interface{}, column, value string, build func() interface{}) {
	var count int64
	if err := db.Model(model).Where(column+" = ?", value).Count(&count).Error; err != nil {
		log.Printf("Failed to check %s %q: %v\n", column, value, err)
		return
	}
	if count > 0 {
		return
	}
	if err := db.Create(build()).Error; err != nil {
		log.Printf("Failed to create %s %q: %v\n", column, value, err)
	}
}

func seedPositionalAccuracies(db *gorm.DB) {
	accuracies := []models.PositionalAccuracy{
		{Degree: intPtr(1), Description: "Exact position", PositionType: "point"},
		{Degree: intPtr(2), Description: "Approximate position within 100 m", PositionType: "point"},
		{Degree: intPtr(3), Description: "Generic area", PositionType: "area"},
		{Degree: intPtr(4), Description: "Municipality level only", PositionType: "area"},
	}
	for _, acc := range accuracies {
		acc := acc
		seedLookup(db, &models.PositionalAccuracy{}, "description", acc.Description, func() interface{} {
			return &acc
		})
	}
}

func seedChronologies(db *gorm.DB) {
	chronologies := []models.Chronology{
		{ChronologicalPeriod: "Prehistory", Start: intPtr(-10000), Stop: intPtr(-3000)},
		{ChronologicalPeriod: "Bronze Age", Start: intPtr(-2300), Stop: intPtr(-950)},
		{ChronologicalPeriod: "Iron Age", Start: intPtr(-950), Stop: intPtr(-509)},
		{ChronologicalPeriod: "Archaic period", Start: intPtr(-600), Stop: intPtr(-480)},
		{ChronologicalPeriod: "Roman Republican", Start: intPtr(-509), Stop: intPtr(-27)},
		{ChronologicalPeriod: "Roman Imperial", Start: intPtr(-27), Stop: intPtr(476)},
		{ChronologicalPeriod: "Late Antiquity", Start: intPtr(284), Stop: intPtr(640)},
		{ChronologicalPeriod: "Early Middle Ages", Start: intPtr(476), Stop: intPtr(1000)},
		{ChronologicalPeriod: "Middle Ages", Start: intPtr(1000), Stop: intPtr(1492)},
		{ChronologicalPeriod: "Modern period", Start: intPtr(1492), Stop: intPtr(1815)},
		{ChronologicalPeriod: "Contemporary", Start: intPtr(1815), Stop: nil},
	}
	for _, chrono := range chronologies {
		chrono := chrono
		seedLookup(db, &models.Chronology{}, "chronological_period", chrono.ChronologicalPeriod, func() interface{} {
			return &chrono
		})
	}
}

func intPtr(v int) *int { return &v }
