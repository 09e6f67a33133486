package services

import (
	"testing"

	"github.com/ergin84/ShareLand/src/dtos"
	"github.com/ergin84/ShareLand/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int         { return &v }
func floatp(v float64) *float64 { return &v }

func TestCreateSiteRequiresName(t *testing.T) {
	db := newTestDB(t)
	service := NewSiteService(db)

	_, _, err := service.CreateSite(dtos.SiteInput{}, nil)
	assert.Error(t, err)
}

func TestCreateSiteLatLonOverridesGeometry(t *testing.T) {
	db := newTestDB(t)
	service := NewSiteService(db)

	site, _, err := service.CreateSite(dtos.SiteInput{
		SiteName: "Veii",
		Lat:      floatp(42.023),
		Lon:      floatp(12.383),
		Geometry: "((1.0,1.0),(2.0,2.0))",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "((12.383000,42.023000))", site.Geometry)
}

func TestCreateSiteWithSections(t *testing.T) {
	db := newTestDB(t)
	service := NewSiteService(db)

	chronology := models.Chronology{ChronologicalPeriod: "Iron Age"}
	require.NoError(t, db.Create(&chronology).Error)
	functionalClass := models.FunctionalClass{DescFunctionalClass: "Settlement"}
	require.NoError(t, db.Create(&functionalClass).Error)
	investigationType := models.InvestigationType{DescInvestigationType: "Survey"}
	require.NoError(t, db.Create(&investigationType).Error)

	site, warnings, err := service.CreateSite(dtos.SiteInput{
		SiteName:              "Veii",
		AncientPlaceName:      "Veii",
		ContemporaryPlaceName: "Isola Farnese",
		FunctionalClassID:     &functionalClass.Id,
		ChronologyID:          &chronology.Id,
		ProjectName:           "South Etruria Survey",
		Periodo:               "1950-1970",
		InvestigationTypeID:   &investigationType.Id,
		Bibliographies: []dtos.BibliographyInput{
			{Title: "Ward-Perkins 1961", Author: "Ward-Perkins", Year: intp(1961)},
		},
		Docs: []dtos.DocInput{{Name: "Survey notebook", Year: intp(1958)}},
	}, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	var toponymy models.SiteToponymy
	require.NoError(t, db.Where("id_site = ?", site.Id).First(&toponymy).Error)
	assert.Equal(t, "Isola Farnese", toponymy.ContemporaryPlaceName)

	var interpretation models.Interpretation
	require.NoError(t, db.Where("id_site = ?", site.Id).First(&interpretation).Error)
	assert.Equal(t, 1, interpretation.ChronologyCertaintyLevel)

	var investigation models.Investigation
	require.NoError(t, db.Where("project_name = ?", "South Etruria Survey").First(&investigation).Error)
	assert.Equal(t, "1950-1970", investigation.Period)

	var biblioLinks []models.SiteBibliography
	require.NoError(t, db.Where("id_site = ?", site.Id).Find(&biblioLinks).Error)
	assert.Len(t, biblioLinks, 1)
}

func TestUpdateSiteReplacesChildCollections(t *testing.T) {
	db := newTestDB(t)
	service := NewSiteService(db)

	site, _, err := service.CreateSite(dtos.SiteInput{
		SiteName: "Veii",
		Bibliographies: []dtos.BibliographyInput{
			{Title: "First"},
			{Title: "Second"},
		},
	}, nil)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.SiteBibliography{}).Where("id_site = ?", site.Id).Count(&count).Error)
	require.EqualValues(t, 2, count)

	_, _, err = service.UpdateSite(1, true, site.Id, dtos.SiteInput{
		SiteName: "Veii",
		Bibliographies: []dtos.BibliographyInput{
			{Title: "Only one now"},
		},
	}, nil)
	require.NoError(t, err)

	var links []models.SiteBibliography
	require.NoError(t, db.Preload("Bibliography").Where("id_site = ?", site.Id).Find(&links).Error)
	require.Len(t, links, 1)
	assert.Equal(t, "Only one now", links[0].Bibliography.Title)
}

func TestUpdateSiteBlankEntriesAreDropped(t *testing.T) {
	db := newTestDB(t)
	service := NewSiteService(db)

	site, _, err := service.CreateSite(dtos.SiteInput{
		SiteName:       "Veii",
		Bibliographies: []dtos.BibliographyInput{{}, {Title: "Kept"}},
		Sources:        []dtos.SourceInput{{}},
	}, nil)
	require.NoError(t, err)

	var biblioCount, sourceCount int64
	require.NoError(t, db.Model(&models.SiteBibliography{}).Where("id_site = ?", site.Id).Count(&biblioCount).Error)
	require.NoError(t, db.Model(&models.SiteSources{}).Where("id_site = ?", site.Id).Count(&sourceCount).Error)
	assert.EqualValues(t, 1, biblioCount)
	assert.EqualValues(t, 0, sourceCount)
}

func TestReplaceInvestigationSharedByProjectName(t *testing.T) {
	db := newTestDB(t)
	service := NewSiteService(db)

	investigationType := models.InvestigationType{DescInvestigationType: "Survey"}
	require.NoError(t, db.Create(&investigationType).Error)

	input := dtos.SiteInput{
		SiteName:            "First site",
		ProjectName:         "Tiber Valley Project",
		Periodo:             "1997-2002",
		InvestigationTypeID: &investigationType.Id,
	}
	_, _, err := service.CreateSite(input, nil)
	require.NoError(t, err)

	input.SiteName = "Second site"
	input.Periodo = "2003-2008"
	_, _, err = service.CreateSite(input, nil)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Investigation{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var investigation models.Investigation
	require.NoError(t, db.Where("project_name = ?", "Tiber Valley Project").First(&investigation).Error)
	assert.Equal(t, "2003-2008", investigation.Period)
}

func TestCreateSiteMissingResearchIsWarning(t *testing.T) {
	db := newTestDB(t)
	service := NewSiteService(db)

	missing := 424242
	site, warnings, err := service.CreateSite(dtos.SiteInput{SiteName: "Orphan"}, &missing)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "research 424242 not found")

	var count int64
	require.NoError(t, db.Model(&models.SiteResearch{}).Where("id_site = ?", site.Id).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCanEditSite(t *testing.T) {
	db := newTestDB(t)
	service := NewSiteService(db)
	users := NewUserService(db, nil)
	researches := NewResearchService(db, users)

	owner := createTestUser(t, db, "owner", false)
	other := createTestUser(t, db, "other", false)

	research, _, err := researches.CreateResearch(owner.Id, dtos.ResearchInput{
		Title:  "Owning research",
		Author: dtos.AuthorSpec{IsSelf: true},
	})
	require.NoError(t, err)

	linked, _, err := service.CreateSite(dtos.SiteInput{SiteName: "Linked"}, &research.Id)
	require.NoError(t, err)
	unlinked, _, err := service.CreateSite(dtos.SiteInput{SiteName: "Unlinked"}, nil)
	require.NoError(t, err)

	allowed, err := service.CanEditSite(linked.Id, owner.Id, false)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = service.CanEditSite(linked.Id, other.Id, false)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = service.CanEditSite(linked.Id, other.Id, true)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = service.CanEditSite(unlinked.Id, other.Id, false)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = service.CanEditSite(unlinked.Id, 0, false)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestListSitesByResearch(t *testing.T) {
	db := newTestDB(t)
	service := NewSiteService(db)
	users := NewUserService(db, nil)
	researches := NewResearchService(db, users)
	owner := createTestUser(t, db, "owner", false)

	research, _, err := researches.CreateResearch(owner.Id, dtos.ResearchInput{
		Title:  "Scoped",
		Author: dtos.AuthorSpec{IsSelf: true},
	})
	require.NoError(t, err)

	_, _, err = service.CreateSite(dtos.SiteInput{SiteName: "In scope"}, &research.Id)
	require.NoError(t, err)
	_, _, err = service.CreateSite(dtos.SiteInput{SiteName: "Out of scope"}, nil)
	require.NoError(t, err)

	sites, err := service.ListSites(&research.Id)
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, "In scope", sites[0].SiteName)

	sites, err = service.ListSites(nil)
	require.NoError(t, err)
	assert.Len(t, sites, 2)
}

func TestSiteDetail(t *testing.T) {
	db := newTestDB(t)
	service := NewSiteService(db)

	site, _, err := service.CreateSite(dtos.SiteInput{
		SiteName:         "Veii",
		Lat:              floatp(42.0),
		Lon:              floatp(12.4),
		AncientPlaceName: "Veii",
	}, nil)
	require.NoError(t, err)

	detail, err := service.SiteDetail(site.Id, 1, false)
	require.NoError(t, err)
	assert.Equal(t, "Veii", detail.Site.SiteName)
	require.NotNil(t, detail.Toponymy)
	require.Len(t, detail.Coordinates, 1)
	assert.InDelta(t, 42.0, detail.Coordinates[0][0], 1e-6)
	assert.True(t, detail.CanEdit)
}
