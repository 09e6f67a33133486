package services

import (
	"testing"

	"github.com/ergin84/ShareLand/src/dtos"
	"github.com/ergin84/ShareLand/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func researchServices(t *testing.T) (*ResearchService, *models.User) {
	db := newTestDB(t)
	users := NewUserService(db, nil)
	service := NewResearchService(db, users)
	submitter := createTestUser(t, db, "submitter", false)
	return service, submitter
}

func TestCreateResearchSelfAuthor(t *testing.T) {
	service, submitter := researchServices(t)

	research, warnings, err := service.CreateResearch(submitter.Id, dtos.ResearchInput{
		Title:  "Roman settlement patterns",
		Year:   "2024",
		Author: dtos.AuthorSpec{IsSelf: true},
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, submitter.Id, *research.SubmittedBy)

	var links []models.ResearchAuthor
	require.NoError(t, service.db.Where("id_research = ?", research.Id).Find(&links).Error)
	require.Len(t, links, 1)
	assert.Equal(t, submitter.Id, *links[0].IdAuthor)
}

func TestCreateResearchRequiresTitle(t *testing.T) {
	service, submitter := researchServices(t)

	_, _, err := service.CreateResearch(submitter.Id, dtos.ResearchInput{
		Author: dtos.AuthorSpec{IsSelf: true},
	})
	assert.Error(t, err)
}

func TestCreateResearchRejectsBadGeometry(t *testing.T) {
	service, submitter := researchServices(t)

	_, _, err := service.CreateResearch(submitter.Id, dtos.ResearchInput{
		Title:    "Bad geometry",
		Geometry: "12.5,41.9",
		Author:   dtos.AuthorSpec{IsSelf: true},
	})
	assert.EqualError(t, err, "invalid geometry format")
}

func TestCreateResearchCoauthorFailureIsWarning(t *testing.T) {
	service, submitter := researchServices(t)

	research, warnings, err := service.CreateResearch(submitter.Id, dtos.ResearchInput{
		Title:  "With broken coauthor",
		Author: dtos.AuthorSpec{IsSelf: true},
		Coauthors: []dtos.AuthorSpec{
			{Name: "Anna", Surname: "Verdi", Email: "anna@unibo.it"},
			{Name: "Incomplete"},
		},
	})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "co-author 2 skipped")

	var count int64
	require.NoError(t, service.db.Model(&models.ResearchAuthor{}).
		Where("id_research = ?", research.Id).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestLinkAuthorPairIsIdempotent(t *testing.T) {
	service, submitter := researchServices(t)

	research, _, err := service.CreateResearch(submitter.Id, dtos.ResearchInput{
		Title:  "Duplicated author",
		Author: dtos.AuthorSpec{IsSelf: true},
		Coauthors: []dtos.AuthorSpec{
			{IsSelf: true},
		},
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, service.db.Model(&models.ResearchAuthor{}).
		Where("id_research = ?", research.Id).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCanEditResearch(t *testing.T) {
	ownerID := 5
	research := &models.Research{SubmittedBy: &ownerID}

	assert.True(t, CanEditResearch(research, 5, false))
	assert.True(t, CanEditResearch(research, 99, true))
	assert.False(t, CanEditResearch(research, 99, false))
	assert.False(t, CanEditResearch(&models.Research{}, 5, false))
}

func TestUpdateResearchOwnership(t *testing.T) {
	service, submitter := researchServices(t)
	other := createTestUser(t, service.db, "other", false)
	staff := createTestUser(t, service.db, "staff", true)

	research, _, err := service.CreateResearch(submitter.Id, dtos.ResearchInput{
		Title:  "Original",
		Author: dtos.AuthorSpec{IsSelf: true},
	})
	require.NoError(t, err)

	_, _, err = service.UpdateResearch(other.Id, false, research.Id, dtos.ResearchInput{Title: "Hijacked"})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, _, err := service.UpdateResearch(staff.Id, true, research.Id, dtos.ResearchInput{Title: "Renamed by staff"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed by staff", updated.Title)

	updated, _, err = service.UpdateResearch(submitter.Id, false, research.Id, dtos.ResearchInput{Title: "Renamed by owner"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed by owner", updated.Title)
}

func TestDeleteResearchOwnership(t *testing.T) {
	service, submitter := researchServices(t)
	other := createTestUser(t, service.db, "other", false)

	research, _, err := service.CreateResearch(submitter.Id, dtos.ResearchInput{
		Title:  "To delete",
		Author: dtos.AuthorSpec{IsSelf: true},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, service.DeleteResearch(other.Id, false, research.Id), ErrForbidden)
	require.NoError(t, service.DeleteResearch(submitter.Id, false, research.Id))

	var count int64
	require.NoError(t, service.db.Model(&models.Research{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSearchCatalog(t *testing.T) {
	service, submitter := researchServices(t)

	for _, title := range []string{"Etruscan necropolis survey", "Medieval castle study"} {
		_, _, err := service.CreateResearch(submitter.Id, dtos.ResearchInput{
			Title:    title,
			Keywords: "landscape",
			Author:   dtos.AuthorSpec{IsSelf: true},
		})
		require.NoError(t, err)
	}

	results, err := service.SearchCatalog("NECROPOLIS", 0, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Etruscan necropolis survey", results[0].Title)
	assert.False(t, results[0].CanEdit)

	results, err = service.SearchCatalog("landscape", 0, false)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = service.SearchCatalog("", submitter.Id, false)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	// Ordered by title.
	assert.Equal(t, "Etruscan necropolis survey", results[0].Title)
	assert.True(t, results[0].CanEdit)
}

func TestListResearchSummaries(t *testing.T) {
	service, submitter := researchServices(t)
	sites := NewSiteService(service.db)

	research, _, err := service.CreateResearch(submitter.Id, dtos.ResearchInput{
		Title:  "Harbour excavation",
		Author: dtos.AuthorSpec{IsSelf: true, Name: "Laura", Surname: "Conti"},
	})
	require.NoError(t, err)

	_, _, err = sites.CreateSite(dtos.SiteInput{SiteName: "Harbour mole"}, &research.Id)
	require.NoError(t, err)

	summaries, err := service.ListResearch(submitter.Id, false)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	summary := summaries[0]
	assert.Equal(t, research.Id, summary.ID)
	assert.Equal(t, "Harbour excavation", summary.Title)
	assert.EqualValues(t, 1, summary.SiteCount)
	assert.EqualValues(t, 0, summary.EvidenceCount)
	assert.True(t, summary.CanEdit)
	assert.NotEmpty(t, summary.AuthorNames)
	assert.Equal(t, "submitter", summary.SubmitterName)

	other, err := service.ListResearch(0, false)
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.False(t, other[0].CanEdit)
}

func TestResearchDetail(t *testing.T) {
	service, submitter := researchServices(t)
	sites := NewSiteService(service.db)

	research, _, err := service.CreateResearch(submitter.Id, dtos.ResearchInput{
		Title:    "Detailed",
		Geometry: "((12.0,41.0),(13.0,42.0))",
		Author:   dtos.AuthorSpec{IsSelf: true},
	})
	require.NoError(t, err)

	_, warnings, err := sites.CreateSite(dtos.SiteInput{SiteName: "Veii"}, &research.Id)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	detail, err := service.ResearchDetail(research.Id, submitter.Id, false)
	require.NoError(t, err)
	assert.True(t, detail.CanEdit)
	require.Len(t, detail.Sites, 1)
	assert.Equal(t, "Veii", detail.Sites[0].Site.SiteName)
	require.Len(t, detail.Authors, 1)
	assert.Equal(t, submitter.Id, detail.Authors[0].UserID)
	require.Len(t, detail.Coordinates, 2)
	assert.Equal(t, [2]float64{41.0, 12.0}, detail.Coordinates[0])
	require.NotNil(t, detail.Center)
	assert.InDelta(t, 41.5, detail.Center[0], 1e-9)
	assert.InDelta(t, 12.5, detail.Center[1], 1e-9)
}

func TestHomeStats(t *testing.T) {
	service, submitter := researchServices(t)

	_, _, err := service.CreateResearch(submitter.Id, dtos.ResearchInput{
		Title:  "Counted",
		Author: dtos.AuthorSpec{IsSelf: true},
	})
	require.NoError(t, err)

	inactive := models.User{Username: "ghost", Password: "x", IsActive: false}
	require.NoError(t, service.db.Create(&inactive).Error)

	stats, err := service.HomeStats()
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.ResearchCount)
	assert.EqualValues(t, 0, stats.SiteCount)
	assert.EqualValues(t, 1, stats.UserCount)
}
