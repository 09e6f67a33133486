package services

import (
	"testing"

	"github.com/ergin84/ShareLand/src/dtos"
	"github.com/ergin84/ShareLand/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createEvidenceTypology(t *testing.T, db *gorm.DB) *models.ArchaeologicalEvidenceTypology {
	t.Helper()
	typology := models.ArchaeologicalEvidenceTypology{DescTypologyArchaeologicalEvidence: "Structure"}
	require.NoError(t, db.Create(&typology).Error)
	return &typology
}

func TestCreateEvidenceRequiresTypologyAndGeometry(t *testing.T) {
	db := newTestDB(t)
	service := NewEvidenceService(db)

	_, _, err := service.CreateEvidence(dtos.EvidenceInput{EvidenceName: "No typology"}, nil, nil)
	assert.EqualError(t, err, "evidence typology is required")

	typology := createEvidenceTypology(t, db)
	_, _, err = service.CreateEvidence(dtos.EvidenceInput{
		EvidenceName: "No geometry",
		TypologyID:   typology.Id,
	}, nil, nil)
	assert.EqualError(t, err, "geometry is required")
}

func TestCreateEvidenceFromLatLon(t *testing.T) {
	db := newTestDB(t)
	service := NewEvidenceService(db)
	typology := createEvidenceTypology(t, db)

	evidence, warnings, err := service.CreateEvidence(dtos.EvidenceInput{
		EvidenceName: "Kiln",
		TypologyID:   typology.Id,
		Lat:          floatp(41.9),
		Lon:          floatp(12.5),
	}, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "((12.500000,41.900000))", evidence.Geometry)
	assert.Equal(t, 1, evidence.ChronologyCertaintyLevel)
}

func TestCreateEvidenceLinksResearchAndSite(t *testing.T) {
	db := newTestDB(t)
	service := NewEvidenceService(db)
	users := NewUserService(db, nil)
	researches := NewResearchService(db, users)
	sites := NewSiteService(db)
	typology := createEvidenceTypology(t, db)
	owner := createTestUser(t, db, "owner", false)

	research, _, err := researches.CreateResearch(owner.Id, dtos.ResearchInput{
		Title:  "Parent research",
		Author: dtos.AuthorSpec{IsSelf: true},
	})
	require.NoError(t, err)
	site, _, err := sites.CreateSite(dtos.SiteInput{SiteName: "Parent site"}, &research.Id)
	require.NoError(t, err)

	evidence, warnings, err := service.CreateEvidence(dtos.EvidenceInput{
		EvidenceName: "Wall segment",
		TypologyID:   typology.Id,
		Geometry:     "((12.5,41.9))",
	}, &research.Id, &site.Id)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	var researchLinks []models.ArchEvResearch
	require.NoError(t, db.Where("id_archaeological_evidence = ?", evidence.Id).Find(&researchLinks).Error)
	require.Len(t, researchLinks, 1)
	assert.Equal(t, research.Id, researchLinks[0].IdResearch)

	var siteLinks []models.SiteArchEvidence
	require.NoError(t, db.Where("id_archaeological_evidence = ?", evidence.Id).Find(&siteLinks).Error)
	require.Len(t, siteLinks, 1)
	assert.Equal(t, site.Id, siteLinks[0].IdSite)
}

func TestCreateEvidenceMissingTargetsAreWarnings(t *testing.T) {
	db := newTestDB(t)
	service := NewEvidenceService(db)
	typology := createEvidenceTypology(t, db)

	missingResearch, missingSite := 111, 222
	evidence, warnings, err := service.CreateEvidence(dtos.EvidenceInput{
		EvidenceName: "Orphan",
		TypologyID:   typology.Id,
		Geometry:     "((12.5,41.9))",
	}, &missingResearch, &missingSite)
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "research 111 not found")
	assert.Contains(t, warnings[1], "site 222 not found")

	var count int64
	require.NoError(t, db.Model(&models.ArchEvResearch{}).Where("id_archaeological_evidence = ?", evidence.Id).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestUpdateEvidenceReplacesChildren(t *testing.T) {
	db := newTestDB(t)
	service := NewEvidenceService(db)
	typology := createEvidenceTypology(t, db)

	evidence, _, err := service.CreateEvidence(dtos.EvidenceInput{
		EvidenceName:   "Kiln",
		TypologyID:     typology.Id,
		Geometry:       "((12.5,41.9))",
		Bibliographies: []dtos.BibliographyInput{{Title: "A"}, {Title: "B"}},
		Docs:           []dtos.DocInput{{Name: "Field sheet"}},
	}, nil, nil)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.ArchEvBiblio{}).Where("id_archaeological_evidence = ?", evidence.Id).Count(&count).Error)
	require.EqualValues(t, 2, count)

	_, _, err = service.UpdateEvidence(1, true, evidence.Id, dtos.EvidenceInput{
		EvidenceName:   "Kiln",
		TypologyID:     typology.Id,
		Geometry:       "((12.5,41.9))",
		Bibliographies: []dtos.BibliographyInput{{Title: "C"}},
	}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.ArchEvBiblio{}).Where("id_archaeological_evidence = ?", evidence.Id).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	require.NoError(t, db.Model(&models.ArchEvRelatedDoc{}).Where("id_archaeological_evidence = ?", evidence.Id).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestEvidenceLinksAreIdempotent(t *testing.T) {
	db := newTestDB(t)
	service := NewEvidenceService(db)
	users := NewUserService(db, nil)
	researches := NewResearchService(db, users)
	typology := createEvidenceTypology(t, db)
	owner := createTestUser(t, db, "owner", false)

	research, _, err := researches.CreateResearch(owner.Id, dtos.ResearchInput{
		Title:  "Parent",
		Author: dtos.AuthorSpec{IsSelf: true},
	})
	require.NoError(t, err)

	evidence, _, err := service.CreateEvidence(dtos.EvidenceInput{
		EvidenceName: "Wall",
		TypologyID:   typology.Id,
		Geometry:     "((12.5,41.9))",
	}, &research.Id, nil)
	require.NoError(t, err)

	_, _, err = service.UpdateEvidence(owner.Id, false, evidence.Id, dtos.EvidenceInput{
		EvidenceName: "Wall",
		TypologyID:   typology.Id,
		Geometry:     "((12.5,41.9))",
	}, &research.Id, nil)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.ArchEvResearch{}).Where("id_archaeological_evidence = ?", evidence.Id).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCanEditEvidence(t *testing.T) {
	db := newTestDB(t)
	service := NewEvidenceService(db)
	users := NewUserService(db, nil)
	researches := NewResearchService(db, users)
	typology := createEvidenceTypology(t, db)

	owner := createTestUser(t, db, "owner", false)
	other := createTestUser(t, db, "other", false)

	research, _, err := researches.CreateResearch(owner.Id, dtos.ResearchInput{
		Title:  "Owning research",
		Author: dtos.AuthorSpec{IsSelf: true},
	})
	require.NoError(t, err)

	linked, _, err := service.CreateEvidence(dtos.EvidenceInput{
		EvidenceName: "Linked",
		TypologyID:   typology.Id,
		Geometry:     "((12.5,41.9))",
	}, &research.Id, nil)
	require.NoError(t, err)
	unlinked, _, err := service.CreateEvidence(dtos.EvidenceInput{
		EvidenceName: "Unlinked",
		TypologyID:   typology.Id,
		Geometry:     "((12.5,41.9))",
	}, nil, nil)
	require.NoError(t, err)

	allowed, err := service.CanEditEvidence(linked.Id, owner.Id, false)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = service.CanEditEvidence(linked.Id, other.Id, false)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = service.CanEditEvidence(linked.Id, other.Id, true)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = service.CanEditEvidence(unlinked.Id, other.Id, false)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = service.CanEditEvidence(unlinked.Id, 0, false)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestEvidenceDetailCollectsResearchesViaSites(t *testing.T) {
	db := newTestDB(t)
	service := NewEvidenceService(db)
	users := NewUserService(db, nil)
	researches := NewResearchService(db, users)
	sites := NewSiteService(db)
	typology := createEvidenceTypology(t, db)
	owner := createTestUser(t, db, "owner", false)

	direct, _, err := researches.CreateResearch(owner.Id, dtos.ResearchInput{
		Title:  "Direct",
		Author: dtos.AuthorSpec{IsSelf: true},
	})
	require.NoError(t, err)
	viaSite, _, err := researches.CreateResearch(owner.Id, dtos.ResearchInput{
		Title:  "Via site",
		Author: dtos.AuthorSpec{IsSelf: true},
	})
	require.NoError(t, err)
	site, _, err := sites.CreateSite(dtos.SiteInput{SiteName: "Carrier"}, &viaSite.Id)
	require.NoError(t, err)

	evidence, _, err := service.CreateEvidence(dtos.EvidenceInput{
		EvidenceName: "Wall",
		TypologyID:   typology.Id,
		Geometry:     "((12.5,41.9))",
	}, &direct.Id, &site.Id)
	require.NoError(t, err)

	detail, err := service.EvidenceDetail(evidence.Id, owner.Id, false)
	require.NoError(t, err)
	require.Len(t, detail.Sites, 1)
	assert.Equal(t, "Carrier", detail.Sites[0].SiteName)

	titles := []string{}
	for _, r := range detail.Researches {
		titles = append(titles, r.Title)
	}
	assert.ElementsMatch(t, []string{"Direct", "Via site"}, titles)
	assert.True(t, detail.CanEdit)
}

func TestListEvidencesByResearch(t *testing.T) {
	db := newTestDB(t)
	service := NewEvidenceService(db)
	users := NewUserService(db, nil)
	researches := NewResearchService(db, users)
	typology := createEvidenceTypology(t, db)
	owner := createTestUser(t, db, "owner", false)

	research, _, err := researches.CreateResearch(owner.Id, dtos.ResearchInput{
		Title:  "Scoped",
		Author: dtos.AuthorSpec{IsSelf: true},
	})
	require.NoError(t, err)

	_, _, err = service.CreateEvidence(dtos.EvidenceInput{
		EvidenceName: "In scope",
		TypologyID:   typology.Id,
		Geometry:     "((12.5,41.9))",
	}, &research.Id, nil)
	require.NoError(t, err)
	_, _, err = service.CreateEvidence(dtos.EvidenceInput{
		EvidenceName: "Out of scope",
		TypologyID:   typology.Id,
		Geometry:     "((12.5,41.9))",
	}, nil, nil)
	require.NoError(t, err)

	evidences, err := service.ListEvidences(&research.Id)
	require.NoError(t, err)
	require.Len(t, evidences, 1)
	assert.Equal(t, "In scope", evidences[0].EvidenceName)

	evidences, err = service.ListEvidences(nil)
	require.NoError(t, err)
	assert.Len(t, evidences, 2)
}
