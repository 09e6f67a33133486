package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ergin84/ShareLand/src/dtos"
	"github.com/ergin84/ShareLand/src/models"
	"github.com/ergin84/ShareLand/src/utils"
	"gorm.io/gorm"
)

var ErrForbidden = errors.New("operation not permitted")

type ResearchService struct {
	db    *gorm.DB
	users *UserService
}

// NewResearchService creates a new instance of ResearchService
func NewResearchService(db *gorm.DB, users *UserService) *ResearchService {
	return &ResearchService{db: db, users: users}
}

func validateGeometry(geometry string) error {
	if geometry == "" {
		return nil
	}
	if !strings.HasPrefix(strings.TrimSpace(geometry), "((") {
		return errors.New("invalid geometry format")
	}
	return nil
}

// linkAuthor adds a research_author row unless the pair already exists.
func linkAuthor(tx *gorm.DB, researchID, authorID int) error {
	var link models.ResearchAuthor
	err := tx.Where("id_research = ? AND id_author = ?", researchID, authorID).First(&link).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	link = models.ResearchAuthor{IdResearch: &researchID, IdAuthor: &authorID}
	return tx.Create(&link).Error
}

// CreateResearch saves a research with its author links. The main author must
// resolve; failing co-authors are reported as warnings and skipped.
func (s *ResearchService) CreateResearch(submitterID int, input dtos.ResearchInput) (*models.Research, []string, error) {
	if input.Title == "" {
		return nil, nil, errors.New("title is required")
	}
	if err := validateGeometry(input.Geometry); err != nil {
		return nil, nil, err
	}

	mainAuthorID, err := s.users.ResolveAuthorUser(submitterID, input.Author)
	if err != nil {
		return nil, nil, err
	}

	warnings := []string{}
	coauthorIDs := []int{}
	for i, spec := range input.Coauthors {
		id, err := s.users.ResolveAuthorUser(submitterID, spec)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("co-author %d skipped: %v", i+1, err))
			continue
		}
		coauthorIDs = append(coauthorIDs, id)
	}

	research := models.Research{
		Title:       input.Title,
		Year:        input.Year,
		Keywords:    input.Keywords,
		Abstract:    input.Abstract,
		Type:        input.Type,
		Geometry:    input.Geometry,
		SubmittedBy: &submitterID,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&research).Error; err != nil {
			return err
		}
		if err := linkAuthor(tx, research.Id, mainAuthorID); err != nil {
			return err
		}
		for _, id := range coauthorIDs {
			if err := linkAuthor(tx, research.Id, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &research, warnings, nil
}

// CanEditResearch reports whether the user may modify the research: staff, or
// its submitter.
func CanEditResearch(research *models.Research, userID int, isStaff bool) bool {
	if isStaff {
		return true
	}
	return research.SubmittedBy != nil && *research.SubmittedBy == userID
}

// UpdateResearch overwrites the scalar fields and adds any newly submitted
// author links. Only the submitter or staff may update.
func (s *ResearchService) UpdateResearch(userID int, isStaff bool, id int, input dtos.ResearchInput) (*models.Research, []string, error) {
	var research models.Research
	if err := s.db.First(&research, id).Error; err != nil {
		return nil, nil, err
	}
	if !CanEditResearch(&research, userID, isStaff) {
		return nil, nil, ErrForbidden
	}
	if err := validateGeometry(input.Geometry); err != nil {
		return nil, nil, err
	}

	research.Title = input.Title
	research.Year = input.Year
	research.Keywords = input.Keywords
	research.Abstract = input.Abstract
	research.Type = input.Type
	research.Geometry = input.Geometry

	warnings := []string{}
	authorIDs := []int{}
	specs := []dtos.AuthorSpec{}
	if input.Author.IsSelf || input.Author.UserID != nil || input.Author.Email != "" {
		specs = append(specs, input.Author)
	}
	specs = append(specs, input.Coauthors...)
	for i, spec := range specs {
		authorID, err := s.users.ResolveAuthorUser(userID, spec)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("author %d skipped: %v", i+1, err))
			continue
		}
		authorIDs = append(authorIDs, authorID)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&research).Error; err != nil {
			return err
		}
		for _, authorID := range authorIDs {
			if err := linkAuthor(tx, research.Id, authorID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &research, warnings, nil
}

// DeleteResearch removes the research; author and site links cascade.
func (s *ResearchService) DeleteResearch(userID int, isStaff bool, id int) error {
	var research models.Research
	if err := s.db.First(&research, id).Error; err != nil {
		return err
	}
	if !CanEditResearch(&research, userID, isStaff) {
		return ErrForbidden
	}
	return s.db.Delete(&research).Error
}

// GetResearch fetches one research with its submitter.
func (s *ResearchService) GetResearch(id int) (*models.Research, error) {
	var research models.Research
	if err := s.db.Preload("Submitter").First(&research, id).Error; err != nil {
		return nil, err
	}
	return &research, nil
}

func (s *ResearchService) summarize(research models.Research, userID int, isStaff bool) (dtos.ResearchSummaryDTO, error) {
	summary := dtos.ResearchSummaryDTO{
		ID:       research.Id,
		Title:    research.Title,
		Year:     research.Year,
		Type:     research.Type,
		Keywords: research.Keywords,
		CanEdit:  CanEditResearch(&research, userID, isStaff),
	}
	if research.Submitter != nil {
		profile := models.Profile{User: *research.Submitter}
		summary.SubmitterName = profile.FullName()
	}

	authors, err := s.researchAuthors(research.Id)
	if err != nil {
		return summary, err
	}
	names := make([]string, 0, len(authors))
	for i := range authors {
		names = append(names, authors[i].FullName())
	}
	summary.AuthorNames = strings.Join(names, ", ")

	err = s.db.Model(&models.SiteResearch{}).
		Where("id_research = ?", research.Id).Count(&summary.SiteCount).Error
	if err != nil {
		return summary, err
	}
	err = s.db.Model(&models.ArchEvResearch{}).
		Where("id_research = ?", research.Id).Count(&summary.EvidenceCount).Error
	return summary, err
}

func (s *ResearchService) summarizeAll(researches []models.Research, userID int, isStaff bool) ([]dtos.ResearchSummaryDTO, error) {
	summaries := make([]dtos.ResearchSummaryDTO, 0, len(researches))
	for _, research := range researches {
		summary, err := s.summarize(research, userID, isStaff)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ListResearch returns all research records as list-page summaries, most
// recent year first.
func (s *ResearchService) ListResearch(userID int, isStaff bool) ([]dtos.ResearchSummaryDTO, error) {
	var researches []models.Research
	if err := s.db.Preload("Submitter").Order("year DESC").Find(&researches).Error; err != nil {
		return nil, err
	}
	return s.summarizeAll(researches, userID, isStaff)
}

// ListResearchByUser returns the research submitted by one user.
func (s *ResearchService) ListResearchByUser(userID int) ([]models.Research, error) {
	var researches []models.Research
	err := s.db.Where("submitted_by = ?", userID).Order("year DESC").Find(&researches).Error
	return researches, err
}

// SearchCatalog filters the public catalog by a free-text query against
// title, abstract and keywords, ordered by title.
func (s *ResearchService) SearchCatalog(query string, userID int, isStaff bool) ([]dtos.ResearchSummaryDTO, error) {
	var researches []models.Research
	q := s.db.Preload("Submitter").Order("title")
	query = strings.TrimSpace(query)
	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(abstract) LIKE ? OR LOWER(keywords) LIKE ?",
			pattern, pattern, pattern)
	}
	if err := q.Find(&researches).Error; err != nil {
		return nil, err
	}
	return s.summarizeAll(researches, userID, isStaff)
}

func (s *ResearchService) researchAuthors(researchID int) ([]models.Profile, error) {
	var links []models.ResearchAuthor
	if err := s.db.Where("id_research = ?", researchID).Find(&links).Error; err != nil {
		return nil, err
	}
	authors := []models.Profile{}
	for _, link := range links {
		if link.IdAuthor == nil {
			continue
		}
		var profile models.Profile
		err := s.db.Preload("User").Where("user_id = ?", *link.IdAuthor).First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			var user models.User
			if err := s.db.First(&user, *link.IdAuthor).Error; err != nil {
				continue
			}
			profile = models.Profile{UserID: user.Id, User: user}
		} else if err != nil {
			return nil, err
		}
		authors = append(authors, profile)
	}
	return authors, nil
}

func (s *ResearchService) siteDetail(site models.Site) (dtos.SiteDetailDTO, error) {
	detail := dtos.SiteDetailDTO{Site: site}

	var toponymy models.SiteToponymy
	if err := s.db.Where("id_site = ?", site.Id).First(&toponymy).Error; err == nil {
		detail.Toponymy = &toponymy
	}
	var interpretation models.Interpretation
	err := s.db.
		Preload("FunctionalClass").Preload("Typology").Preload("TypologyDetail").Preload("Chronology").
		Where("id_site = ?", site.Id).First(&interpretation).Error
	if err == nil {
		detail.Interpretation = &interpretation
	}
	var investigation models.SiteInvestigation
	err = s.db.Preload("Investigation").Preload("Investigation.InvestigationType").
		Where("id_site = ?", site.Id).First(&investigation).Error
	if err == nil {
		detail.Investigation = &investigation
	}

	if err := s.db.Preload("Bibliography").Where("id_site = ?", site.Id).Find(&detail.Bibliographies).Error; err != nil {
		return detail, err
	}
	if err := s.db.Preload("Sources").Preload("Sources.Chronology").Preload("Sources.SourcesTypology").
		Where("id_site = ?", site.Id).Find(&detail.Sources).Error; err != nil {
		return detail, err
	}
	if err := s.db.Where("id_site = ?", site.Id).Find(&detail.Docs).Error; err != nil {
		return detail, err
	}
	if err := s.db.Where("id_site = ?", site.Id).Find(&detail.Images).Error; err != nil {
		return detail, err
	}

	var evidenceLinks []models.SiteArchEvidence
	if err := s.db.Where("id_site = ?", site.Id).Find(&evidenceLinks).Error; err != nil {
		return detail, err
	}
	evidenceIDs := make([]int, 0, len(evidenceLinks))
	for _, link := range evidenceLinks {
		evidenceIDs = append(evidenceIDs, link.IdArchaeologicalEvidence)
	}
	if len(evidenceIDs) > 0 {
		if err := s.db.Preload("EvidenceTypology").Where("id IN ?", evidenceIDs).Find(&detail.Evidences).Error; err != nil {
			return detail, err
		}
	} else {
		detail.Evidences = []models.ArchaeologicalEvidence{}
	}

	detail.Coordinates = utils.ParseGeometryString(site.Geometry)
	detail.Center = mapCenter(site.Geometry)
	return detail, nil
}

// mapCenter returns the (lat, lon) the frontend centers its map on, nil when
// the record carries no geometry.
func mapCenter(geometry string) *[2]float64 {
	lat, lon, ok := utils.GeometryCenter(geometry)
	if !ok {
		return nil
	}
	return &[2]float64{lat, lon}
}

func (s *ResearchService) evidenceDetail(evidence models.ArchaeologicalEvidence) (dtos.EvidenceDetailDTO, error) {
	detail := dtos.EvidenceDetailDTO{Evidence: evidence}
	if err := s.db.Preload("Bibliography").
		Where("id_archaeological_evidence = ?", evidence.Id).Find(&detail.Bibliographies).Error; err != nil {
		return detail, err
	}
	if err := s.db.Preload("Sources").Preload("Sources.Chronology").Preload("Sources.SourcesTypology").
		Where("id_archaeological_evidence = ?", evidence.Id).Find(&detail.Sources).Error; err != nil {
		return detail, err
	}
	if err := s.db.Where("id_archaeological_evidence = ?", evidence.Id).Find(&detail.Docs).Error; err != nil {
		return detail, err
	}
	if err := s.db.Where("id_archaeological_evidence = ?", evidence.Id).Find(&detail.Images).Error; err != nil {
		return detail, err
	}
	detail.Coordinates = utils.ParseGeometryString(evidence.Geometry)
	detail.Center = mapCenter(evidence.Geometry)
	return detail, nil
}

// ResearchDetail assembles the full research tree: linked sites with their
// sections and evidences, evidences linked directly, authors and the parsed
// study-area coordinates.
func (s *ResearchService) ResearchDetail(id, userID int, isStaff bool) (*dtos.ResearchDetailDTO, error) {
	research, err := s.GetResearch(id)
	if err != nil {
		return nil, err
	}

	detail := dtos.ResearchDetailDTO{
		Research:    *research,
		Coordinates: utils.ParseGeometryString(research.Geometry),
		Center:      mapCenter(research.Geometry),
		CanEdit:     CanEditResearch(research, userID, isStaff),
	}

	detail.Authors, err = s.researchAuthors(id)
	if err != nil {
		return nil, err
	}

	var siteLinks []models.SiteResearch
	if err := s.db.Where("id_research = ?", id).Find(&siteLinks).Error; err != nil {
		return nil, err
	}
	siteIDs := make([]int, 0, len(siteLinks))
	for _, link := range siteLinks {
		siteIDs = append(siteIDs, link.IdSite)
	}
	detail.Sites = []dtos.SiteDetailDTO{}
	if len(siteIDs) > 0 {
		var sites []models.Site
		err := s.db.
			Preload("Country").Preload("Region").Preload("Province").Preload("Municipality").
			Where("id IN ?", siteIDs).Find(&sites).Error
		if err != nil {
			return nil, err
		}
		for _, site := range sites {
			siteDetail, err := s.siteDetail(site)
			if err != nil {
				return nil, err
			}
			siteDetail.CanEdit = detail.CanEdit
			detail.Sites = append(detail.Sites, siteDetail)
		}
	}

	var directLinks []models.ArchEvResearch
	if err := s.db.Where("id_research = ?", id).Find(&directLinks).Error; err != nil {
		return nil, err
	}
	evidenceIDs := make([]int, 0, len(directLinks))
	for _, link := range directLinks {
		if link.IdArchaeologicalEvidence != nil {
			evidenceIDs = append(evidenceIDs, *link.IdArchaeologicalEvidence)
		}
	}
	detail.DirectEvidences = []dtos.EvidenceDetailDTO{}
	if len(evidenceIDs) > 0 {
		var evidences []models.ArchaeologicalEvidence
		err := s.db.Preload("EvidenceTypology").Preload("Chronology").
			Where("id IN ?", evidenceIDs).Find(&evidences).Error
		if err != nil {
			return nil, err
		}
		for _, evidence := range evidences {
			evidenceDetail, err := s.evidenceDetail(evidence)
			if err != nil {
				return nil, err
			}
			evidenceDetail.CanEdit = detail.CanEdit
			detail.DirectEvidences = append(detail.DirectEvidences, evidenceDetail)
		}
	}

	return &detail, nil
}

// HomeStats returns the landing page counters.
func (s *ResearchService) HomeStats() (*dtos.HomeStatsDTO, error) {
	stats := dtos.HomeStatsDTO{}
	if err := s.db.Model(&models.Research{}).Count(&stats.ResearchCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Site{}).Count(&stats.SiteCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.ArchaeologicalEvidence{}).Count(&stats.EvidenceCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).Where("is_active = ?", true).Count(&stats.UserCount).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
