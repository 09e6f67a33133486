package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/ergin84/ShareLand/src/dtos"
	"github.com/ergin84/ShareLand/src/models"
	"github.com/ergin84/ShareLand/src/utils"
	"gorm.io/gorm"
)

type SiteService struct {
	db *gorm.DB
}

// NewSiteService creates a new instance of SiteService
func NewSiteService(db *gorm.DB) *SiteService {
	return &SiteService{db: db}
}

func (s *SiteService) applyInput(site *models.Site, input dtos.SiteInput) {
	site.SiteName = input.SiteName
	site.SiteEnvironmentRelationship = input.SiteEnvironmentRelationship
	site.AdditionalTopography = input.AdditionalTopography
	site.Elevation = input.Elevation
	site.LocalityName = input.LocalityName
	site.Lat = input.Lat
	site.Lon = input.Lon
	site.Geometry = input.Geometry
	site.Description = input.Description
	site.Notes = input.Notes
	site.IdCountry = input.CountryID
	site.IdRegion = input.RegionID
	site.IdProvince = input.ProvinceID
	site.IdMunicipality = input.MunicipalityID
	site.IdPhysiography = input.PhysiographyID
	site.IdBaseMap = input.BaseMapID
	site.IdPositioningMode = input.PositioningModeID
	site.IdPositionalAccuracy = input.PositionalAccuracyID
	site.IdFirstDiscoveryMethod = input.FirstDiscoveryMethodID

	// A lat/lon pair takes precedence over the submitted geometry string.
	if input.Lat != nil && input.Lon != nil {
		site.Geometry = utils.PointGeometry(*input.Lat, *input.Lon)
	}
}

// upsertToponymy keeps the single toponymy row of a site in sync.
func upsertToponymy(tx *gorm.DB, siteID int, input dtos.SiteInput) error {
	var toponymy models.SiteToponymy
	err := tx.Where("id_site = ?", siteID).First(&toponymy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if input.AncientPlaceName == "" && input.ContemporaryPlaceName == "" {
			return nil
		}
		toponymy = models.SiteToponymy{
			IdSite:                &siteID,
			AncientPlaceName:      input.AncientPlaceName,
			ContemporaryPlaceName: input.ContemporaryPlaceName,
		}
		return tx.Create(&toponymy).Error
	}
	if err != nil {
		return err
	}
	toponymy.AncientPlaceName = input.AncientPlaceName
	toponymy.ContemporaryPlaceName = input.ContemporaryPlaceName
	return tx.Save(&toponymy).Error
}

// upsertInterpretation keeps the single interpretation row of a site in sync.
// Nothing is written when no classification field is set.
func upsertInterpretation(tx *gorm.DB, siteID int, input dtos.SiteInput) error {
	certainty := input.ChronologyCertaintyLevel
	if certainty == 0 {
		certainty = 1
	}

	var interpretation models.Interpretation
	err := tx.Where("id_site = ?", siteID).First(&interpretation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if input.FunctionalClassID == nil && input.TypologyID == nil &&
			input.TypologyDetailID == nil && input.ChronologyID == nil {
			return nil
		}
		interpretation = models.Interpretation{
			IdSite:                   &siteID,
			IdFunctionalClass:        input.FunctionalClassID,
			IdTypology:               input.TypologyID,
			IdTypologyDetail:         input.TypologyDetailID,
			IdChronology:             input.ChronologyID,
			ChronologyCertaintyLevel: certainty,
		}
		return tx.Create(&interpretation).Error
	}
	if err != nil {
		return err
	}
	interpretation.IdFunctionalClass = input.FunctionalClassID
	interpretation.IdTypology = input.TypologyID
	interpretation.IdTypologyDetail = input.TypologyDetailID
	interpretation.IdChronology = input.ChronologyID
	interpretation.ChronologyCertaintyLevel = certainty
	return tx.Save(&interpretation).Error
}

// replaceInvestigation drops the site's investigation links and, when the form
// carries a complete investigation section, recreates one. The investigation
// itself is keyed by project name and shared between sites.
func replaceInvestigation(tx *gorm.DB, siteID int, input dtos.SiteInput) error {
	if err := tx.Where("id_site = ?", siteID).Delete(&models.SiteInvestigation{}).Error; err != nil {
		return err
	}
	if input.ProjectName == "" || input.Periodo == "" || input.InvestigationTypeID == nil {
		return nil
	}

	var investigation models.Investigation
	err := tx.Where("project_name = ?", input.ProjectName).First(&investigation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		investigation = models.Investigation{ProjectName: input.ProjectName}
		if err := tx.Create(&investigation).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	investigation.Period = input.Periodo
	investigation.IdInvestigationType = input.InvestigationTypeID
	if err := tx.Save(&investigation).Error; err != nil {
		return err
	}

	link := models.SiteInvestigation{IdSite: &siteID, IdInvestigation: &investigation.Id}
	return tx.Create(&link).Error
}

func replaceSiteBibliographies(tx *gorm.DB, siteID int, entries []dtos.BibliographyInput) error {
	if err := tx.Where("id_site = ?", siteID).Delete(&models.SiteBibliography{}).Error; err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Empty() {
			continue
		}
		biblio := models.Bibliography{
			Title:  entry.Title,
			Author: entry.Author,
			Year:   entry.Year,
			Doi:    entry.Doi,
			Tipo:   entry.Tipo,
		}
		if err := tx.Create(&biblio).Error; err != nil {
			return err
		}
		link := models.SiteBibliography{IdSite: &siteID, IdBibliography: &biblio.Id}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceSiteSources(tx *gorm.DB, siteID int, entries []dtos.SourceInput) error {
	if err := tx.Where("id_site = ?", siteID).Delete(&models.SiteSources{}).Error; err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Empty() {
			continue
		}
		source := models.Sources{
			Name:              entry.Name,
			IdChronology:      entry.ChronologyID,
			IdSourcesTypology: entry.SourceTypeID,
		}
		if err := tx.Create(&source).Error; err != nil {
			return err
		}
		link := models.SiteSources{IdSite: &siteID, IdSources: &source.Id}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceSiteDocs(tx *gorm.DB, siteID int, entries []dtos.DocInput) error {
	if err := tx.Where("id_site = ?", siteID).Delete(&models.SiteRelatedDocumentation{}).Error; err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Empty() {
			continue
		}
		doc := models.SiteRelatedDocumentation{
			IdSite: &siteID,
			Name:   entry.Name,
			Author: entry.Author,
			Year:   entry.Year,
		}
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceSiteImages(tx *gorm.DB, siteID int, entries []dtos.ImageInput) error {
	if err := tx.Where("id_site = ?", siteID).Delete(&models.Image{}).Error; err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Empty() {
			continue
		}
		image := models.Image{
			IdSite:            &siteID,
			FileName:          entry.FileName,
			AcquisitionDate:   entry.AcquisitionDate,
			DescImage:         entry.Desc,
			IdImageScale:      entry.ScaleID,
			IdImageType:       entry.TypeID,
			Format:            entry.Format,
			Projection:        entry.Projection,
			SpatialResolution: entry.SpatialResolution,
			Author:            entry.Author,
			SourceURL:         entry.SourceURL,
			KeyWords:          entry.KeyWords,
		}
		if err := tx.Create(&image).Error; err != nil {
			return err
		}
	}
	return nil
}

// linkSiteResearch get-or-creates the site_research row. A missing research is
// reported back as a warning, not an error.
func (s *SiteService) linkSiteResearch(tx *gorm.DB, siteID int, researchID int, warnings *[]string) error {
	var research models.Research
	err := tx.First(&research, researchID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		warning := fmt.Sprintf("research %d not found, site %d left unlinked", researchID, siteID)
		log.Printf("%s", warning)
		*warnings = append(*warnings, warning)
		return nil
	}
	if err != nil {
		return err
	}

	var link models.SiteResearch
	err = tx.Where("id_site = ? AND id_research = ?", siteID, researchID).First(&link).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	link = models.SiteResearch{IdSite: siteID, IdResearch: researchID}
	return tx.Create(&link).Error
}

func (s *SiteService) persistChildren(tx *gorm.DB, siteID int, input dtos.SiteInput) error {
	if err := upsertToponymy(tx, siteID, input); err != nil {
		return err
	}
	if err := upsertInterpretation(tx, siteID, input); err != nil {
		return err
	}
	if err := replaceInvestigation(tx, siteID, input); err != nil {
		return err
	}
	if err := replaceSiteBibliographies(tx, siteID, input.Bibliographies); err != nil {
		return err
	}
	if err := replaceSiteSources(tx, siteID, input.Sources); err != nil {
		return err
	}
	if err := replaceSiteDocs(tx, siteID, input.Docs); err != nil {
		return err
	}
	return replaceSiteImages(tx, siteID, input.Images)
}

// CreateSite saves a site with all its sections and optionally links it to a
// research.
func (s *SiteService) CreateSite(input dtos.SiteInput, researchID *int) (*models.Site, []string, error) {
	if input.SiteName == "" {
		return nil, nil, errors.New("site name is required")
	}

	site := models.Site{}
	s.applyInput(&site, input)

	warnings := []string{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&site).Error; err != nil {
			return err
		}
		if err := s.persistChildren(tx, site.Id, input); err != nil {
			return err
		}
		if researchID != nil {
			return s.linkSiteResearch(tx, site.Id, *researchID, &warnings)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &site, warnings, nil
}

// CanEditSite reports whether the user may modify the site: staff always may;
// otherwise the submitter of a linked research; a site with no research link
// is editable by any authenticated user.
func (s *SiteService) CanEditSite(siteID, userID int, isStaff bool) (bool, error) {
	if isStaff {
		return true, nil
	}
	var link models.SiteResearch
	err := s.db.Preload("Research").Where("id_site = ?", siteID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return userID != 0, nil
	}
	if err != nil {
		return false, err
	}
	if link.Research != nil && link.Research.SubmittedBy != nil {
		return *link.Research.SubmittedBy == userID, nil
	}
	return userID != 0, nil
}

// UpdateSite overwrites the site and replaces all its sections with the
// submitted ones.
func (s *SiteService) UpdateSite(userID int, isStaff bool, id int, input dtos.SiteInput, researchID *int) (*models.Site, []string, error) {
	var site models.Site
	if err := s.db.First(&site, id).Error; err != nil {
		return nil, nil, err
	}
	allowed, err := s.CanEditSite(id, userID, isStaff)
	if err != nil {
		return nil, nil, err
	}
	if !allowed {
		return nil, nil, ErrForbidden
	}

	s.applyInput(&site, input)

	warnings := []string{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&site).Error; err != nil {
			return err
		}
		if err := s.persistChildren(tx, site.Id, input); err != nil {
			return err
		}
		if researchID != nil {
			return s.linkSiteResearch(tx, site.Id, *researchID, &warnings)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &site, warnings, nil
}

// DeleteSite removes the site; child rows cascade.
func (s *SiteService) DeleteSite(userID int, isStaff bool, id int) error {
	var site models.Site
	if err := s.db.First(&site, id).Error; err != nil {
		return err
	}
	allowed, err := s.CanEditSite(id, userID, isStaff)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrForbidden
	}
	return s.db.Delete(&site).Error
}

// GetSite fetches one site with its lookup relations.
func (s *SiteService) GetSite(id int) (*models.Site, error) {
	var site models.Site
	err := s.db.
		Preload("Country").Preload("Region").Preload("Province").Preload("Municipality").
		Preload("Physiography").Preload("BaseMap").Preload("PositioningMode").
		Preload("PositionalAccuracy").Preload("FirstDiscoveryMethod").
		First(&site, id).Error
	if err != nil {
		return nil, err
	}
	return &site, nil
}

// ListSites returns all sites, optionally only those linked to one research.
func (s *SiteService) ListSites(researchID *int) ([]models.Site, error) {
	var sites []models.Site
	query := s.db.Preload("Country").Preload("Region").Preload("Province").Preload("Municipality")
	if researchID != nil {
		query = query.Where("id IN (?)",
			s.db.Model(&models.SiteResearch{}).Select("id_site").Where("id_research = ?", *researchID))
	}
	err := query.Order("site_name").Find(&sites).Error
	return sites, err
}

// SiteDetail assembles one site with all its sections for the detail page.
func (s *SiteService) SiteDetail(id, userID int, isStaff bool) (*dtos.SiteDetailDTO, error) {
	site, err := s.GetSite(id)
	if err != nil {
		return nil, err
	}

	detail := dtos.SiteDetailDTO{Site: *site}

	var toponymy models.SiteToponymy
	if err := s.db.Where("id_site = ?", id).First(&toponymy).Error; err == nil {
		detail.Toponymy = &toponymy
	}
	var interpretation models.Interpretation
	err = s.db.
		Preload("FunctionalClass").Preload("Typology").Preload("TypologyDetail").Preload("Chronology").
		Where("id_site = ?", id).First(&interpretation).Error
	if err == nil {
		detail.Interpretation = &interpretation
	}
	var investigation models.SiteInvestigation
	err = s.db.Preload("Investigation").Preload("Investigation.InvestigationType").
		Where("id_site = ?", id).First(&investigation).Error
	if err == nil {
		detail.Investigation = &investigation
	}

	if err := s.db.Preload("Bibliography").Where("id_site = ?", id).Find(&detail.Bibliographies).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Sources").Preload("Sources.Chronology").Preload("Sources.SourcesTypology").
		Where("id_site = ?", id).Find(&detail.Sources).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("id_site = ?", id).Find(&detail.Docs).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("id_site = ?", id).Find(&detail.Images).Error; err != nil {
		return nil, err
	}

	var evidenceLinks []models.SiteArchEvidence
	if err := s.db.Where("id_site = ?", id).Find(&evidenceLinks).Error; err != nil {
		return nil, err
	}
	evidenceIDs := make([]int, 0, len(evidenceLinks))
	for _, link := range evidenceLinks {
		evidenceIDs = append(evidenceIDs, link.IdArchaeologicalEvidence)
	}
	detail.Evidences = []models.ArchaeologicalEvidence{}
	if len(evidenceIDs) > 0 {
		if err := s.db.Preload("EvidenceTypology").Where("id IN ?", evidenceIDs).Find(&detail.Evidences).Error; err != nil {
			return nil, err
		}
	}

	detail.Coordinates = utils.ParseGeometryString(site.Geometry)
	detail.CanEdit, err = s.CanEditSite(id, userID, isStaff)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}
