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

type EvidenceService struct {
	db *gorm.DB
}

// NewEvidenceService creates a new instance of EvidenceService
func NewEvidenceService(db *gorm.DB) *EvidenceService {
	return &EvidenceService{db: db}
}

func (s *EvidenceService) applyInput(evidence *models.ArchaeologicalEvidence, input dtos.EvidenceInput) {
	evidence.EvidenceName = input.EvidenceName
	evidence.Description = input.Description
	evidence.IdTypology = input.TypologyID
	evidence.Elevation = input.Elevation
	evidence.AdditionalTopography = input.AdditionalTopography
	evidence.LocalityName = input.LocalityName
	evidence.Lat = input.Lat
	evidence.Lon = input.Lon
	evidence.Geometry = input.Geometry
	evidence.Notes = input.Notes
	evidence.IdChronology = input.ChronologyID
	evidence.ChronologyCertaintyLevel = input.ChronologyCertaintyLevel
	if evidence.ChronologyCertaintyLevel == 0 {
		evidence.ChronologyCertaintyLevel = 1
	}
	evidence.IdCountry = input.CountryID
	evidence.IdRegion = input.RegionID
	evidence.IdProvince = input.ProvinceID
	evidence.IdMunicipality = input.MunicipalityID
	evidence.IdPhysiography = input.PhysiographyID
	evidence.IdBaseMap = input.BaseMapID
	evidence.IdPositioningMode = input.PositioningModeID
	evidence.IdPositionalAccuracy = input.PositionalAccuracyID
	evidence.IdFirstDiscoveryMethod = input.FirstDiscoveryMethodID
	evidence.IdInvestigation = input.InvestigationID

	if input.Lat != nil && input.Lon != nil {
		evidence.Geometry = utils.PointGeometry(*input.Lat, *input.Lon)
	}
}

func replaceEvidenceBibliographies(tx *gorm.DB, evidenceID int, entries []dtos.BibliographyInput) error {
	if err := tx.Where("id_archaeological_evidence = ?", evidenceID).Delete(&models.ArchEvBiblio{}).Error; err != nil {
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
		link := models.ArchEvBiblio{IdArchaeologicalEvidence: &evidenceID, IdBibliography: &biblio.Id}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceEvidenceSources(tx *gorm.DB, evidenceID int, entries []dtos.SourceInput) error {
	if err := tx.Where("id_archaeological_evidence = ?", evidenceID).Delete(&models.ArchEvSources{}).Error; err != nil {
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
		link := models.ArchEvSources{IdArchaeologicalEvidence: &evidenceID, IdSources: &source.Id}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceEvidenceDocs(tx *gorm.DB, evidenceID int, entries []dtos.DocInput) error {
	if err := tx.Where("id_archaeological_evidence = ?", evidenceID).Delete(&models.ArchEvRelatedDoc{}).Error; err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Empty() {
			continue
		}
		doc := models.ArchEvRelatedDoc{
			IdArchaeologicalEvidence: &evidenceID,
			Name:                     entry.Name,
			Author:                   entry.Author,
			Year:                     entry.Year,
		}
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceEvidenceImages(tx *gorm.DB, evidenceID int, entries []dtos.ImageInput) error {
	if err := tx.Where("id_archaeological_evidence = ?", evidenceID).Delete(&models.Image{}).Error; err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Empty() {
			continue
		}
		image := models.Image{
			IdArchaeologicalEvidence: &evidenceID,
			FileName:                 entry.FileName,
			AcquisitionDate:          entry.AcquisitionDate,
			DescImage:                entry.Desc,
			IdImageScale:             entry.ScaleID,
			IdImageType:              entry.TypeID,
			Format:                   entry.Format,
			Projection:               entry.Projection,
			SpatialResolution:        entry.SpatialResolution,
			Author:                   entry.Author,
			SourceURL:                entry.SourceURL,
			KeyWords:                 entry.KeyWords,
		}
		if err := tx.Create(&image).Error; err != nil {
			return err
		}
	}
	return nil
}

// linkEvidenceResearch get-or-creates the arch_ev_research row; a missing
// research becomes a warning.
func linkEvidenceResearch(tx *gorm.DB, evidenceID, researchID int, warnings *[]string) error {
	var research models.Research
	err := tx.First(&research, researchID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		warning := fmt.Sprintf("research %d not found, evidence %d left unlinked", researchID, evidenceID)
		log.Printf("%s", warning)
		*warnings = append(*warnings, warning)
		return nil
	}
	if err != nil {
		return err
	}

	var link models.ArchEvResearch
	err = tx.Where("id_archaeological_evidence = ? AND id_research = ?", evidenceID, researchID).First(&link).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	link = models.ArchEvResearch{IdArchaeologicalEvidence: &evidenceID, IdResearch: researchID}
	return tx.Create(&link).Error
}

// linkEvidenceSite get-or-creates the site_arch_evidence row; a missing site
// becomes a warning.
func linkEvidenceSite(tx *gorm.DB, evidenceID, siteID int, warnings *[]string) error {
	var site models.Site
	err := tx.First(&site, siteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		warning := fmt.Sprintf("site %d not found, evidence %d left unlinked", siteID, evidenceID)
		log.Printf("%s", warning)
		*warnings = append(*warnings, warning)
		return nil
	}
	if err != nil {
		return err
	}

	var link models.SiteArchEvidence
	err = tx.Where("id_site = ? AND id_archaeological_evidence = ?", siteID, evidenceID).First(&link).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	link = models.SiteArchEvidence{IdSite: siteID, IdArchaeologicalEvidence: evidenceID}
	return tx.Create(&link).Error
}

func (s *EvidenceService) persistChildren(tx *gorm.DB, evidenceID int, input dtos.EvidenceInput) error {
	if err := replaceEvidenceBibliographies(tx, evidenceID, input.Bibliographies); err != nil {
		return err
	}
	if err := replaceEvidenceSources(tx, evidenceID, input.Sources); err != nil {
		return err
	}
	if err := replaceEvidenceDocs(tx, evidenceID, input.Docs); err != nil {
		return err
	}
	return replaceEvidenceImages(tx, evidenceID, input.Images)
}

// CreateEvidence saves an evidence with its child collections and optional
// research and site links.
func (s *EvidenceService) CreateEvidence(input dtos.EvidenceInput, researchID, siteID *int) (*models.ArchaeologicalEvidence, []string, error) {
	if input.TypologyID == 0 {
		return nil, nil, errors.New("evidence typology is required")
	}

	evidence := models.ArchaeologicalEvidence{}
	s.applyInput(&evidence, input)
	if evidence.Geometry == "" {
		return nil, nil, errors.New("geometry is required")
	}

	warnings := []string{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&evidence).Error; err != nil {
			return err
		}
		if err := s.persistChildren(tx, evidence.Id, input); err != nil {
			return err
		}
		if researchID != nil {
			if err := linkEvidenceResearch(tx, evidence.Id, *researchID, &warnings); err != nil {
				return err
			}
		}
		if siteID != nil {
			if err := linkEvidenceSite(tx, evidence.Id, *siteID, &warnings); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &evidence, warnings, nil
}

// CanEditEvidence mirrors the site rule: staff, else the submitter of a linked
// research, else any authenticated user when no research is linked.
func (s *EvidenceService) CanEditEvidence(evidenceID, userID int, isStaff bool) (bool, error) {
	if isStaff {
		return true, nil
	}
	var link models.ArchEvResearch
	err := s.db.Where("id_archaeological_evidence = ?", evidenceID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return userID != 0, nil
	}
	if err != nil {
		return false, err
	}
	var research models.Research
	err = s.db.First(&research, link.IdResearch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return userID != 0, nil
	}
	if err != nil {
		return false, err
	}
	if research.SubmittedBy != nil {
		return *research.SubmittedBy == userID, nil
	}
	return userID != 0, nil
}

// UpdateEvidence overwrites the evidence and replaces its child collections.
func (s *EvidenceService) UpdateEvidence(userID int, isStaff bool, id int, input dtos.EvidenceInput, researchID, siteID *int) (*models.ArchaeologicalEvidence, []string, error) {
	var evidence models.ArchaeologicalEvidence
	if err := s.db.First(&evidence, id).Error; err != nil {
		return nil, nil, err
	}
	allowed, err := s.CanEditEvidence(id, userID, isStaff)
	if err != nil {
		return nil, nil, err
	}
	if !allowed {
		return nil, nil, ErrForbidden
	}
	if input.TypologyID == 0 {
		return nil, nil, errors.New("evidence typology is required")
	}

	s.applyInput(&evidence, input)
	if evidence.Geometry == "" {
		return nil, nil, errors.New("geometry is required")
	}

	warnings := []string{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&evidence).Error; err != nil {
			return err
		}
		if err := s.persistChildren(tx, evidence.Id, input); err != nil {
			return err
		}
		if researchID != nil {
			if err := linkEvidenceResearch(tx, evidence.Id, *researchID, &warnings); err != nil {
				return err
			}
		}
		if siteID != nil {
			if err := linkEvidenceSite(tx, evidence.Id, *siteID, &warnings); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &evidence, warnings, nil
}

// DeleteEvidence removes the evidence; junctions cascade.
func (s *EvidenceService) DeleteEvidence(userID int, isStaff bool, id int) error {
	var evidence models.ArchaeologicalEvidence
	if err := s.db.First(&evidence, id).Error; err != nil {
		return err
	}
	allowed, err := s.CanEditEvidence(id, userID, isStaff)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrForbidden
	}
	return s.db.Delete(&evidence).Error
}

// GetEvidence fetches one evidence with its lookup relations.
func (s *EvidenceService) GetEvidence(id int) (*models.ArchaeologicalEvidence, error) {
	var evidence models.ArchaeologicalEvidence
	err := s.db.
		Preload("EvidenceTypology").Preload("Chronology").
		Preload("Country").Preload("Region").Preload("Province").Preload("Municipality").
		Preload("Physiography").Preload("BaseMap").Preload("PositioningMode").
		Preload("PositionalAccuracy").Preload("FirstDiscoveryMethod").
		Preload("Investigation").
		First(&evidence, id).Error
	if err != nil {
		return nil, err
	}
	return &evidence, nil
}

// ListEvidences returns all evidences, optionally only those linked to one
// research.
func (s *EvidenceService) ListEvidences(researchID *int) ([]models.ArchaeologicalEvidence, error) {
	var evidences []models.ArchaeologicalEvidence
	query := s.db.Preload("EvidenceTypology").Preload("Chronology")
	if researchID != nil {
		query = query.Where("id IN (?)",
			s.db.Model(&models.ArchEvResearch{}).Select("id_archaeological_evidence").Where("id_research = ?", *researchID))
	}
	err := query.Order("id").Find(&evidences).Error
	return evidences, err
}

// EvidenceDetail assembles one evidence with its children, linked sites and
// the researches reachable directly or through those sites.
type EvidenceFullDetail struct {
	dtos.EvidenceDetailDTO
	Sites      []models.Site     `json:"sites"`
	Researches []models.Research `json:"researches"`
}

func (s *EvidenceService) EvidenceDetail(id, userID int, isStaff bool) (*EvidenceFullDetail, error) {
	evidence, err := s.GetEvidence(id)
	if err != nil {
		return nil, err
	}

	detail := EvidenceFullDetail{}
	detail.Evidence = *evidence
	detail.Coordinates = utils.ParseGeometryString(evidence.Geometry)

	if err := s.db.Preload("Bibliography").
		Where("id_archaeological_evidence = ?", id).Find(&detail.Bibliographies).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Sources").Preload("Sources.Chronology").Preload("Sources.SourcesTypology").
		Where("id_archaeological_evidence = ?", id).Find(&detail.Sources).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("id_archaeological_evidence = ?", id).Find(&detail.Docs).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("id_archaeological_evidence = ?", id).Find(&detail.Images).Error; err != nil {
		return nil, err
	}

	var siteLinks []models.SiteArchEvidence
	if err := s.db.Where("id_archaeological_evidence = ?", id).Find(&siteLinks).Error; err != nil {
		return nil, err
	}
	siteIDs := make([]int, 0, len(siteLinks))
	for _, link := range siteLinks {
		siteIDs = append(siteIDs, link.IdSite)
	}
	detail.Sites = []models.Site{}
	researchIDs := map[int]bool{}
	if len(siteIDs) > 0 {
		if err := s.db.Where("id IN ?", siteIDs).Find(&detail.Sites).Error; err != nil {
			return nil, err
		}
		var viaSites []models.SiteResearch
		if err := s.db.Where("id_site IN ?", siteIDs).Find(&viaSites).Error; err != nil {
			return nil, err
		}
		for _, link := range viaSites {
			researchIDs[link.IdResearch] = true
		}
	}

	var directLinks []models.ArchEvResearch
	if err := s.db.Where("id_archaeological_evidence = ?", id).Find(&directLinks).Error; err != nil {
		return nil, err
	}
	for _, link := range directLinks {
		researchIDs[link.IdResearch] = true
	}

	detail.Researches = []models.Research{}
	if len(researchIDs) > 0 {
		ids := make([]int, 0, len(researchIDs))
		for researchID := range researchIDs {
			ids = append(ids, researchID)
		}
		if err := s.db.Where("id IN ?", ids).Find(&detail.Researches).Error; err != nil {
			return nil, err
		}
	}

	detail.CanEdit, err = s.CanEditEvidence(id, userID, isStaff)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}
