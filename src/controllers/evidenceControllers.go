package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ergin84/ShareLand/src/dtos"
	"github.com/ergin84/ShareLand/src/middleware"
	"github.com/ergin84/ShareLand/src/models"
	"github.com/ergin84/ShareLand/src/services"
	"github.com/ergin84/ShareLand/src/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EvidenceController struct {
	service *services.EvidenceService
	audit   *services.AuditService
}

func NewEvidenceController(service *services.EvidenceService, audit *services.AuditService) *EvidenceController {
	return &EvidenceController{service: service, audit: audit}
}

func parseEvidenceInput(ctx *gin.Context) dtos.EvidenceInput {
	return dtos.EvidenceInput{
		EvidenceName:             ctx.PostForm("evidence_name"),
		Description:              ctx.PostForm("description"),
		TypologyID:               formInt(ctx, "id_archaeological_evidence_typology"),
		Elevation:                formIntPtr(ctx, "elevation"),
		AdditionalTopography:     ctx.PostForm("additional_topography"),
		LocalityName:             ctx.PostForm("locality_name"),
		Lat:                      formFloatPtr(ctx, "lat"),
		Lon:                      formFloatPtr(ctx, "lon"),
		Geometry:                 ctx.PostForm("geometry"),
		Notes:                    ctx.PostForm("notes"),
		ChronologyID:             formIntPtr(ctx, "id_chronology"),
		ChronologyCertaintyLevel: formInt(ctx, "chronology_certainty_level"),

		CountryID:              formIntPtr(ctx, "id_country"),
		RegionID:               formIntPtr(ctx, "id_region"),
		ProvinceID:             formIntPtr(ctx, "id_province"),
		MunicipalityID:         formIntPtr(ctx, "id_municipality"),
		PhysiographyID:         formIntPtr(ctx, "id_physiography"),
		BaseMapID:              formIntPtr(ctx, "id_base_map"),
		PositioningModeID:      formIntPtr(ctx, "id_positioning_mode"),
		PositionalAccuracyID:   formIntPtr(ctx, "id_positional_accuracy"),
		FirstDiscoveryMethodID: formIntPtr(ctx, "id_first_discovery_method"),
		InvestigationID:        formIntPtr(ctx, "id_investigation"),

		Bibliographies: collectBibliographies(ctx, "ev_"),
		Sources:        collectSources(ctx, "ev_"),
		Docs:           collectDocs(ctx, "ev_"),
		Images:         collectImages(ctx, "ev_", "image_file_name", "evidence_images"),
	}
}

func (c *EvidenceController) logOperation(ctx *gin.Context, operation string, evidence *models.ArchaeologicalEvidence, oldValues, newValues map[string]interface{}) {
	userID := middleware.CurrentUserID(ctx)
	c.audit.LogOperation(&userID, operation, "ArchaeologicalEvidence", evidence.Id, evidence.EvidenceName,
		oldValues, newValues, utils.ClientIP(ctx), utils.UserAgent(ctx))
}

func evidenceSnapshot(evidence *models.ArchaeologicalEvidence) map[string]interface{} {
	return map[string]interface{}{
		"evidence_name": evidence.EvidenceName,
		"description":   evidence.Description,
		"locality_name": evidence.LocalityName,
		"geometry":      evidence.Geometry,
		"notes":         evidence.Notes,
	}
}

// CreateEvidence handles the multipart evidence form; research_id and site_id
// query parameters link the new evidence.
func (c *EvidenceController) CreateEvidence(ctx *gin.Context) {
	input := parseEvidenceInput(ctx)

	evidence, warnings, err := c.service.CreateEvidence(input,
		queryIntPtr(ctx, "research_id"), queryIntPtr(ctx, "site_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.logOperation(ctx, models.OpCreate, evidence, nil, nil)
	ctx.JSON(http.StatusCreated, gin.H{"evidence": evidence, "warnings": warnings})
}

// UpdateEvidence replaces the evidence and its child collections.
func (c *EvidenceController) UpdateEvidence(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid evidence ID"})
		return
	}

	previous, err := c.service.GetEvidence(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Evidence not found"})
		return
	}
	oldValues := evidenceSnapshot(previous)

	input := parseEvidenceInput(ctx)
	evidence, warnings, err := c.service.UpdateEvidence(
		middleware.CurrentUserID(ctx), middleware.IsStaff(ctx), id, input,
		queryIntPtr(ctx, "research_id"), queryIntPtr(ctx, "site_id"))
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "You cannot edit this evidence"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.logOperation(ctx, models.OpUpdate, evidence, oldValues, evidenceSnapshot(evidence))
	ctx.JSON(http.StatusOK, gin.H{"evidence": evidence, "warnings": warnings})
}

// DeleteEvidence handles DELETE requests with the evidence ownership rules.
func (c *EvidenceController) DeleteEvidence(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid evidence ID"})
		return
	}

	evidence, err := c.service.GetEvidence(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Evidence not found"})
		return
	}

	err = c.service.DeleteEvidence(middleware.CurrentUserID(ctx), middleware.IsStaff(ctx), id)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "You cannot delete this evidence"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.logOperation(ctx, models.OpDelete, evidence, nil, nil)
	ctx.JSON(http.StatusOK, gin.H{"message": "Evidence deleted successfully"})
}

// GetEvidenceDetail returns one evidence with children, sites and researches.
func (c *EvidenceController) GetEvidenceDetail(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid evidence ID"})
		return
	}

	detail, err := c.service.EvidenceDetail(id, middleware.CurrentUserID(ctx), middleware.IsStaff(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Evidence not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// ListEvidences returns all evidences, optionally filtered by research_id.
func (c *EvidenceController) ListEvidences(ctx *gin.Context) {
	evidences, err := c.service.ListEvidences(queryIntPtr(ctx, "research_id"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, evidences)
}
