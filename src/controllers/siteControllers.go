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

type SiteController struct {
	service *services.SiteService
	audit   *services.AuditService
}

func NewSiteController(service *services.SiteService, audit *services.AuditService) *SiteController {
	return &SiteController{service: service, audit: audit}
}

func parseSiteInput(ctx *gin.Context) dtos.SiteInput {
	return dtos.SiteInput{
		SiteName:                    ctx.PostForm("site_name"),
		SiteEnvironmentRelationship: ctx.PostForm("site_environment_relationship"),
		AdditionalTopography:        ctx.PostForm("additional_topography"),
		Elevation:                   formIntPtr(ctx, "elevation"),
		LocalityName:                ctx.PostForm("locality_name"),
		Lat:                         formFloatPtr(ctx, "lat"),
		Lon:                         formFloatPtr(ctx, "lon"),
		Geometry:                    ctx.PostForm("geometry"),
		Description:                 ctx.PostForm("description"),
		Notes:                       ctx.PostForm("notes"),

		CountryID:              formIntPtr(ctx, "id_country"),
		RegionID:               formIntPtr(ctx, "id_region"),
		ProvinceID:             formIntPtr(ctx, "id_province"),
		MunicipalityID:         formIntPtr(ctx, "id_municipality"),
		PhysiographyID:         formIntPtr(ctx, "id_physiography"),
		BaseMapID:              formIntPtr(ctx, "id_base_map"),
		PositioningModeID:      formIntPtr(ctx, "id_positioning_mode"),
		PositionalAccuracyID:   formIntPtr(ctx, "id_positional_accuracy"),
		FirstDiscoveryMethodID: formIntPtr(ctx, "id_first_discovery_method"),

		AncientPlaceName:      ctx.PostForm("ancient_place_name"),
		ContemporaryPlaceName: ctx.PostForm("contemporary_place_name"),

		FunctionalClassID:        formIntPtr(ctx, "functional_class"),
		TypologyID:               formIntPtr(ctx, "typology"),
		TypologyDetailID:         formIntPtr(ctx, "typology_detail"),
		ChronologyID:             formIntPtr(ctx, "chronology"),
		ChronologyCertaintyLevel: formInt(ctx, "chronology_certainty_level"),

		ProjectName:         ctx.PostForm("project_name"),
		Periodo:             ctx.PostForm("periodo"),
		InvestigationTypeID: formIntPtr(ctx, "investigation_type"),

		Bibliographies: collectBibliographies(ctx, ""),
		Sources:        collectSources(ctx, ""),
		Docs:           collectDocs(ctx, ""),
		Images:         collectImages(ctx, "", "image_type", "site_images"),
	}
}

func (c *SiteController) logOperation(ctx *gin.Context, operation string, site *models.Site, oldValues, newValues map[string]interface{}) {
	userID := middleware.CurrentUserID(ctx)
	c.audit.LogOperation(&userID, operation, "Site", site.Id, site.SiteName,
		oldValues, newValues, utils.ClientIP(ctx), utils.UserAgent(ctx))
}

func siteSnapshot(site *models.Site) map[string]interface{} {
	return map[string]interface{}{
		"site_name":     site.SiteName,
		"locality_name": site.LocalityName,
		"geometry":      site.Geometry,
		"description":   site.Description,
		"notes":         site.Notes,
	}
}

// CreateSite handles the multipart site form; a research_id query parameter
// links the new site to a research.
func (c *SiteController) CreateSite(ctx *gin.Context) {
	input := parseSiteInput(ctx)

	site, warnings, err := c.service.CreateSite(input, queryIntPtr(ctx, "research_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.logOperation(ctx, models.OpCreate, site, nil, nil)
	ctx.JSON(http.StatusCreated, gin.H{"site": site, "warnings": warnings})
}

// UpdateSite replaces the site and all its sections.
func (c *SiteController) UpdateSite(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid site ID"})
		return
	}

	previous, err := c.service.GetSite(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}
	oldValues := siteSnapshot(previous)

	input := parseSiteInput(ctx)
	site, warnings, err := c.service.UpdateSite(
		middleware.CurrentUserID(ctx), middleware.IsStaff(ctx), id, input, queryIntPtr(ctx, "research_id"))
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "You cannot edit this site"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.logOperation(ctx, models.OpUpdate, site, oldValues, siteSnapshot(site))
	ctx.JSON(http.StatusOK, gin.H{"site": site, "warnings": warnings})
}

// DeleteSite handles DELETE requests with the site ownership rules.
func (c *SiteController) DeleteSite(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid site ID"})
		return
	}

	site, err := c.service.GetSite(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	err = c.service.DeleteSite(middleware.CurrentUserID(ctx), middleware.IsStaff(ctx), id)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "You cannot delete this site"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.logOperation(ctx, models.OpDelete, site, nil, nil)
	ctx.JSON(http.StatusOK, gin.H{"message": "Site deleted successfully"})
}

// GetSiteDetail returns one site with all its sections.
func (c *SiteController) GetSiteDetail(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid site ID"})
		return
	}

	detail, err := c.service.SiteDetail(id, middleware.CurrentUserID(ctx), middleware.IsStaff(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// ListSites returns all sites, optionally filtered by research_id.
func (c *SiteController) ListSites(ctx *gin.Context) {
	sites, err := c.service.ListSites(queryIntPtr(ctx, "research_id"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, sites)
}
