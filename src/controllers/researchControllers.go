package controllers

import (
	"errors"
	"fmt"
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

type ResearchController struct {
	service *services.ResearchService
	audit   *services.AuditService
}

func NewResearchController(service *services.ResearchService, audit *services.AuditService) *ResearchController {
	return &ResearchController{service: service, audit: audit}
}

func (c *ResearchController) parseInput(ctx *gin.Context) (dtos.ResearchInput, error) {
	input := dtos.ResearchInput{
		Title:    ctx.PostForm("title"),
		Year:     ctx.PostForm("year"),
		Keywords: ctx.PostForm("keywords"),
		Abstract: ctx.PostForm("abstract"),
		Type:     ctx.PostForm("type"),
		Geometry: ctx.PostForm("geometry"),
	}

	if ctx.PostForm("is_self_author") == "yes" {
		input.Author = dtos.AuthorSpec{IsSelf: true}
	} else {
		input.Author = parseAuthorSpec(ctx, "author_", "")
	}

	for index := 0; ; index++ {
		suffix := fmt.Sprintf("_%d", index)
		spec := parseAuthorSpec(ctx, "coauthor_", suffix)
		if spec.UserID == nil && (spec.Name == "" || spec.Surname == "" || spec.Email == "") {
			break
		}
		input.Coauthors = append(input.Coauthors, spec)
	}

	// An uploaded shapefile overrides the geometry field.
	if file, err := ctx.FormFile("shapefile"); err == nil && file != nil {
		geometry, err := utils.ExtractGeometryFromShapefile(file)
		if err != nil {
			return input, err
		}
		input.Geometry = geometry
	}

	return input, nil
}

func (c *ResearchController) logOperation(ctx *gin.Context, operation string, research *models.Research, oldValues, newValues map[string]interface{}) {
	userID := middleware.CurrentUserID(ctx)
	c.audit.LogOperation(&userID, operation, "Research", research.Id, research.Title,
		oldValues, newValues, utils.ClientIP(ctx), utils.UserAgent(ctx))
}

func researchSnapshot(research *models.Research) map[string]interface{} {
	return map[string]interface{}{
		"title":    research.Title,
		"year":     research.Year,
		"keywords": research.Keywords,
		"abstract": research.Abstract,
		"type":     research.Type,
		"geometry": research.Geometry,
	}
}

// CreateResearch handles the multipart research form.
func (c *ResearchController) CreateResearch(ctx *gin.Context) {
	input, err := c.parseInput(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	research, warnings, err := c.service.CreateResearch(middleware.CurrentUserID(ctx), input)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.logOperation(ctx, models.OpCreate, research, nil, nil)
	ctx.JSON(http.StatusCreated, gin.H{"research": research, "warnings": warnings})
}

// UpdateResearch handles the multipart research form for an existing record.
func (c *ResearchController) UpdateResearch(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid research ID"})
		return
	}

	previous, err := c.service.GetResearch(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Research not found"})
		return
	}
	oldValues := researchSnapshot(previous)

	input, err := c.parseInput(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	research, warnings, err := c.service.UpdateResearch(
		middleware.CurrentUserID(ctx), middleware.IsStaff(ctx), id, input)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "You cannot edit this research"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.logOperation(ctx, models.OpUpdate, research, oldValues, researchSnapshot(research))
	ctx.JSON(http.StatusOK, gin.H{"research": research, "warnings": warnings})
}

// DeleteResearch handles DELETE requests; only the submitter or staff may
// delete.
func (c *ResearchController) DeleteResearch(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid research ID"})
		return
	}

	research, err := c.service.GetResearch(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Research not found"})
		return
	}

	err = c.service.DeleteResearch(middleware.CurrentUserID(ctx), middleware.IsStaff(ctx), id)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "You cannot delete this research"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.logOperation(ctx, models.OpDelete, research, nil, nil)
	ctx.JSON(http.StatusOK, gin.H{"message": "Research deleted successfully"})
}

// GetResearchDetail returns the full research tree.
func (c *ResearchController) GetResearchDetail(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid research ID"})
		return
	}

	detail, err := c.service.ResearchDetail(id, middleware.CurrentUserID(ctx), middleware.IsStaff(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Research not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// ListResearch returns all research records as list-page summaries.
func (c *ResearchController) ListResearch(ctx *gin.Context) {
	researches, err := c.service.ListResearch(middleware.CurrentUserID(ctx), middleware.IsStaff(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, researches)
}

// ListMyResearch returns the authenticated user's submissions.
func (c *ResearchController) ListMyResearch(ctx *gin.Context) {
	researches, err := c.service.ListResearchByUser(middleware.CurrentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, researches)
}

// Catalog is the public research catalog with a free-text filter.
func (c *ResearchController) Catalog(ctx *gin.Context) {
	researches, err := c.service.SearchCatalog(ctx.Query("q"),
		middleware.CurrentUserID(ctx), middleware.IsStaff(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, researches)
}

// HomeStats backs the landing page counters.
func (c *ResearchController) HomeStats(ctx *gin.Context) {
	stats, err := c.service.HomeStats()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// PreviewShapefile parses an uploaded shapefile and returns its geometry and
// centroid without persisting anything.
func (c *ResearchController) PreviewShapefile(ctx *gin.Context) {
	file, err := ctx.FormFile("shapefile")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "shapefile is required"})
		return
	}
	preview, err := utils.PreviewShapefile(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, preview)
}
