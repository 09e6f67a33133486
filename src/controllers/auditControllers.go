package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ergin84/ShareLand/src/services"
	"github.com/gin-gonic/gin"
)

type AuditController struct {
	service *services.AuditService
}

func NewAuditController(service *services.AuditService) *AuditController {
	return &AuditController{service: service}
}

func parseAuditFilter(ctx *gin.Context) services.AuditFilter {
	filter := services.AuditFilter{
		Operation: ctx.Query("operation"),
		Model:     ctx.Query("model"),
		Username:  ctx.Query("user"),
	}
	// Default window is the last 30 days; a non-numeric value disables the
	// date filter.
	days := ctx.DefaultQuery("days", "30")
	if parsed, err := strconv.Atoi(days); err == nil {
		filter.Days = parsed
	}
	return filter
}

// ListLogs returns one page of audit entries with the filter dropdowns' data.
func (c *AuditController) ListLogs(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	logs, total, err := c.service.ListLogs(parseAuditFilter(ctx), page, 50)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	stats, err := c.service.Stats()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	modelNames, err := c.service.ModelNames()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"logs":   logs,
		"total":  total,
		"page":   page,
		"stats":  stats,
		"models": modelNames,
	})
}

// ExportCSV streams the filtered audit log as a CSV attachment.
func (c *AuditController) ExportCSV(ctx *gin.Context) {
	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", `attachment; filename="audit_logs.csv"`)
	if err := c.service.ExportCSV(ctx.Writer, parseAuditFilter(ctx)); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ExportXLSX streams the filtered audit log as a spreadsheet.
func (c *AuditController) ExportXLSX(ctx *gin.Context) {
	f, err := c.service.ExportXLSX(parseAuditFilter(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	filename := fmt.Sprintf("audit_logs_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	if err := f.Write(ctx.Writer); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
