package controllers

import (
	"net/http"
	"strconv"

	"github.com/ergin84/ShareLand/src/services"
	"github.com/gin-gonic/gin"
)

type BrowserController struct {
	service *services.BrowserService
}

func NewBrowserController(service *services.BrowserService) *BrowserController {
	return &BrowserController{service: service}
}

// ListTables returns the names of the public tables available to the browser.
func (c *BrowserController) ListTables(ctx *gin.Context) {
	tables, err := c.service.ListTables()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"tables": tables})
}

// BrowseTable returns one page of rows for the requested table.
func (c *BrowserController) BrowseTable(ctx *gin.Context) {
	table := ctx.Query("table")
	if table == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing table parameter"})
		return
	}
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := c.service.BrowseTable(table, page)
	if err != nil {
		if err == services.ErrUnknownTable {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Unknown table"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, result)
}
