package controllers

import (
	"net/http"
	"strconv"

	"github.com/ergin84/ShareLand/src/services"
	"github.com/gin-gonic/gin"
)

type LookupController struct {
	service *services.LookupService
}

func NewLookupController(service *services.LookupService) *LookupController {
	return &LookupController{service: service}
}

func respondList(ctx *gin.Context, data interface{}, err error) {
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, data)
}

func (c *LookupController) GetCountries(ctx *gin.Context) {
	data, err := c.service.GetCountries()
	respondList(ctx, data, err)
}

func (c *LookupController) GetRegions(ctx *gin.Context) {
	data, err := c.service.GetRegions()
	respondList(ctx, data, err)
}

func (c *LookupController) GetProvinces(ctx *gin.Context) {
	data, err := c.service.GetProvinces()
	respondList(ctx, data, err)
}

func (c *LookupController) GetMunicipalities(ctx *gin.Context) {
	data, err := c.service.GetMunicipalities()
	respondList(ctx, data, err)
}

func (c *LookupController) GetBaseMaps(ctx *gin.Context) {
	data, err := c.service.GetBaseMaps()
	respondList(ctx, data, err)
}

func (c *LookupController) GetPhysiographies(ctx *gin.Context) {
	data, err := c.service.GetPhysiographies()
	respondList(ctx, data, err)
}

func (c *LookupController) GetPositioningModes(ctx *gin.Context) {
	data, err := c.service.GetPositioningModes()
	respondList(ctx, data, err)
}

func (c *LookupController) GetPositionalAccuracies(ctx *gin.Context) {
	data, err := c.service.GetPositionalAccuracies()
	respondList(ctx, data, err)
}

func (c *LookupController) GetFirstDiscoveryMethods(ctx *gin.Context) {
	data, err := c.service.GetFirstDiscoveryMethods()
	respondList(ctx, data, err)
}

func (c *LookupController) GetChronologies(ctx *gin.Context) {
	data, err := c.service.GetChronologies()
	respondList(ctx, data, err)
}

func (c *LookupController) GetFunctionalClasses(ctx *gin.Context) {
	data, err := c.service.GetFunctionalClasses()
	respondList(ctx, data, err)
}

func (c *LookupController) GetSourcesTypes(ctx *gin.Context) {
	data, err := c.service.GetSourcesTypes()
	respondList(ctx, data, err)
}

func (c *LookupController) GetImageTypes(ctx *gin.Context) {
	data, err := c.service.GetImageTypes()
	respondList(ctx, data, err)
}

func (c *LookupController) GetImageScales(ctx *gin.Context) {
	data, err := c.service.GetImageScales()
	respondList(ctx, data, err)
}

func (c *LookupController) GetInvestigationTypes(ctx *gin.Context) {
	data, err := c.service.GetInvestigationTypes()
	respondList(ctx, data, err)
}

func (c *LookupController) GetEvidenceTypologies(ctx *gin.Context) {
	data, err := c.service.GetEvidenceTypologies()
	respondList(ctx, data, err)
}

// LoadTypologies returns the typologies of one functional class; an empty
// array when the parameter is missing or malformed.
func (c *LookupController) LoadTypologies(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Query("functional_class"))
	if err != nil {
		ctx.JSON(http.StatusOK, []interface{}{})
		return
	}
	data, err := c.service.TypologiesByFunctionalClass(id)
	respondList(ctx, data, err)
}

// LoadTypologyDetails returns the sub-typologies of one typology.
func (c *LookupController) LoadTypologyDetails(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Query("typology"))
	if err != nil {
		ctx.JSON(http.StatusOK, []interface{}{})
		return
	}
	data, err := c.service.TypologyDetailsByTypology(id)
	respondList(ctx, data, err)
}

// LoadProvinces returns the provinces of one region code.
func (c *LookupController) LoadProvinces(ctx *gin.Context) {
	code, err := strconv.Atoi(ctx.Query("region"))
	if err != nil {
		ctx.JSON(http.StatusOK, []interface{}{})
		return
	}
	data, err := c.service.ProvincesByRegion(code)
	respondList(ctx, data, err)
}

// LoadMunicipalities returns the municipalities of one province.
func (c *LookupController) LoadMunicipalities(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Query("province"))
	if err != nil {
		ctx.JSON(http.StatusOK, []interface{}{})
		return
	}
	data, err := c.service.MunicipalitiesByProvince(id)
	respondList(ctx, data, err)
}
