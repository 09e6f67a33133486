package controllers

import (
	"net/http"

	"github.com/ergin84/ShareLand/src/middleware"
	"github.com/ergin84/ShareLand/src/models"
	"github.com/ergin84/ShareLand/src/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

// AuthenticateUser handles POST requests to log in a user
func (c *UserController) AuthenticateUser(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := c.service.AuthenticateUser(req.Username, req.Password)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"token": token})
}

// RegisterUser handles POST requests to create an account with its profile
func (c *UserController) RegisterUser(ctx *gin.Context) {
	var req models.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := c.service.RegisterUser(req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, models.RegisterResponse{ID: user.Id, Username: user.Username})
}

// GetProfile returns the authenticated user's profile.
func (c *UserController) GetProfile(ctx *gin.Context) {
	profile, err := c.service.GetProfile(middleware.CurrentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// UpdateProfile overwrites the authenticated user's profile fields.
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var updated models.Profile
	if err := ctx.ShouldBindJSON(&updated); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, err := c.service.UpdateProfile(middleware.CurrentUserID(ctx), updated)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// SearchAuthors backs the author autocomplete on the research form.
func (c *UserController) SearchAuthors(ctx *gin.Context) {
	results, err := c.service.SearchAuthors(ctx.Query("q"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// SearchUsers backs the generic user autocomplete.
func (c *UserController) SearchUsers(ctx *gin.Context) {
	results, err := c.service.SearchUsers(ctx.Query("q"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"results": results})
}
