package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusnet/internal/app/models/dto"
	"github.com/yigit/campusnet/internal/app/services"
	"github.com/yigit/campusnet/internal/middleware"
)

// AchievementController handles achievement endpoints
type AchievementController struct {
	achievementService *services.AchievementService
}

// NewAchievementController creates a new AchievementController
func NewAchievementController(achievementService *services.AchievementService) *AchievementController {
	return &AchievementController{achievementService: achievementService}
}

// List returns achievements
// @Summary List achievements
// @Tags achievements
// @Produce json
// @Param user query int false "Only records of this user"
// @Success 200 {object} dto.APIResponse{data=[]dto.AchievementResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid user filter"
// @Router /achievements [get]
func (c *AchievementController) List(ctx *gin.Context) {
	userID, err := parseUserFilter(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items, err := c.achievementService.List(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(items))
}

// Get returns one achievement
// @Summary Get achievement
// @Tags achievements
// @Produce json
// @Param id path int true "Achievement ID"
// @Success 200 {object} dto.APIResponse{data=dto.AchievementResponse}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /achievements/{id} [get]
func (c *AchievementController) Get(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	item, err := c.achievementService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item))
}

// Create adds a achievement with an optional image
// @Summary Create achievement
// @Description Accepts JSON or multipart/form-data with an optional image file. The owner defaults to the caller.
// @Tags achievements
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAchievementRequest true "Achievement"
// @Param image formData file false "Image"
// @Success 201 {object} dto.APIResponse{data=dto.AchievementResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Cannot create for another user"
// @Failure 404 {object} dto.ErrorResponse "Owner not found"
// @Router /achievements [post]
func (c *AchievementController) Create(ctx *gin.Context) {
	var req dto.CreateAchievementRequest
	if err := bindBody(ctx, &req, false); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	image, err := optionalFile(ctx, "image")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	item, err := c.achievementService.Create(ctx.Request.Context(), middleware.CurrentActor(ctx), &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(item))
}

// Update applies PUT and PATCH to a achievement
// @Summary Update achievement
// @Tags achievements
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Achievement ID"
// @Param request body dto.UpdateAchievementRequest true "Fields to update"
// @Param image formData file false "Replacement image"
// @Success 200 {object} dto.APIResponse{data=dto.AchievementResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /achievements/{id} [put]
// @Router /achievements/{id} [patch]
func (c *AchievementController) Update(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	partial := isPartial(ctx)
	var req dto.UpdateAchievementRequest
	if err := bindBody(ctx, &req, partial); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	image, err := optionalFile(ctx, "image")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	item, err := c.achievementService.Update(ctx.Request.Context(), middleware.CurrentActor(ctx), id, &req, partial, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item))
}

// Delete removes a achievement and its image
// @Summary Delete achievement
// @Tags achievements
// @Security BearerAuth
// @Param id path int true "Achievement ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /achievements/{id} [delete]
func (c *AchievementController) Delete(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.achievementService.Delete(ctx.Request.Context(), middleware.CurrentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
