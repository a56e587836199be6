package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusnet/internal/app/models/dto"
	"github.com/yigit/campusnet/internal/app/services"
	"github.com/yigit/campusnet/internal/middleware"
)

// EducationController handles education record endpoints
type EducationController struct {
	educationService *services.EducationService
}

// NewEducationController creates a new EducationController
func NewEducationController(educationService *services.EducationService) *EducationController {
	return &EducationController{educationService: educationService}
}

// List returns education records
// @Summary List educations
// @Tags educations
// @Produce json
// @Param user query int false "Only records of this user"
// @Success 200 {object} dto.APIResponse{data=[]dto.EducationResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid user filter"
// @Router /educations [get]
func (c *EducationController) List(ctx *gin.Context) {
	userID, err := parseUserFilter(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items, err := c.educationService.List(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(items))
}

// Get returns one education record
// @Summary Get education
// @Tags educations
// @Produce json
// @Param id path int true "Education ID"
// @Success 200 {object} dto.APIResponse{data=dto.EducationResponse}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /educations/{id} [get]
func (c *EducationController) Get(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	item, err := c.educationService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item))
}

// Create adds an education record
// @Summary Create education
// @Description The owner defaults to the caller
// @Tags educations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEducationRequest true "Education"
// @Success 201 {object} dto.APIResponse{data=dto.EducationResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Cannot create for another user"
// @Failure 404 {object} dto.ErrorResponse "Owner not found"
// @Router /educations [post]
func (c *EducationController) Create(ctx *gin.Context) {
	var req dto.CreateEducationRequest
	if err := bindBody(ctx, &req, false); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	item, err := c.educationService.Create(ctx.Request.Context(), middleware.CurrentActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(item))
}

// Update applies PUT and PATCH to an education record
// @Summary Update education
// @Tags educations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Education ID"
// @Param request body dto.UpdateEducationRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.EducationResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /educations/{id} [put]
// @Router /educations/{id} [patch]
func (c *EducationController) Update(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	partial := isPartial(ctx)
	var req dto.UpdateEducationRequest
	if err := bindBody(ctx, &req, partial); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	item, err := c.educationService.Update(ctx.Request.Context(), middleware.CurrentActor(ctx), id, &req, partial)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item))
}

// Delete removes an education record
// @Summary Delete education
// @Tags educations
// @Security BearerAuth
// @Param id path int true "Education ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /educations/{id} [delete]
func (c *EducationController) Delete(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.educationService.Delete(ctx.Request.Context(), middleware.CurrentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
