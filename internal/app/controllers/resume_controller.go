package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusnet/internal/app/models/dto"
	"github.com/yigit/campusnet/internal/app/services"
	"github.com/yigit/campusnet/internal/middleware"
)

// ResumeController handles resume upload endpoints
type ResumeController struct {
	resumeService *services.ResumeService
}

// NewResumeController creates a new ResumeController
func NewResumeController(resumeService *services.ResumeService) *ResumeController {
	return &ResumeController{resumeService: resumeService}
}

// List returns resumes
// @Summary List resumes
// @Tags resumes
// @Produce json
// @Param user query int false "Only the resume of this user"
// @Success 200 {object} dto.APIResponse{data=[]dto.ResumeResponse}
// @Router /resumes [get]
func (c *ResumeController) List(ctx *gin.Context) {
	userID, err := parseUserFilter(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items, err := c.resumeService.List(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(items))
}

// Get returns one resume
// @Summary Get resume
// @Tags resumes
// @Produce json
// @Param id path int true "Resume ID"
// @Success 200 {object} dto.APIResponse{data=dto.ResumeResponse}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /resumes/{id} [get]
func (c *ResumeController) Get(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	item, err := c.resumeService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item))
}

// Create uploads the caller's resume
// @Summary Upload resume
// @Description A user has at most one resume
// @Tags resumes
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param user formData int false "Owner, defaults to the caller"
// @Param file formData file true "Resume document"
// @Success 201 {object} dto.APIResponse{data=dto.ResumeResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid file"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Cannot upload for another user"
// @Failure 409 {object} dto.ErrorResponse "Resume already exists"
// @Router /resumes [post]
func (c *ResumeController) Create(ctx *gin.Context) {
	var req dto.CreateResumeRequest
	if err := bindBody(ctx, &req, true); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	file, err := optionalFile(ctx, "file")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	item, err := c.resumeService.Create(ctx.Request.Context(), middleware.CurrentActor(ctx), &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(item))
}

// Update replaces the resume file
// @Summary Replace resume
// @Description PUT requires a file; PATCH without a file changes nothing. uploaded_at is kept.
// @Tags resumes
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resume ID"
// @Param file formData file false "Replacement document"
// @Success 200 {object} dto.APIResponse{data=dto.ResumeResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid file"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /resumes/{id} [put]
// @Router /resumes/{id} [patch]
func (c *ResumeController) Update(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	file, err := optionalFile(ctx, "file")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	item, err := c.resumeService.Update(ctx.Request.Context(), middleware.CurrentActor(ctx), id, isPartial(ctx), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item))
}

// Delete removes a resume and its file
// @Summary Delete resume
// @Tags resumes
// @Security BearerAuth
// @Param id path int true "Resume ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /resumes/{id} [delete]
func (c *ResumeController) Delete(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.resumeService.Delete(ctx.Request.Context(), middleware.CurrentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
