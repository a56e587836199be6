package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusnet/internal/app/models/dto"
	"github.com/yigit/campusnet/internal/app/services"
	"github.com/yigit/campusnet/internal/middleware"
)

// CertificateController handles certificate endpoints
type CertificateController struct {
	certificateService *services.CertificateService
}

// NewCertificateController creates a new CertificateController
func NewCertificateController(certificateService *services.CertificateService) *CertificateController {
	return &CertificateController{certificateService: certificateService}
}

// List returns certificates
// @Summary List certificates
// @Tags certificates
// @Produce json
// @Param user query int false "Only records of this user"
// @Success 200 {object} dto.APIResponse{data=[]dto.CertificateResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid user filter"
// @Router /certificates [get]
func (c *CertificateController) List(ctx *gin.Context) {
	userID, err := parseUserFilter(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items, err := c.certificateService.List(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(items))
}

// Get returns one certificate
// @Summary Get certificate
// @Tags certificates
// @Produce json
// @Param id path int true "Certificate ID"
// @Success 200 {object} dto.APIResponse{data=dto.CertificateResponse}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /certificates/{id} [get]
func (c *CertificateController) Get(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	item, err := c.certificateService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item))
}

// Create adds a certificate with an optional image
// @Summary Create certificate
// @Description Accepts JSON or multipart/form-data with an optional image file. The owner defaults to the caller.
// @Tags certificates
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCertificateRequest true "Certificate"
// @Param image formData file false "Image"
// @Success 201 {object} dto.APIResponse{data=dto.CertificateResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Cannot create for another user"
// @Failure 404 {object} dto.ErrorResponse "Owner not found"
// @Router /certificates [post]
func (c *CertificateController) Create(ctx *gin.Context) {
	var req dto.CreateCertificateRequest
	if err := bindBody(ctx, &req, false); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	image, err := optionalFile(ctx, "image")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	item, err := c.certificateService.Create(ctx.Request.Context(), middleware.CurrentActor(ctx), &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(item))
}

// Update applies PUT and PATCH to a certificate
// @Summary Update certificate
// @Tags certificates
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Certificate ID"
// @Param request body dto.UpdateCertificateRequest true "Fields to update"
// @Param image formData file false "Replacement image"
// @Success 200 {object} dto.APIResponse{data=dto.CertificateResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /certificates/{id} [put]
// @Router /certificates/{id} [patch]
func (c *CertificateController) Update(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	partial := isPartial(ctx)
	var req dto.UpdateCertificateRequest
	if err := bindBody(ctx, &req, partial); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	image, err := optionalFile(ctx, "image")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	item, err := c.certificateService.Update(ctx.Request.Context(), middleware.CurrentActor(ctx), id, &req, partial, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item))
}

// Delete removes a certificate and its image
// @Summary Delete certificate
// @Tags certificates
// @Security BearerAuth
// @Param id path int true "Certificate ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /certificates/{id} [delete]
func (c *CertificateController) Delete(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.certificateService.Delete(ctx.Request.Context(), middleware.CurrentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
