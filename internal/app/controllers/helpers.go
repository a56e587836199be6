package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
)

// parseID reads a positive int64 path parameter
func parseID(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewResourceNotFoundError("not found")
	}
	return id, nil
}

// parseUserFilter reads the optional ?user=<id> list filter
func parseUserFilter(ctx *gin.Context) (*int64, error) {
	raw, ok := ctx.GetQuery("user")
	if !ok || raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperrors.NewValidationError(map[string]string{"user": "a valid integer is required"})
	}
	return &id, nil
}

// parseLimit reads the optional ?limit=<n> page size; zero means the default
func parseLimit(ctx *gin.Context) (int, error) {
	raw, ok := ctx.GetQuery("limit")
	if !ok || raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.NewValidationError(map[string]string{"limit": "a valid non-negative integer is required"})
	}
	return n, nil
}

// bindBody binds a JSON or form body into obj. An empty body is accepted
// when allowEmpty is set, leaving obj untouched.
func bindBody(ctx *gin.Context, obj interface{}, allowEmpty bool) error {
	if allowEmpty && ctx.Request.ContentLength == 0 {
		return nil
	}
	return ctx.ShouldBind(obj)
}

// optionalFile returns the uploaded file under field, or nil when none was sent
func optionalFile(ctx *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := ctx.FormFile(field)
	switch {
	case err == nil:
		return fh, nil
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, nil
	default:
		return nil, apperrors.NewValidationError(map[string]string{field: "the submitted data was not a file"})
	}
}

// isPartial reports whether the request is a PATCH
func isPartial(ctx *gin.Context) bool {
	return ctx.Request.Method == http.MethodPatch
}
