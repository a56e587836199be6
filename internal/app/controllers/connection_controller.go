package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusnet/internal/app/models/dto"
	"github.com/yigit/campusnet/internal/app/services"
	"github.com/yigit/campusnet/internal/middleware"
)

// ConnectionController handles connection requests between users
type ConnectionController struct {
	connectionService *services.ConnectionService
}

// NewConnectionController creates a new ConnectionController
func NewConnectionController(connectionService *services.ConnectionService) *ConnectionController {
	return &ConnectionController{connectionService: connectionService}
}

// Request asks a user to connect
// @Summary Send connection request
// @Description Accepts the pending request instead when the other user asked first
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 201 {object} dto.APIResponse{data=dto.ConnectionResponse} "Request sent"
// @Success 200 {object} dto.APIResponse{data=dto.ConnectionResponse} "Connection established"
// @Failure 400 {object} dto.ErrorResponse "Cannot connect to yourself"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Already connected or requested"
// @Router /users/{id}/connect [post]
func (c *ConnectionController) Request(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	connection, created, err := c.connectionService.Request(ctx.Request.Context(), middleware.CurrentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.NewSuccessResponse(connection))
}

// Accept accepts a pending request from a user
// @Summary Accept connection request
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID of the user who sent the request"
// @Success 200 {object} dto.APIResponse{data=dto.ConnectionResponse}
// @Failure 404 {object} dto.ErrorResponse "Connection request not found"
// @Router /users/{id}/accept [post]
func (c *ConnectionController) Accept(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	connection, err := c.connectionService.Accept(ctx.Request.Context(), middleware.CurrentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(connection))
}

// Remove ends a connection or drops a pending request with a user
// @Summary Remove connection
// @Tags connections
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204 "Removed"
// @Failure 404 {object} dto.ErrorResponse "No connection"
// @Router /users/{id}/connection [delete]
func (c *ConnectionController) Remove(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.connectionService.Remove(ctx.Request.Context(), middleware.CurrentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// List returns a user's accepted connections
// @Summary List connections
// @Tags connections
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ConnectionResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id}/connections [get]
func (c *ConnectionController) List(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	connections, err := c.connectionService.List(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(connections))
}

// Incoming returns the caller's pending requests
// @Summary Incoming connection requests
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ConnectionResponse}
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /connections/requests [get]
func (c *ConnectionController) Incoming(ctx *gin.Context) {
	connections, err := c.connectionService.Incoming(ctx.Request.Context(), middleware.CurrentActor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(connections))
}
