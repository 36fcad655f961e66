package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fojia/lms/internal/service"
	appErrors "github.com/fojia/lms/pkg/errors"
	"github.com/fojia/lms/pkg/response"
)

// AccessHandler exposes the content access check endpoint.
type AccessHandler struct {
	access *service.AccessService
}

// NewAccessHandler constructs AccessHandler.
func NewAccessHandler(access *service.AccessService) *AccessHandler {
	return &AccessHandler{access: access}
}

// Check godoc
// @Summary Check whether a student may access course content
// @Tags Access
// @Accept json
// @Produce json
// @Param payload body service.CheckContentAccessRequest true "Access check payload"
// @Success 200 {object} response.Envelope
// @Router /access/check [post]
func (h *AccessHandler) Check(c *gin.Context) {
	var req service.CheckContentAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.access.Check(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
