package handler

import (
	"net/http"

	"business_finder_backend/internal/businesses/export"
	"business_finder_backend/internal/businesses/service"
	"business_finder_backend/internal/businesses/transport"
	"business_finder_backend/platform/apperr"
	"business_finder_backend/platform/httpkit"
	"business_finder_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Search handles POST /api/businesses/search
func (h *Handler) Search(c *gin.Context) {
	var req transport.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	query, err := req.ToQuery()
	if err != nil {
		httpkit.HandleError(c, apperr.Validation(err.Error()))
		return
	}

	result, err := h.svc.Search(c.Request.Context(), query)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// ListTypes handles GET /api/businesses/types
func (h *Handler) ListTypes(c *gin.Context) {
	httpkit.OK(c, h.svc.ListTypes())
}

// Export handles POST /api/businesses/export
func (h *Handler) Export(c *gin.Context) {
	var req transport.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	data, contentType, err := h.svc.Export(req.Businesses, req.Format)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+export.FileName(req.Format))
	c.Data(http.StatusOK, contentType, data)
}
