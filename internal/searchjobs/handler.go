package searchjobs

import (
	"net/http"

	"business_finder_backend/internal/businesses/transport"
	"business_finder_backend/platform/apperr"
	"business_finder_backend/platform/httpkit"
	"business_finder_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgDisabled         = "async search requires REDIS_URL"
)

type Handler struct {
	svc *Service
	val *validator.Validator
}

func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Submit handles POST /api/businesses/search/jobs
func (h *Handler) Submit(c *gin.Context) {
	if h.svc == nil {
		httpkit.HandleError(c, apperr.Unavailable(msgDisabled))
		return
	}

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

	job, err := h.svc.Submit(c.Request.Context(), query)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Location", "/api/businesses/search/jobs/"+job.ID)
	httpkit.JSON(c, http.StatusAccepted, job)
}

// Get handles GET /api/businesses/search/jobs/:id
func (h *Handler) Get(c *gin.Context) {
	if h.svc == nil {
		httpkit.HandleError(c, apperr.Unavailable(msgDisabled))
		return
	}

	job, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, job)
}
