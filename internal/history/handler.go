package history

import (
	"strconv"

	"business_finder_backend/platform/apperr"
	"business_finder_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /api/businesses/searches?limit=
func (h *Handler) List(c *gin.Context) {
	if h.svc == nil {
		httpkit.HandleError(c, apperr.Unavailable("search history requires DATABASE_URL"))
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httpkit.HandleError(c, apperr.Validation("limit must be a positive integer"))
			return
		}
		limit = n
	}

	runs, err := h.svc.ListRecent(c.Request.Context(), limit)
	if err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindInternal, "failed to list searches", err))
		return
	}

	httpkit.OK(c, runs)
}
