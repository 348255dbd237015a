package summaries

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"feedback-backend/internal/analysis"
	"feedback-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the summaries service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches summary routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/campaigns/:id/summaries/daily", h.generateDaily)
	rg.POST("/campaigns/:id/summaries/monthly", h.generateMonthly)
	rg.GET("/campaigns/:id/summaries/daily", h.listDaily)
	rg.GET("/campaigns/:id/summaries/monthly/:month", h.getMonthly)
}

func (h *Handler) generateDaily(c *gin.Context) {
	campaignID := c.Param("id")

	// Default target is yesterday so a scheduler can run just after midnight.
	day := time.Now().UTC().AddDate(0, 0, -1)
	if v := c.Query("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "date must use YYYY-MM-DD", nil)
			return
		}
		day = parsed
	}

	summary, err := h.Svc.GenerateDaily(c.Request.Context(), campaignID, day)
	if err != nil && !errors.Is(err, ErrResultNotSaved) {
		h.writeError(c, err, "failed to generate daily summary")
		return
	}
	respond.OK(c, gin.H{"summary": summary, "saved": err == nil})
}

func (h *Handler) generateMonthly(c *gin.Context) {
	campaignID := c.Param("id")

	month := time.Now().UTC().AddDate(0, -1, 0)
	if v := c.Query("month"); v != "" {
		parsed, err := time.Parse("2006-01", v)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "month must use YYYY-MM", nil)
			return
		}
		month = parsed
	}

	summary, err := h.Svc.GenerateMonthly(c.Request.Context(), campaignID, month)
	if err != nil && !errors.Is(err, ErrResultNotSaved) {
		h.writeError(c, err, "failed to generate monthly summary")
		return
	}
	respond.OK(c, gin.H{"summary": summary, "saved": err == nil})
}

func (h *Handler) listDaily(c *gin.Context) {
	campaignID := c.Param("id")

	to := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -30)
	var err error
	if v := c.Query("from"); v != "" {
		if from, err = time.Parse("2006-01-02", v); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "from must use YYYY-MM-DD", nil)
			return
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.Parse("2006-01-02", v); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "to must use YYYY-MM-DD", nil)
			return
		}
	}

	list, err := h.Svc.Repo.ListDaily(c.Request.Context(), campaignID, from, to)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, analysis.ErrorCodeInternal, "failed to list daily summaries", nil)
		return
	}
	if list == nil {
		list = []DailySummary{}
	}
	respond.OK(c, gin.H{"summaries": list})
}

func (h *Handler) getMonthly(c *gin.Context) {
	campaignID := c.Param("id")
	month := c.Param("month")
	if _, err := time.Parse("2006-01", month); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "month must use YYYY-MM", nil)
		return
	}

	summary, err := h.Svc.Repo.GetMonthly(c.Request.Context(), campaignID, month)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "no summary for this month", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, analysis.ErrorCodeInternal, "failed to fetch monthly summary", nil)
		return
	}
	respond.OK(c, summary)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case IsNotFound(err):
		respond.Error(c, http.StatusNotFound, "not_found", "campaign not found", nil)
	case errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusGatewayTimeout, analysis.ErrorCodeLLMTimeout, "summary generation timed out", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, analysis.ErrorCodeStorage, fallback, nil)
	}
}
