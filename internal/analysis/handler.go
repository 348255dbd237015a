package analysis

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"feedback-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analysis service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/campaigns/:id/analysis/topics", h.runTopics)
	rg.POST("/campaigns/:id/analysis/clusters", h.runClusters)
	rg.POST("/campaigns/:id/analysis/themes", h.runThemes)
	rg.GET("/campaigns/:id/analysis/:kind", h.getResult)
}

func (h *Handler) runTopics(c *gin.Context) {
	h.runFlow(c, KindTopics, func(ctx context.Context, campaignID string) (any, error) {
		return h.Svc.AnalyzeTopics(ctx, campaignID)
	})
}

func (h *Handler) runClusters(c *gin.Context) {
	h.runFlow(c, KindClusters, func(ctx context.Context, campaignID string) (any, error) {
		return h.Svc.AnalyzeClusters(ctx, campaignID)
	})
}

func (h *Handler) runThemes(c *gin.Context) {
	h.runFlow(c, KindThemes, func(ctx context.Context, campaignID string) (any, error) {
		return h.Svc.AnalyzeThemes(ctx, campaignID)
	})
}

func (h *Handler) runFlow(c *gin.Context, kind string, run func(ctx context.Context, campaignID string) (any, error)) {
	campaignID := c.Param("id")
	if campaignID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "campaign id is required", nil)
		return
	}

	result, err := run(c.Request.Context(), campaignID)
	if err != nil && !errors.Is(err, ErrResultNotSaved) {
		h.writeFlowError(c, err)
		return
	}

	respond.OK(c, gin.H{
		"kind":   kind,
		"result": result,
		"saved":  err == nil,
	})
}

func (h *Handler) writeFlowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "campaign not found", nil)
	case errors.Is(err, ErrInsufficientData):
		respond.Error(c, http.StatusUnprocessableEntity, ErrorCodeInsufficientData, "not enough feedback to analyze", nil)
	case errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusGatewayTimeout, ErrorCodeLLMTimeout, "analysis timed out", nil)
	case errors.Is(err, ErrUpstream):
		respond.Error(c, http.StatusBadGateway, ErrorCodeLLMUnavailable, "analysis provider unavailable", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to run analysis", nil)
	}
}

func (h *Handler) getResult(c *gin.Context) {
	campaignID := c.Param("id")
	kind := c.Param("kind")
	if !ValidKind(kind) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown analysis kind", nil)
		return
	}

	stored, err := h.Svc.Get(c.Request.Context(), campaignID, kind)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "no stored result for this analysis", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to fetch analysis result", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"campaignId": stored.CampaignID,
		"kind":       stored.Kind,
		"result":     stored.Result,
		"sampleSize": stored.SampleSize,
		"updatedAt":  stored.UpdatedAt,
	})
}
