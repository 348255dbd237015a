package campaigns

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"feedback-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the campaigns repo.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches campaign routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/campaigns", h.create)
	rg.GET("/campaigns", h.list)
	rg.GET("/campaigns/:id", h.get)
}

type createRequest struct {
	CompanyName string     `json:"companyName"`
	Name        string     `json:"name"`
	Language    string     `json:"language"`
	Questions   []Question `json:"questions"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.Name = strings.TrimSpace(req.Name)
	if req.CompanyName == "" || req.Name == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "companyName and name are required", nil)
		return
	}

	now := time.Now().UTC()
	campaign := Campaign{
		ID:          uuid.NewString(),
		CompanyName: req.CompanyName,
		Name:        req.Name,
		Language:    strings.TrimSpace(req.Language),
		Questions:   req.Questions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.Repo.Create(c.Request.Context(), campaign); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create campaign", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(campaign))
}

func (h *Handler) get(c *gin.Context) {
	campaign, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "campaign not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch campaign", nil)
		return
	}
	respond.OK(c, toResponse(campaign))
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Repo.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list campaigns", nil)
		return
	}
	resp := make([]gin.H, 0, len(list))
	for _, campaign := range list {
		resp = append(resp, toResponse(campaign))
	}
	respond.OK(c, gin.H{"campaigns": resp})
}

func toResponse(campaign Campaign) gin.H {
	questions := campaign.Questions
	if questions == nil {
		questions = []Question{}
	}
	return gin.H{
		"campaignId":  campaign.ID,
		"companyName": campaign.CompanyName,
		"name":        campaign.Name,
		"language":    campaign.LanguageOrDefault(),
		"questions":   questions,
		"createdAt":   campaign.CreatedAt,
	}
}
