package feedback

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"feedback-backend/internal/campaigns"
	"feedback-backend/internal/shared/server/respond"
)

const maxRecordingSize = 25 << 20 // 25MB

// Handler wires HTTP handlers to the feedback service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches feedback routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/campaigns/:id/feedback", h.submit)
	rg.POST("/campaigns/:id/feedback/voice", h.submitVoice)
	rg.GET("/campaigns/:id/feedback", h.list)
}

type submitRequest struct {
	NPSScore  *int               `json:"npsScore"`
	RootText  string             `json:"rootText"`
	Responses []QuestionResponse `json:"responses"`
}

func (h *Handler) submit(c *gin.Context) {
	campaignID := c.Param("id")

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	record, err := h.Svc.Submit(c.Request.Context(), campaignID, Submission{
		NPSScore:  req.NPSScore,
		RootText:  strings.TrimSpace(req.RootText),
		Responses: req.Responses,
	})
	if err != nil {
		h.writeError(c, err, "failed to store feedback")
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"feedbackId": record.ID, "createdAt": record.CreatedAt})
}

func (h *Handler) submitVoice(c *gin.Context) {
	campaignID := c.Param("id")
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRecordingSize)

	fileHeader, err := c.FormFile("recording")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "recording file is required", nil)
		return
	}
	questionID := strings.TrimSpace(c.PostForm("questionId"))
	if questionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "questionId is required", nil)
		return
	}

	sub := Submission{RootText: strings.TrimSpace(c.PostForm("rootText"))}
	if v := strings.TrimSpace(c.PostForm("npsScore")); v != "" {
		score, err := strconv.Atoi(v)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "npsScore must be an integer", nil)
			return
		}
		sub.NPSScore = &score
	}
	if v := c.PostForm("responses"); v != "" {
		if err := json.Unmarshal([]byte(v), &sub.Responses); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "responses must be a JSON array", nil)
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read recording", nil)
		return
	}
	defer file.Close()

	record, err := h.Svc.SubmitWithRecording(c.Request.Context(), campaignID, sub, questionID, fileHeader.Filename, file)
	if err != nil {
		h.writeError(c, err, "failed to store voice feedback")
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{
		"feedbackId":   record.ID,
		"recordingKey": record.RecordingKey,
		"createdAt":    record.CreatedAt,
	})
}

func (h *Handler) list(c *gin.Context) {
	campaignID := c.Param("id")

	records, err := h.Svc.List(c.Request.Context(), campaignID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list feedback", nil)
		return
	}
	if records == nil {
		records = []Record{}
	}
	respond.OK(c, gin.H{"feedback": records})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, campaigns.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "campaign not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
