package sessions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"counsel-backend/internal/report"
	"counsel-backend/internal/shared/server/middleware"
	"counsel-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the sessions service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// sessionIDParam reads the :id param and stores it for request logging.
func sessionIDParam(c *gin.Context) string {
	id := c.Param("id")
	if id != "" {
		c.Set("sessionId", id)
	}
	return id
}

// RegisterRoutes attaches counselling session routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/counselling/sessions", h.startSession)
	rg.GET("/counselling/sessions", h.listSessions)
	rg.GET("/counselling/sessions/:id", h.getSession)
	rg.POST("/counselling/sessions/:id/resume", h.selectResume)
	rg.POST("/counselling/sessions/:id/skills/validate", h.validateSkills)
	rg.POST("/counselling/sessions/:id/sections", h.saveSection)
	rg.POST("/counselling/sessions/:id/analysis", h.generateAnalysis)
	rg.POST("/counselling/sessions/:id/skill-assessment", h.saveSkillAssessment)
	rg.POST("/counselling/sessions/:id/mock-interview", h.saveMockInterview)
	rg.POST("/counselling/sessions/:id/abandon", h.abandonSession)
}

func (h *Handler) startSession(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	result, err := h.Svc.Start(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start session", nil)
		return
	}

	status := http.StatusCreated
	if result.Resumed {
		status = http.StatusOK
	}
	respond.JSON(c, status, gin.H{
		"sessionId":       result.Session.ID,
		"phase":           result.Session.CurrentPhase,
		"currentQuestion": result.Session.CurrentQuestion,
		"resumed":         result.Resumed,
		"hasResume":       result.HasResume,
		"resumeCount":     len(result.Resumes),
		"resumes":         result.Resumes,
	})
}

type selectResumeRequest struct {
	ResumeID     string   `json:"resumeId"`
	ManualSkills []string `json:"manualSkills"`
}

func (h *Handler) selectResume(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := sessionIDParam(c)

	var req selectResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid payload", nil)
		return
	}

	session, err := h.Svc.SelectResume(c.Request.Context(), userID, sessionID, req.ResumeID, req.ManualSkills)
	if err != nil {
		h.respondError(c, err, "failed to select resume")
		return
	}

	names := make([]string, 0, len(session.ExtractedSkills))
	for _, skill := range session.ExtractedSkills {
		names = append(names, skill.Name)
	}
	respond.OK(c, gin.H{
		"phase":           session.CurrentPhase,
		"extractedSkills": names,
		"hasResume":       session.HasResume,
	})
}

type validateSkillsRequest struct {
	ValidatedSkills  []ExtractedSkill `json:"validatedSkills"`
	AdditionalSkills []string         `json:"additionalSkills"`
}

func (h *Handler) validateSkills(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := sessionIDParam(c)

	var req validateSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid payload", nil)
		return
	}

	session, err := h.Svc.ValidateSkills(c.Request.Context(), userID, sessionID, req.ValidatedSkills, req.AdditionalSkills)
	if err != nil {
		h.respondError(c, err, "failed to validate skills")
		return
	}
	respond.OK(c, gin.H{"phase": session.CurrentPhase})
}

type saveSectionRequest struct {
	SectionName   string          `json:"sectionName"`
	Data          json.RawMessage `json:"data"`
	Advance       bool            `json:"advance"`
	QuestionIndex *int            `json:"questionIndex"`
}

func (h *Handler) saveSection(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := sessionIDParam(c)

	var req saveSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid payload", nil)
		return
	}
	if req.SectionName == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "sectionName is required", nil)
		return
	}

	session, err := h.Svc.SaveSection(c.Request.Context(), userID, sessionID, Phase(req.SectionName), req.Data, req.Advance, req.QuestionIndex)
	if err != nil {
		h.respondError(c, err, "failed to save section")
		return
	}
	respond.OK(c, gin.H{
		"phase":           session.CurrentPhase,
		"currentQuestion": session.CurrentQuestion,
		"sessionStatus":   session.SessionStatus,
	})
}

func (h *Handler) getSession(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := sessionIDParam(c)

	session, err := h.Svc.Get(c.Request.Context(), userID, sessionID)
	if err != nil {
		h.respondError(c, err, "failed to fetch session")
		return
	}
	respond.OK(c, session)
}

func (h *Handler) listSessions(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit, offset := 20, 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	sessions, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list sessions", nil)
		return
	}

	items := make([]gin.H, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, gin.H{
			"sessionId":   s.ID,
			"phase":       s.CurrentPhase,
			"status":      s.SessionStatus,
			"createdAt":   s.CreatedAt,
			"completedAt": s.CompletedAt,
		})
	}
	respond.OK(c, gin.H{"sessions": items})
}

func (h *Handler) generateAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := sessionIDParam(c)

	session, err := h.Svc.GenerateAnalysis(c.Request.Context(), userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrExhausted):
			respond.Error(c, http.StatusBadGateway, "generation_exhausted", "all generation models failed, try again", nil)
		case errors.Is(err, ErrNotAwaitingAnalysis):
			respond.Error(c, http.StatusConflict, "not_awaiting_analysis", "session is not ready for analysis", nil)
		default:
			h.respondError(c, err, "failed to generate analysis")
		}
		return
	}

	respond.OK(c, gin.H{
		"phase":     session.CurrentPhase,
		"status":    session.SessionStatus,
		"analysis":  session.Analysis,
		"rawReport": session.RawReport,
	})
}

func (h *Handler) saveSkillAssessment(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := sessionIDParam(c)

	var results SkillAssessmentResults
	if err := c.ShouldBindJSON(&results); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid payload", nil)
		return
	}

	if _, err := h.Svc.SaveSkillAssessment(c.Request.Context(), userID, sessionID, results); err != nil {
		h.respondError(c, err, "failed to save skill assessment")
		return
	}
	respond.OK(c, gin.H{"saved": true})
}

func (h *Handler) saveMockInterview(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := sessionIDParam(c)

	var results MockInterviewResults
	if err := c.ShouldBindJSON(&results); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid payload", nil)
		return
	}

	if _, err := h.Svc.SaveMockInterview(c.Request.Context(), userID, sessionID, results); err != nil {
		h.respondError(c, err, "failed to save mock interview")
		return
	}
	respond.OK(c, gin.H{"saved": true})
}

func (h *Handler) abandonSession(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := sessionIDParam(c)

	session, err := h.Svc.Abandon(c.Request.Context(), userID, sessionID)
	if err != nil {
		h.respondError(c, err, "failed to abandon session")
		return
	}
	respond.OK(c, gin.H{"status": session.SessionStatus})
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
	case errors.Is(err, ErrResumeNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrUnknownSection):
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown section", nil)
	case errors.Is(err, ErrConflict):
		respond.Error(c, http.StatusConflict, "conflict", "session was modified concurrently, retry", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
