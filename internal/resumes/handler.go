package resumes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"counsel-backend/internal/shared/server/middleware"
	"counsel-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the resumes service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.createResume)
	rg.POST("/resumes/upload", h.uploadResume)
	rg.GET("/resumes", h.listResumes)
	rg.GET("/resumes/:id", h.getResume)
}

type createResumeRequest struct {
	Name           string   `json:"name"`
	Skills         []string `json:"skills"`
	WorkExperience []string `json:"workExperience"`
	Projects       []string `json:"projects"`
	Education      []string `json:"education"`
}

func (h *Handler) createResume(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid resume payload", nil)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume name is required", nil)
		return
	}

	resume, err := h.Svc.Create(c.Request.Context(), Resume{
		UserID:         userID,
		Name:           req.Name,
		Skills:         req.Skills,
		WorkExperience: req.WorkExperience,
		Projects:       req.Projects,
		Education:      req.Education,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create resume", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, resume)
}

func (h *Handler) uploadResume(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "failed to read file", nil)
		return
	}
	defer file.Close()

	var skills []string
	if raw := strings.TrimSpace(c.PostForm("skills")); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				skills = append(skills, trimmed)
			}
		}
	}

	resume, err := h.Svc.Upload(c.Request.Context(), userID, c.PostForm("name"), fileHeader.Filename, skills, file)
	if err != nil {
		if strings.Contains(err.Error(), "unsupported mime type") {
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_type", "only PDF, DOCX and plain-text resumes are supported", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload resume", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, resume)
}

func (h *Handler) listResumes(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	summaries, err := h.Svc.Summaries(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}
	respond.OK(c, gin.H{"resumes": summaries, "count": len(summaries)})
}

func (h *Handler) getResume(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")

	resume, err := h.Svc.Get(c.Request.Context(), userID, resumeID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		}
		return
	}
	respond.OK(c, resume)
}
