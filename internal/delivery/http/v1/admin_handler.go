package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	admin := protected.Group("/admin")
	{
		admin.GET("/stats", handler.GetStats)
		admin.GET("/vacancies", handler.ListVacancies)
		admin.POST("/vacancies", handler.CreateVacancy)
		admin.GET("/interviews", handler.ListInterviews)
		admin.GET("/interviews/:id/report", handler.GetReport)
	}
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminUC.GetStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Dashboard statistics", stats)
}

func (h *AdminHandler) ListVacancies(c *gin.Context) {
	vacancies, err := h.adminUC.ListVacancies(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vacancies list", vacancies)
}

type createVacancyRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements string   `json:"requirements"`
	Salary       string   `json:"salary"`
	Questions    []string `json:"questions"`
}

func (h *AdminHandler) CreateVacancy(c *gin.Context) {
	var req createVacancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	draft := &domain.VacancyDraft{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Salary:       req.Salary,
		Questions:    req.Questions,
	}

	vacancy, err := h.adminUC.CreateVacancy(c.Request.Context(), draft)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Vacancy created", vacancy)
}

func (h *AdminHandler) ListInterviews(c *gin.Context) {
	filter := domain.InterviewFilter{}

	if raw := c.Query("min_score"); raw != "" {
		minScore, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.Error(apperror.BadRequest("min_score must be a number"))
			return
		}
		filter.MinScore = &minScore
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.Error(apperror.BadRequest("limit must be an integer"))
			return
		}
		filter.Limit = limit
	}

	interviews, err := h.adminUC.ListCompleted(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Completed interviews", interviews)
}

func (h *AdminHandler) GetReport(c *gin.Context) {
	interviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.BadRequest("Invalid interview id"))
		return
	}

	report, err := h.adminUC.BuildReport(c.Request.Context(), interviewID)
	if err != nil {
		c.Error(err)
		return
	}

	filename := fmt.Sprintf("interview_%s.pdf", interviewID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", report)
}
