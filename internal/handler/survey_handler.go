package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/survey-admin-api/internal/models"
	"github.com/noah-isme/survey-admin-api/pkg/response"
)

type surveyService interface {
	GetSurveysByCourse(ctx context.Context, courseID string) ([]models.Survey, error)
	GetSurveysBySchool(ctx context.Context, schoolID string) ([]models.Survey, error)
	CreateSurvey(ctx context.Context, survey *models.Survey) (*models.Survey, error)
	UpdateSurvey(ctx context.Context, id string, survey *models.Survey, fields []string) (*models.Survey, error)
	DeleteSurvey(ctx context.Context, id string) error
}

// SurveyHandler exposes survey endpoints.
type SurveyHandler struct {
	service surveyService
	logger  *zap.Logger
}

// NewSurveyHandler constructs a survey handler.
func NewSurveyHandler(svc surveyService, logger *zap.Logger) *SurveyHandler {
	return &SurveyHandler{service: svc, logger: nopIfNil(logger)}
}

// List godoc
// @Summary List surveys
// @Description courseId takes precedence when both filters are supplied
// @Tags Surveys
// @Produce json
// @Param courseId query string false "Course ID"
// @Param schoolId query string false "School ID"
// @Success 200 {object} map[string][]models.Survey
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /surveys [get]
func (h *SurveyHandler) List(c *gin.Context) {
	courseID := c.Query("courseId")
	schoolID := c.Query("schoolId")

	var (
		surveys []models.Survey
		err     error
	)
	switch {
	case courseID != "":
		surveys, err = h.service.GetSurveysByCourse(c.Request.Context(), courseID)
	case schoolID != "":
		surveys, err = h.service.GetSurveysBySchool(c.Request.Context(), schoolID)
	default:
		missing(c, "Course ID or School ID is required")
		return
	}
	if err != nil {
		fail(c, h.logger, err, "Failed to fetch surveys")
		return
	}
	response.JSON(c, "surveys", surveys)
}

// Create godoc
// @Summary Create survey
// @Tags Surveys
// @Accept json
// @Produce json
// @Param payload body models.Survey true "Survey payload"
// @Success 200 {object} map[string]models.Survey
// @Failure 500 {object} response.ErrorBody
// @Router /surveys [post]
func (h *SurveyHandler) Create(c *gin.Context) {
	var survey models.Survey
	if err := c.ShouldBindJSON(&survey); err != nil {
		fail(c, h.logger, err, "Failed to create survey")
		return
	}
	created, err := h.service.CreateSurvey(c.Request.Context(), &survey)
	if err != nil {
		fail(c, h.logger, err, "Failed to create survey")
		return
	}
	response.JSON(c, "survey", created)
}

// Update godoc
// @Summary Update survey
// @Tags Surveys
// @Accept json
// @Produce json
// @Param id path string true "Survey ID"
// @Param payload body models.Survey true "Survey payload"
// @Success 200 {object} map[string]models.Survey
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /surveys/{id} [put]
func (h *SurveyHandler) Update(c *gin.Context) {
	id := resourceID(c)
	if id == "" {
		missing(c, "ID is required")
		return
	}
	var survey models.Survey
	fields, err := bindPatch(c, &survey)
	if err != nil {
		fail(c, h.logger, err, "Failed to update survey")
		return
	}
	updated, err := h.service.UpdateSurvey(c.Request.Context(), id, &survey, fields)
	if err != nil {
		fail(c, h.logger, err, "Failed to update survey")
		return
	}
	response.JSON(c, "survey", updated)
}

// Delete godoc
// @Summary Delete survey
// @Tags Surveys
// @Produce json
// @Param id path string true "Survey ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /surveys/{id} [delete]
func (h *SurveyHandler) Delete(c *gin.Context) {
	id := resourceID(c)
	if id == "" {
		missing(c, "ID is required")
		return
	}
	if err := h.service.DeleteSurvey(c.Request.Context(), id); err != nil {
		fail(c, h.logger, err, "Failed to delete survey")
		return
	}
	response.Message(c, "Survey deleted successfully")
}
