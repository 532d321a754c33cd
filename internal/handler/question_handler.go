package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/survey-admin-api/internal/models"
	"github.com/noah-isme/survey-admin-api/pkg/response"
)

type questionService interface {
	GetQuestionsBySurvey(ctx context.Context, surveyID string) ([]models.SurveyQuestion, error)
	CreateQuestion(ctx context.Context, question *models.SurveyQuestion) (*models.SurveyQuestion, error)
	DeleteQuestion(ctx context.Context, id string) error
}

// QuestionHandler exposes survey question endpoints.
type QuestionHandler struct {
	service questionService
	logger  *zap.Logger
}

func NewQuestionHandler(svc questionService, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{service: svc, logger: nopIfNil(logger)}
}

// List godoc
// @Summary List questions of a survey
// @Tags Survey Questions
// @Produce json
// @Param surveyId query string true "Survey ID"
// @Success 200 {object} map[string][]models.SurveyQuestion
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /survey-questions [get]
func (h *QuestionHandler) List(c *gin.Context) {
	surveyID := c.Query("surveyId")
	if surveyID == "" {
		missing(c, "Survey ID is required")
		return
	}
	questions, err := h.service.GetQuestionsBySurvey(c.Request.Context(), surveyID)
	if err != nil {
		fail(c, h.logger, err, "Failed to fetch questions")
		return
	}
	response.JSON(c, "questions", questions)
}

// Create godoc
// @Summary Add a question to a survey
// @Tags Survey Questions
// @Accept json
// @Produce json
// @Param payload body models.SurveyQuestion true "Question payload"
// @Success 200 {object} map[string]models.SurveyQuestion
// @Failure 500 {object} response.ErrorBody
// @Router /survey-questions [post]
func (h *QuestionHandler) Create(c *gin.Context) {
	var question models.SurveyQuestion
	if err := c.ShouldBindJSON(&question); err != nil {
		fail(c, h.logger, err, "Failed to create question")
		return
	}
	created, err := h.service.CreateQuestion(c.Request.Context(), &question)
	if err != nil {
		fail(c, h.logger, err, "Failed to create question")
		return
	}
	response.JSON(c, "question", created)
}

// Delete godoc
// @Summary Delete question
// @Tags Survey Questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /survey-questions/{id} [delete]
func (h *QuestionHandler) Delete(c *gin.Context) {
	id := resourceID(c)
	if id == "" {
		missing(c, "ID is required")
		return
	}
	if err := h.service.DeleteQuestion(c.Request.Context(), id); err != nil {
		fail(c, h.logger, err, "Failed to delete question")
		return
	}
	response.Message(c, "Question deleted successfully")
}
