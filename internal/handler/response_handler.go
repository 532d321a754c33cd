package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/survey-admin-api/internal/models"
	"github.com/noah-isme/survey-admin-api/internal/service"
	appErrors "github.com/noah-isme/survey-admin-api/pkg/errors"
	"github.com/noah-isme/survey-admin-api/pkg/export"
	"github.com/noah-isme/survey-admin-api/pkg/response"
)

type responseService interface {
	GetResponsesBySchool(ctx context.Context, schoolID string) ([]models.SurveyResponse, error)
	GetResponseBySurveyAndStudent(ctx context.Context, surveyID, studentID string) (*models.SurveyResponse, error)
	CreateResponse(ctx context.Context, resp *models.SurveyResponse) (*models.SurveyResponse, error)
	GetSurveySummary(ctx context.Context, surveyID string) (*models.SurveySummary, error)
	ExportSurveyResponses(ctx context.Context, surveyID string, format export.Format) (*service.ExportFile, error)
}

// ResponseHandler exposes survey response endpoints.
type ResponseHandler struct {
	service responseService
	logger  *zap.Logger
}

// NewResponseHandler constructs a survey response handler.
func NewResponseHandler(svc responseService, logger *zap.Logger) *ResponseHandler {
	return &ResponseHandler{service: svc, logger: nopIfNil(logger)}
}

// List godoc
// @Summary List survey responses
// @Description Either every response of a school, or the single response of a student to a survey.
// @Tags Survey Responses
// @Produce json
// @Param schoolId query string false "School ID"
// @Param surveyId query string false "Survey ID"
// @Param studentId query string false "Student ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /survey-responses [get]
func (h *ResponseHandler) List(c *gin.Context) {
	surveyID := c.Query("surveyId")
	studentID := c.Query("studentId")
	if surveyID != "" && studentID != "" {
		found, err := h.service.GetResponseBySurveyAndStudent(c.Request.Context(), surveyID, studentID)
		if err != nil {
			fail(c, h.logger, err, "Failed to fetch responses")
			return
		}
		response.JSON(c, "response", found)
		return
	}

	schoolID := c.Query("schoolId")
	if schoolID == "" {
		missing(c, "School ID or Survey ID and Student ID are required")
		return
	}
	responses, err := h.service.GetResponsesBySchool(c.Request.Context(), schoolID)
	if err != nil {
		fail(c, h.logger, err, "Failed to fetch responses")
		return
	}
	response.JSON(c, "responses", responses)
}

// Create godoc
// @Summary Submit a survey response
// @Tags Survey Responses
// @Accept json
// @Produce json
// @Param payload body models.SurveyResponse true "Response payload"
// @Success 200 {object} map[string]models.SurveyResponse
// @Failure 500 {object} response.ErrorBody
// @Router /survey-responses [post]
func (h *ResponseHandler) Create(c *gin.Context) {
	var resp models.SurveyResponse
	if err := c.ShouldBindJSON(&resp); err != nil {
		fail(c, h.logger, err, "Failed to create response")
		return
	}
	created, err := h.service.CreateResponse(c.Request.Context(), &resp)
	if err != nil {
		fail(c, h.logger, err, "Failed to create response")
		return
	}
	response.JSON(c, "response", created)
}

// Summary godoc
// @Summary Aggregate the responses of a survey
// @Tags Survey Responses
// @Produce json
// @Param surveyId query string true "Survey ID"
// @Success 200 {object} map[string]models.SurveySummary
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /survey-responses/summary [get]
func (h *ResponseHandler) Summary(c *gin.Context) {
	surveyID := c.Query("surveyId")
	if surveyID == "" {
		missing(c, "Survey ID is required")
		return
	}
	summary, err := h.service.GetSurveySummary(c.Request.Context(), surveyID)
	if err != nil {
		fail(c, h.logger, err, "Failed to summarize responses")
		return
	}
	response.JSON(c, "summary", summary)
}

// Export godoc
// @Summary Export the responses of a survey
// @Tags Survey Responses
// @Produce text/csv
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param surveyId query string true "Survey ID"
// @Param format query string false "csv (default), pdf or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /survey-responses/export [get]
func (h *ResponseHandler) Export(c *gin.Context) {
	surveyID := c.Query("surveyId")
	if surveyID == "" {
		missing(c, "Survey ID is required")
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, appErrors.InvalidParameter(err, "Format must be csv, pdf or xlsx"))
		return
	}
	file, err := h.service.ExportSurveyResponses(c.Request.Context(), surveyID, format)
	if err != nil {
		fail(c, h.logger, err, "Failed to export responses")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
