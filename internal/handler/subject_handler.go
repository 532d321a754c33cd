package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/survey-admin-api/internal/models"
	"github.com/noah-isme/survey-admin-api/pkg/response"
)

type subjectService interface {
	GetSubjectsBySchool(ctx context.Context, schoolID string) ([]models.Subject, error)
	CreateSubject(ctx context.Context, subject *models.Subject) (*models.Subject, error)
	UpdateSubject(ctx context.Context, id string, subject *models.Subject, fields []string) (*models.Subject, error)
	DeleteSubject(ctx context.Context, id string) error
}

// SubjectHandler exposes subject endpoints.
type SubjectHandler struct {
	service subjectService
	logger  *zap.Logger
}

// NewSubjectHandler constructs a subject handler.
func NewSubjectHandler(svc subjectService, logger *zap.Logger) *SubjectHandler {
	return &SubjectHandler{service: svc, logger: nopIfNil(logger)}
}

// List godoc
// @Summary List subjects of a school
// @Tags Subjects
// @Produce json
// @Param schoolId query string true "School ID"
// @Success 200 {object} map[string][]models.Subject
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	schoolID := c.Query("schoolId")
	if schoolID == "" {
		missing(c, "School ID is required")
		return
	}
	subjects, err := h.service.GetSubjectsBySchool(c.Request.Context(), schoolID)
	if err != nil {
		fail(c, h.logger, err, "Failed to fetch subjects")
		return
	}
	response.JSON(c, "subjects", subjects)
}

// Create godoc
// @Summary Create subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body models.Subject true "Subject payload"
// @Success 200 {object} map[string]models.Subject
// @Failure 500 {object} response.ErrorBody
// @Router /subjects [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var subject models.Subject
	if err := c.ShouldBindJSON(&subject); err != nil {
		fail(c, h.logger, err, "Failed to create subject")
		return
	}
	created, err := h.service.CreateSubject(c.Request.Context(), &subject)
	if err != nil {
		fail(c, h.logger, err, "Failed to create subject")
		return
	}
	response.JSON(c, "subject", created)
}

// Update godoc
// @Summary Update subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param id path string true "Subject ID"
// @Param payload body models.Subject true "Subject payload"
// @Success 200 {object} map[string]models.Subject
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /subjects/{id} [put]
func (h *SubjectHandler) Update(c *gin.Context) {
	id := resourceID(c)
	if id == "" {
		missing(c, "ID is required")
		return
	}
	var subject models.Subject
	fields, err := bindPatch(c, &subject)
	if err != nil {
		fail(c, h.logger, err, "Failed to update subject")
		return
	}
	updated, err := h.service.UpdateSubject(c.Request.Context(), id, &subject, fields)
	if err != nil {
		fail(c, h.logger, err, "Failed to update subject")
		return
	}
	response.JSON(c, "subject", updated)
}

// Delete godoc
// @Summary Delete subject
// @Tags Subjects
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /subjects/{id} [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
	id := resourceID(c)
	if id == "" {
		missing(c, "ID is required")
		return
	}
	if err := h.service.DeleteSubject(c.Request.Context(), id); err != nil {
		fail(c, h.logger, err, "Failed to delete subject")
		return
	}
	response.Message(c, "Subject deleted successfully")
}
