package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/survey-admin-api/internal/models"
	"github.com/noah-isme/survey-admin-api/pkg/response"
)

type enrollmentService interface {
	GetEnrollmentsBySchool(ctx context.Context, schoolID string) ([]models.CourseEnrollment, error)
	CreateEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) (*models.CourseEnrollment, error)
	UpdateEnrollment(ctx context.Context, id string, enrollment *models.CourseEnrollment, fields []string) (*models.CourseEnrollment, error)
	DeleteEnrollment(ctx context.Context, id string) error
}

// EnrollmentHandler exposes course enrollment endpoints.
type EnrollmentHandler struct {
	service enrollmentService
	logger  *zap.Logger
}

// NewEnrollmentHandler constructs an enrollment handler.
func NewEnrollmentHandler(svc enrollmentService, logger *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc, logger: nopIfNil(logger)}
}

// List godoc
// @Summary List course enrollments of a school
// @Tags Enrollments
// @Produce json
// @Param schoolId query string true "School ID"
// @Success 200 {object} map[string][]models.CourseEnrollment
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /course-enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	schoolID := c.Query("schoolId")
	if schoolID == "" {
		missing(c, "School ID is required")
		return
	}
	enrollments, err := h.service.GetEnrollmentsBySchool(c.Request.Context(), schoolID)
	if err != nil {
		fail(c, h.logger, err, "Failed to fetch enrollments")
		return
	}
	response.JSON(c, "enrollments", enrollments)
}

// Create godoc
// @Summary Enroll a student in a course
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body models.CourseEnrollment true "Enrollment payload"
// @Success 200 {object} map[string]models.CourseEnrollment
// @Failure 500 {object} response.ErrorBody
// @Router /course-enrollments [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var enrollment models.CourseEnrollment
	if err := c.ShouldBindJSON(&enrollment); err != nil {
		fail(c, h.logger, err, "Failed to create enrollment")
		return
	}
	created, err := h.service.CreateEnrollment(c.Request.Context(), &enrollment)
	if err != nil {
		fail(c, h.logger, err, "Failed to create enrollment")
		return
	}
	response.JSON(c, "enrollment", created)
}

// Update godoc
// @Summary Update enrollment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path string true "Enrollment ID"
// @Param payload body models.CourseEnrollment true "Enrollment payload"
// @Success 200 {object} map[string]models.CourseEnrollment
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /course-enrollments/{id} [put]
func (h *EnrollmentHandler) Update(c *gin.Context) {
	id := resourceID(c)
	if id == "" {
		missing(c, "ID is required")
		return
	}
	var enrollment models.CourseEnrollment
	fields, err := bindPatch(c, &enrollment)
	if err != nil {
		fail(c, h.logger, err, "Failed to update enrollment")
		return
	}
	updated, err := h.service.UpdateEnrollment(c.Request.Context(), id, &enrollment, fields)
	if err != nil {
		fail(c, h.logger, err, "Failed to update enrollment")
		return
	}
	response.JSON(c, "enrollment", updated)
}

// Delete godoc
// @Summary Delete enrollment
// @Tags Enrollments
// @Produce json
// @Param id path string true "Enrollment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /course-enrollments/{id} [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	id := resourceID(c)
	if id == "" {
		missing(c, "ID is required")
		return
	}
	if err := h.service.DeleteEnrollment(c.Request.Context(), id); err != nil {
		fail(c, h.logger, err, "Failed to delete enrollment")
		return
	}
	response.Message(c, "Enrollment deleted successfully")
}
