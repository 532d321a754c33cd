package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/survey-admin-api/internal/models"
	"github.com/noah-isme/survey-admin-api/pkg/response"
)

type courseService interface {
	GetCoursesBySchool(ctx context.Context, schoolID string) ([]models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error)
	DeleteCourse(ctx context.Context, id string) error
}

// CourseHandler exposes course endpoints.
type CourseHandler struct {
	service courseService
	logger  *zap.Logger
}

// NewCourseHandler constructs a course handler.
func NewCourseHandler(svc courseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{service: svc, logger: nopIfNil(logger)}
}

// List godoc
// @Summary List courses of a school
// @Tags Courses
// @Produce json
// @Param schoolId query string true "School ID"
// @Success 200 {object} map[string][]models.Course
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	schoolID := c.Query("schoolId")
	if schoolID == "" {
		missing(c, "School ID is required")
		return
	}
	courses, err := h.service.GetCoursesBySchool(c.Request.Context(), schoolID)
	if err != nil {
		fail(c, h.logger, err, "Failed to fetch courses")
		return
	}
	response.JSON(c, "courses", courses)
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body models.Course true "Course payload"
// @Success 200 {object} map[string]models.Course
// @Failure 500 {object} response.ErrorBody
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var course models.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		fail(c, h.logger, err, "Failed to create course")
		return
	}
	created, err := h.service.CreateCourse(c.Request.Context(), &course)
	if err != nil {
		fail(c, h.logger, err, "Failed to create course")
		return
	}
	response.JSON(c, "course", created)
}

// Delete godoc
// @Summary Delete course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	id := resourceID(c)
	if id == "" {
		missing(c, "ID is required")
		return
	}
	if err := h.service.DeleteCourse(c.Request.Context(), id); err != nil {
		fail(c, h.logger, err, "Failed to delete course")
		return
	}
	response.Message(c, "Course deleted successfully")
}
