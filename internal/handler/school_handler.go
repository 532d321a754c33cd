package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/survey-admin-api/internal/models"
	"github.com/noah-isme/survey-admin-api/pkg/response"
)

type schoolService interface {
	GetAllSchools(ctx context.Context) ([]models.School, error)
	CreateSchool(ctx context.Context, school *models.School) (*models.School, error)
}

// SchoolHandler exposes school endpoints.
type SchoolHandler struct {
	service schoolService
	logger  *zap.Logger
}

// NewSchoolHandler constructs a school handler.
func NewSchoolHandler(svc schoolService, logger *zap.Logger) *SchoolHandler {
	return &SchoolHandler{service: svc, logger: nopIfNil(logger)}
}

// List godoc
// @Summary List schools
// @Tags Schools
// @Produce json
// @Success 200 {object} map[string][]models.School
// @Failure 500 {object} response.ErrorBody
// @Router /schools [get]
func (h *SchoolHandler) List(c *gin.Context) {
	schools, err := h.service.GetAllSchools(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err, "Failed to fetch schools")
		return
	}
	response.JSON(c, "schools", schools)
}

// Create godoc
// @Summary Create school
// @Tags Schools
// @Accept json
// @Produce json
// @Param payload body models.School true "School payload"
// @Success 200 {object} map[string]models.School
// @Failure 500 {object} response.ErrorBody
// @Router /schools [post]
func (h *SchoolHandler) Create(c *gin.Context) {
	var school models.School
	if err := c.ShouldBindJSON(&school); err != nil {
		fail(c, h.logger, err, "Failed to create school")
		return
	}
	created, err := h.service.CreateSchool(c.Request.Context(), &school)
	if err != nil {
		fail(c, h.logger, err, "Failed to create school")
		return
	}
	response.JSON(c, "school", created)
}
