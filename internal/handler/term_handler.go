package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/survey-admin-api/internal/models"
	"github.com/noah-isme/survey-admin-api/pkg/response"
)

type termService interface {
	GetTermsBySchool(ctx context.Context, schoolID string) ([]models.Term, error)
	CreateTerm(ctx context.Context, term *models.Term) (*models.Term, error)
}

// TermHandler exposes term endpoints.
type TermHandler struct {
	service termService
	logger  *zap.Logger
}

// NewTermHandler constructs a term handler.
func NewTermHandler(svc termService, logger *zap.Logger) *TermHandler {
	return &TermHandler{service: svc, logger: nopIfNil(logger)}
}

// List godoc
// @Summary List terms of a school
// @Tags Terms
// @Produce json
// @Param schoolId query string true "School ID"
// @Success 200 {object} map[string][]models.Term
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /terms [get]
func (h *TermHandler) List(c *gin.Context) {
	schoolID := c.Query("schoolId")
	if schoolID == "" {
		missing(c, "School ID is required")
		return
	}
	terms, err := h.service.GetTermsBySchool(c.Request.Context(), schoolID)
	if err != nil {
		fail(c, h.logger, err, "Failed to fetch terms")
		return
	}
	response.JSON(c, "terms", terms)
}

// Create godoc
// @Summary Create term
// @Tags Terms
// @Accept json
// @Produce json
// @Param payload body models.Term true "Term payload"
// @Success 200 {object} map[string]models.Term
// @Failure 500 {object} response.ErrorBody
// @Router /terms [post]
func (h *TermHandler) Create(c *gin.Context) {
	var term models.Term
	if err := c.ShouldBindJSON(&term); err != nil {
		fail(c, h.logger, err, "Failed to create term")
		return
	}
	created, err := h.service.CreateTerm(c.Request.Context(), &term)
	if err != nil {
		fail(c, h.logger, err, "Failed to create term")
		return
	}
	response.JSON(c, "term", created)
}
